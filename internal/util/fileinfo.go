package util

import (
	"os"
	"path/filepath"
)

// FileInfo identifies a version of a file on disk. Two FileInfo values
// that compare equal mean the file was not rewritten in between.
type FileInfo struct {
	ModTime int64  // Last modification time, in nanoseconds since the epoch
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number, 0 where the platform has none
}

// GetFileInfo returns the identity of the file at path
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	inode, err := inodeOf(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		ModTime: stat.ModTime().UnixNano(),
		Size:    stat.Size(),
		Inode:   inode,
	}, nil
}

// CleanAbs returns the absolute, cleaned form of path so two spellings of the
// same file compare equal. path is returned cleaned when it cannot be made
// absolute.
func CleanAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
