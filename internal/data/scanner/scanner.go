package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// DefaultPattern matches every file, like the timing library's output folder
const DefaultPattern = "*"

// FileScanner discovers timer files in a single directory
type FileScanner struct {
	baseDir string
	pattern string
	exclude map[string]bool
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		pattern: DefaultPattern,
	}
}

// WithPattern restricts discovery to base names matching a filepath.Match pattern
func (s *FileScanner) WithPattern(pattern string) *FileScanner {
	if pattern != "" {
		s.pattern = pattern
	}
	return s
}

// WithExclude skips the given paths, e.g. the chart written into the input
// directory
func (s *FileScanner) WithExclude(paths ...string) *FileScanner {
	if s.exclude == nil {
		s.exclude = make(map[string]bool)
	}
	for _, path := range paths {
		if path != "" {
			s.exclude[util.CleanAbs(path)] = true
		}
	}
	return s
}

// Scan returns the timer files of the directory in display order: sorted
// lexicographically descending, with the aggregate timer file(s) moved to
// the end. Sub-directories are ignored.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()

	if _, err := filepath.Match(s.pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", s.pattern, err)
	}

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.baseDir, err)
	}

	var files []string
	var totalBytes uint64
	skipped := 0
	for _, entry := range entries {
		path := filepath.Join(s.baseDir, entry.Name())

		// Stat follows symlinks so linked timer files are still picked up
		info, err := os.Stat(path)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			skipped++
			continue
		}
		if !info.Mode().IsRegular() {
			skipped++
			continue
		}
		if ok, _ := filepath.Match(s.pattern, entry.Name()); !ok {
			skipped++
			continue
		}
		if s.exclude[util.CleanAbs(path)] {
			util.LogDebug(fmt.Sprintf("Skip file (excluded): %s", path))
			skipped++
			continue
		}

		files = append(files, path)
		totalBytes += uint64(info.Size())
	}

	ordered := OrderFiles(files)

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, %d entries, skipped %d, found %d timer files (%s)",
		time.Since(start), len(entries), skipped, len(ordered), humanize.Bytes(totalBytes)))

	return ordered, nil
}

// OrderFiles sorts paths descending and moves aggregate timer files to the
// end, keeping their relative order.
func OrderFiles(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	ordered := make([]string, 0, len(sorted))
	var aggregates []string
	for _, path := range sorted {
		if model.IsAggregatePath(path) {
			aggregates = append(aggregates, path)
			continue
		}
		ordered = append(ordered, path)
	}

	if len(aggregates) > 1 {
		util.LogWarn(fmt.Sprintf("Found %d aggregate timer files, all are drawn last", len(aggregates)))
	}

	return append(ordered, aggregates...)
}
