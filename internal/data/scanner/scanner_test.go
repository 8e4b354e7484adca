package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("step,start,duration\n"), 0644))
	}
}

func TestNewFileScanner(t *testing.T) {
	scanner := NewFileScanner("/tmp/test")

	assert.Equal(t, "/tmp/test", scanner.baseDir)
	assert.Equal(t, DefaultPattern, scanner.pattern)
	assert.Equal(t, "Timing_*.csv", scanner.WithPattern("Timing_*.csv").pattern)
	assert.Equal(t, "Timing_*.csv", scanner.WithPattern("").pattern)
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	_, err := NewFileScanner(filepath.Join(t.TempDir(), "missing")).Scan()
	assert.Error(t, err)
}

func TestFileScannerOrdersDescendingWithTotalLast(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Timing_A.csv", "Timing_Total.csv", "Timing_C.csv", "Timing_B.csv")

	files, err := NewFileScanner(dir).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "Timing_C.csv"),
		filepath.Join(dir, "Timing_B.csv"),
		filepath.Join(dir, "Timing_A.csv"),
		filepath.Join(dir, "Timing_Total.csv"),
	}, files)
}

func TestFileScannerSkipsDirectoriesAndPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Timing_A.csv", "Timing_Total.csv", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Timing_Dir.csv"), 0755))

	files, err := NewFileScanner(dir).WithPattern("Timing_*.csv").Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "Timing_A.csv"),
		filepath.Join(dir, "Timing_Total.csv"),
	}, files)
}

func TestFileScannerWithExclude(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Timing_A.csv", "Timing_Total.csv", "timers.svg")

	// a relative spelling of the same file is excluded too
	rel, err := filepath.Rel(".", filepath.Join(dir, "timers.svg"))
	require.NoError(t, err)

	files, err := NewFileScanner(dir).WithExclude(rel, "").Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "Timing_A.csv"),
		filepath.Join(dir, "Timing_Total.csv"),
	}, files)
}

func TestFileScannerInvalidPattern(t *testing.T) {
	_, err := NewFileScanner(t.TempDir()).WithPattern("[").Scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file pattern")
}

func TestOrderFiles(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "total first in listing",
			input:    []string{"d/Timing_Total.csv", "d/Timing_A.csv"},
			expected: []string{"d/Timing_A.csv", "d/Timing_Total.csv"},
		},
		{
			name:     "total in the middle",
			input:    []string{"d/Timing_A.csv", "d/Timing_Total.csv", "d/Timing_Z.csv"},
			expected: []string{"d/Timing_Z.csv", "d/Timing_A.csv", "d/Timing_Total.csv"},
		},
		{
			name:     "no total",
			input:    []string{"d/Timing_A.csv", "d/Timing_B.csv"},
			expected: []string{"d/Timing_B.csv", "d/Timing_A.csv"},
		},
		{
			name:     "several totals keep descending order",
			input:    []string{"d/Timing_Total.csv", "d/Timing_Total.txt", "d/Timing_A.csv"},
			expected: []string{"d/Timing_A.csv", "d/Timing_Total.txt", "d/Timing_Total.csv"},
		},
		{
			name:     "empty",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrderFiles(tt.input))
		})
	}
}

func TestOrderFilesDoesNotMutateInput(t *testing.T) {
	input := []string{"d/Timing_A.csv", "d/Timing_B.csv"}
	OrderFiles(input)
	assert.Equal(t, []string{"d/Timing_A.csv", "d/Timing_B.csv"}, input)
}
