package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
	assert.Equal(t, "WARN", LevelWarn.String())
}

func TestLoggerTextOutputFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", "", FormatText, false)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("hidden")
	logger.Info("parsed timer", Field{Key: "records", Value: 3}, Field{Key: "name", Value: "IO"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] parsed timer name=IO records=3")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", FormatJSON, false)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatJSON))

	logger.With(Field{Key: "dir", Value: "/tmp/x"}).Warn("no aggregate timer")

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "no aggregate timer", entry.Message)
	assert.Equal(t, "/tmp/x", entry.Fields["dir"])
}

func TestLoggerFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := NewLogger("debug", logFile, FormatText, false)
	require.NoError(t, err)

	logger.Debugf("scanned %d files", 2)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] scanned 2 files")
}

func TestGlobalLoggerWithoutOutputs(t *testing.T) {
	require.NoError(t, InitLogger("debug", "", FormatText, false))
	defer CloseLogger()

	assert.NotPanics(t, func() {
		LogDebug("nothing to see")
		LogInfof("value=%d", 1)
		LogWarn("warn")
		LogErrorf("err %s", "x")
	})
}
