package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source())
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, `
types: [barh, ts]
scale: true
output: out/run.png
palette: [green, "#ff8800"]
tick_interval: 5s
debounce: 250ms
timezone: UTC
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"barh", "ts"}, cfg.Types)
	assert.True(t, cfg.Scale)
	assert.Equal(t, "out/run.png", cfg.Output)
	assert.Equal(t, []string{"green", "#ff8800"}, cfg.Palette)
	assert.Equal(t, 5*time.Second, cfg.TickInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, path, cfg.Source())

	// untouched keys keep their defaults
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultSummary, cfg.Summary)
	assert.Equal(t, DefaultPattern, cfg.Pattern)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadLogFormat(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log_format: json\n"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultLogFormat, Default().LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour: red\n"},
		{"bad yaml", "types: [barh\n"},
		{"bad duration", "debounce: soon\n"},
		{"negative width", "width: -1\n"},
		{"empty output", "output: \"\"\n"},
		{"unknown log format", "log_format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
