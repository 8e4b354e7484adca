// Package config holds the render settings that can be kept in a YAML file.
// Precedence: built-in defaults → config file → explicitly set CLI flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultOutput    = "timers.svg"
	DefaultWidth     = 10.0 // inches
	DefaultHeight    = 6.0  // inches
	DefaultTimezone  = "Local"
	DefaultSummary   = "table"
	DefaultPattern   = "*"
	DefaultDebounce  = 500 * time.Millisecond
	DefaultLogFile   = "~/.go-timer-analyzer/logs/app.log"
	DefaultLogFormat = "text"
)

// Config holds every setting a config file may provide
type Config struct {
	Types        []string      `yaml:"types"`
	Scale        bool          `yaml:"scale"`
	Output       string        `yaml:"output"`
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	Palette      []string      `yaml:"palette"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Timezone     string        `yaml:"timezone"`
	Summary      string        `yaml:"summary"`
	Pattern      string        `yaml:"pattern"`
	SkipInvalid  bool          `yaml:"skip_invalid"`
	Debounce     time.Duration `yaml:"debounce"`
	LogFile      string        `yaml:"log_file"`
	LogFormat    string        `yaml:"log_format"`

	// path of the file this config was read from, empty for defaults
	source string `yaml:"-"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Output:       DefaultOutput,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		TickInterval: time.Second,
		Timezone:     DefaultTimezone,
		Summary:      DefaultSummary,
		Pattern:      DefaultPattern,
		Debounce:     DefaultDebounce,
		LogFile:      DefaultLogFile,
		LogFormat:    DefaultLogFormat,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.source = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Source returns the file the config was loaded from
func (c *Config) Source() string {
	return c.source
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick_interval must not be negative, got %v", c.TickInterval)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce)
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
