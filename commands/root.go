package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/analyzer"
	"github.com/penwyp/go-timer-analyzer/internal/config"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/chart"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/formatter"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Input
	inputDir    string
	pattern     string
	skipInvalid bool
	timezone    string

	// Charts
	chartTypes   []string
	scale        bool
	outputPath   string
	width        float64
	height       float64
	palette      string
	tickInterval time.Duration
	openOutput   bool

	// Report
	summaryFormat string

	configPath string

	// settings resolved by the persistent pre-run
	settings *config.Config

	rootCmd = &cobra.Command{
		Use:   "go-timer-analyzer [flags]",
		Short: "Timer log visualization tool",
		Long: `go-timer-analyzer reads the Timing_<Name>.csv files written by an instrumented
program and plots them.

Every timer is aligned to the first start of the "Total" timer, which is always
drawn last. Two charts are available:
  barh   one horizontal track per timer, one bar per recorded interval
  ts     duration against time step on a logarithmic axis

Examples:
  go-timer-analyzer -i ./timings -t barh                  # Interval chart to timers.svg
  go-timer-analyzer -i ./timings -t barh -t ts -o run.png # Both charts in one PNG
  go-timer-analyzer -i ./timings -t ts --scale            # Duration per step
  go-timer-analyzer -i ./timings -t barh --summary json   # JSON summary on stdout`,
		PersistentPreRunE: setup,
		RunE:              runAnalyze,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()

	// Input data configuration
	flags.StringVarP(&inputDir, "input", "i", "",
		"Directory containing the timer files (required)")
	flags.StringVar(&pattern, "pattern", config.DefaultPattern,
		"Only consider files whose name matches this glob")
	flags.BoolVar(&skipInvalid, "skip-invalid", false,
		"Skip malformed timer files with a warning instead of failing")
	flags.StringVar(&timezone, "timezone", config.DefaultTimezone,
		"Timezone for timestamps without offset and tick labels (e.g., Asia/Shanghai, UTC)")

	// Chart configuration
	flags.StringArrayVarP(&chartTypes, "type", "t", nil,
		"Chart kind, repeatable (barh, ts)")
	flags.BoolVar(&scale, "scale", false,
		"Divide time series durations by the step delta")
	flags.StringVarP(&outputPath, "output", "o", config.DefaultOutput,
		"Chart file; the extension selects the format (svg, png, pdf, eps, jpg, tif)")
	flags.Float64Var(&width, "width", config.DefaultWidth,
		"Figure width in inches")
	flags.Float64Var(&height, "height", config.DefaultHeight,
		"Figure height in inches")
	flags.StringVar(&palette, "palette", "",
		"Comma separated colours cycled over timers (names or #rrggbb)")
	flags.DurationVar(&tickInterval, "tick-interval", time.Second,
		"Interval between time ticks of the bar chart")
	flags.BoolVar(&openOutput, "open", false,
		"Open the chart with the system viewer once written")

	// Report
	flags.StringVar(&summaryFormat, "summary", config.DefaultSummary,
		"Summary printed on stdout ("+strings.Join(formatter.Formats, ", ")+")")

	// System and debugging
	flags.StringVar(&configPath, "config", "",
		"YAML file with default settings")
	flags.BoolVar(&debug, "debug", false,
		"Enable debug mode")
	flags.StringVar(&logFile, "log-file", config.DefaultLogFile,
		"Log file path (empty disables file logging)")
	flags.StringVar(&logFormat, "log-format", config.DefaultLogFormat,
		"Log line format (text, json)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Message: err.Error()}
	})
}

// UsageError reports invalid command line input
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// setup resolves settings, then initializes logging and the time zone
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	settings = cfg

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	file := ""
	if cfg.LogFile != "" {
		file = expandPath(cfg.LogFile)
	}
	if err := util.InitLogger(logLevel, file, util.LogFormat(cfg.LogFormat), debug); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if cfg.Source() != "" {
		util.LogDebugf("Loaded settings from %s", cfg.Source())
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return &UsageError{Message: err.Error()}
	}
	return nil
}

// resolveSettings layers the config file and the explicitly set flags over
// the built-in defaults
func resolveSettings(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path != "" {
		path = expandPath(path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &UsageError{Message: err.Error()}
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		cfg.Types = chartTypes
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("output") {
		cfg.Output = outputPath
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("palette") {
		cfg.Palette = strings.Split(palette, ",")
	}
	if flags.Changed("tick-interval") {
		cfg.TickInterval = tickInterval
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("summary") {
		cfg.Summary = summaryFormat
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("skip-invalid") {
		cfg.SkipInvalid = skipInvalid
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{Message: err.Error()}
	}
	return cfg, nil
}

// validateInput checks that --input names an existing directory
func validateInput() (string, error) {
	if inputDir == "" {
		return "", usageErrorf("--input is required")
	}
	dir := expandPath(inputDir)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", usageErrorf("input directory %s does not exist", inputDir)
		}
		return "", fmt.Errorf("failed to access input directory: %w", err)
	}
	if !info.IsDir() {
		return "", usageErrorf("input %s is not a directory", inputDir)
	}
	return dir, nil
}

// buildConfig validates the resolved settings into an analyzer configuration
func buildConfig(cfg *config.Config) (*analyzer.Config, error) {
	dir, err := validateInput()
	if err != nil {
		return nil, err
	}

	if len(cfg.Types) == 0 {
		return nil, usageErrorf("--type is required (possibilities: %s, %s)", chart.KindBars, chart.KindSeries)
	}
	kinds, err := chart.ParseKinds(cfg.Types)
	if err != nil {
		return nil, &UsageError{Message: err.Error()}
	}

	colors := chart.DefaultPalette()
	if len(cfg.Palette) > 0 {
		if colors, err = chart.ParsePalette(strings.Join(cfg.Palette, ",")); err != nil {
			return nil, &UsageError{Message: err.Error()}
		}
	}

	output := expandPath(cfg.Output)
	if _, err := chart.FormatOf(output); err != nil {
		return nil, &UsageError{Message: err.Error()}
	}
	if _, err := formatter.New(cfg.Summary); err != nil {
		return nil, &UsageError{Message: err.Error()}
	}

	return &analyzer.Config{
		InputDir: dir,
		Pattern:  cfg.Pattern,
		Kinds:    kinds,
		Render: chart.Options{
			Scale:        cfg.Scale,
			Palette:      colors,
			TickInterval: cfg.TickInterval,
			Location:     util.GetTimeProvider().Location(),
			Width:        vg.Length(cfg.Width) * vg.Inch,
			Height:       vg.Length(cfg.Height) * vg.Inch,
		},
		OutputPath:    output,
		SummaryFormat: cfg.Summary,
		SkipInvalid:   cfg.SkipInvalid,
		Open:          openOutput,
		Debounce:      cfg.Debounce,
	}, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analyzerConfig, err := buildConfig(settings)
	if err != nil {
		return err
	}
	analyzerConfig.Stdout = cmd.OutOrStdout()

	a, err := analyzer.New(analyzerConfig)
	if err != nil {
		return err
	}
	return a.Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
