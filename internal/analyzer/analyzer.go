package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/core/timeline"
	"github.com/penwyp/go-timer-analyzer/internal/data/parser"
	"github.com/penwyp/go-timer-analyzer/internal/data/scanner"
	"github.com/penwyp/go-timer-analyzer/internal/data/watcher"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/chart"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/formatter"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

type Config struct {
	InputDir string
	Pattern  string

	Kinds  []chart.Kind
	Render chart.Options
	// OutputPath is the chart file; its extension selects the image format
	OutputPath string

	SummaryFormat string
	SkipInvalid   bool
	Open          bool
	Debounce      time.Duration

	// Stdout receives the summary report, os.Stdout when nil
	Stdout io.Writer
}

// Analyzer runs the discover, parse, order and render pipeline
type Analyzer struct {
	config   *Config
	scanner  *scanner.FileScanner
	parser   *parser.Parser
	renderer *chart.Renderer
	summary  formatter.Formatter
	opened   bool

	// openFile launches the viewer, replaced in tests
	openFile func(path string) error
	// afterPass observes every watch pass
	afterPass func(err error)
}

func New(config *Config) (*Analyzer, error) {
	summary, err := formatter.New(config.SummaryFormat)
	if err != nil {
		return nil, err
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	renderer := chart.NewRenderer(config.Render)
	return &Analyzer{
		config:   config,
		scanner:  scanner.NewFileScanner(config.InputDir).WithPattern(config.Pattern).WithExclude(config.OutputPath),
		parser:   parser.NewParser(renderer.Options().Location),
		renderer: renderer,
		summary:  summary,
		openFile: util.OpenFile,
	}, nil
}

// Load discovers and parses the timer files, then orders and aligns them
func (a *Analyzer) Load() (*timeline.Timeline, error) {
	scanStart := time.Now()
	files, err := a.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	util.LogDebug(fmt.Sprintf("Phase 1 - File scan duration: %v, found %d files", time.Since(scanStart), len(files)))

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", timeline.ErrNoTimers, a.config.InputDir)
	}

	parseStart := time.Now()
	stats := NewCacheStats()
	parsed := make([]model.ParsedTimer, 0, len(files))
	for _, result := range a.parser.ParseFiles(files) {
		stats.Record(result)
		if result.Error != nil {
			if a.config.SkipInvalid && parser.IsParseError(result.Error) {
				util.LogWarn(fmt.Sprintf("Skipping invalid timer file: %v", result.Error))
				continue
			}
			return nil, result.Error
		}
		parsed = append(parsed, model.NewParsedTimer(result.File, result.Records))
	}
	a.parser.Prune(files)
	stats.LogStats()
	util.LogDebug(fmt.Sprintf("Phase 2 - File parsing duration: %v", time.Since(parseStart)))

	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w in %s (every file was invalid)", timeline.ErrNoTimers, a.config.InputDir)
	}

	buildStart := time.Now()
	tl, err := timeline.Build(parsed)
	if err != nil {
		return nil, err
	}
	util.LogDebug(fmt.Sprintf("Phase 3 - Ordering and alignment duration: %v", time.Since(buildStart)))

	return tl, nil
}

// Run performs one full pass: summary on stdout, chart to the output file
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo(fmt.Sprintf("Analyzing timers in %s", a.config.InputDir))

	tl, err := a.Load()
	if err != nil {
		return err
	}
	util.LogInfo(fmt.Sprintf("Loaded %d timers", tl.Len()))

	report := formatter.BuildReport(tl.Timers, tl.Aggregate)
	if err := a.summary.Format(a.config.Stdout, report); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	renderStart := time.Now()
	if err := a.renderer.Save(a.config.OutputPath, a.config.Kinds, tl.Timers); err != nil {
		return err
	}
	util.LogDebug(fmt.Sprintf("Phase 4 - Render duration: %v", time.Since(renderStart)))
	util.LogInfo(fmt.Sprintf("Chart written to %s", a.config.OutputPath))

	if a.config.Open && !a.opened {
		if err := a.openFile(a.config.OutputPath); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to open %s: %v", a.config.OutputPath, err))
		} else {
			a.opened = true
		}
	}

	util.LogDebug(fmt.Sprintf("Total duration: %v", time.Since(startTime)))
	return nil
}

// Watch runs the pipeline, then again after every burst of changes in the
// input directory, until ctx is done. Failed passes are logged and the loop
// keeps going.
func (a *Analyzer) Watch(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(a.config.InputDir, a.config.Pattern, a.config.OutputPath)
	if err != nil {
		return err
	}
	defer fw.Close()

	a.runLogged()

	// nil until a change arrives; every change restarts the quiet period
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Watch stopped")
			return nil

		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebug(fmt.Sprintf("File event: %s %s", ev.Operation, ev.Path))
			fire = time.After(a.config.Debounce)

		case <-fire:
			fire = nil
			a.runLogged()
		}
	}
}

func (a *Analyzer) runLogged() {
	err := a.Run()
	if err != nil {
		util.LogError(fmt.Sprintf("Pass failed: %v", err))
	}
	if a.afterPass != nil {
		a.afterPass(err)
	}
}
