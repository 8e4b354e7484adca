package analyzer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/timeline"
	"github.com/penwyp/go-timer-analyzer/internal/data/parser"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/chart"
	"github.com/penwyp/go-timer-analyzer/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newConfig(t *testing.T, dir string) *Config {
	return &Config{
		InputDir:      dir,
		Kinds:         []chart.Kind{chart.KindBars},
		Render:        chart.Options{Location: time.UTC},
		OutputPath:    filepath.Join(t.TempDir(), "timers.svg"),
		SummaryFormat: "table",
		Debounce:      20 * time.Millisecond,
		Stdout:        &bytes.Buffer{},
	}
}

// writeExample writes the two-timer run: Total at 00:00:00, IO at 00:00:02
func writeExample(t *testing.T) *fixtures.TimingGenerator {
	gen := fixtures.NewTimingGenerator(t.TempDir())
	_, err := gen.WriteTimer("Total", fixtures.Row{Step: 1, Start: t0, Duration: 5.0})
	require.NoError(t, err)
	_, err = gen.WriteTimer("IO", fixtures.Row{Step: 1, Start: t0.Add(2 * time.Second), Duration: 1.0})
	require.NoError(t, err)
	return gen
}

func TestNewRejectsUnknownSummary(t *testing.T) {
	cfg := newConfig(t, t.TempDir())
	cfg.SummaryFormat = "xml"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestLoadEndToEndExample(t *testing.T) {
	gen := writeExample(t)

	a, err := New(newConfig(t, gen.BaseDir()))
	require.NoError(t, err)

	tl, err := a.Load()
	require.NoError(t, err)
	require.Equal(t, 2, tl.Len())

	ioTimer, total := tl.Timers[0], tl.Timers[1]
	assert.Equal(t, "IO", ioTimer.Name())
	assert.Equal(t, 0, ioTimer.Rank())
	assert.Equal(t, "Total", total.Name())
	assert.Equal(t, 1, total.Rank())
	assert.True(t, t0.Equal(ioTimer.Origin()))
	assert.True(t, t0.Equal(total.Origin()))
	assert.Equal(t, 2.0, ioTimer.Offset(ioTimer.Record(0).Start))
}

func TestLoadEmptyDirectory(t *testing.T) {
	a, err := New(newConfig(t, t.TempDir()))
	require.NoError(t, err)

	_, err = a.Load()
	assert.True(t, errors.Is(err, timeline.ErrNoTimers))
}

func TestLoadInvalidFile(t *testing.T) {
	gen := writeExample(t)
	_, err := gen.WriteRaw("Timing_Broken.csv", "step,start,duration\n1,not a date,2\n")
	require.NoError(t, err)

	cfg := newConfig(t, gen.BaseDir())
	a, err := New(cfg)
	require.NoError(t, err)
	_, err = a.Load()
	require.Error(t, err)
	assert.True(t, parser.IsParseError(err))

	cfg = newConfig(t, gen.BaseDir())
	cfg.SkipInvalid = true
	a, err = New(cfg)
	require.NoError(t, err)
	tl, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"IO", "Total"}, tl.Names())
}

func TestRunWritesSummaryAndChart(t *testing.T) {
	gen := writeExample(t)
	cfg := newConfig(t, gen.BaseDir())
	cfg.Kinds = []chart.Kind{chart.KindBars, chart.KindSeries}
	cfg.Open = true

	a, err := New(cfg)
	require.NoError(t, err)
	var opened []string
	a.openFile = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	require.NoError(t, a.Run())
	require.NoError(t, a.Run())

	summary := cfg.Stdout.(*bytes.Buffer).String()
	assert.Contains(t, summary, "Timing of different code aspects")
	assert.Contains(t, summary, "IO")

	info, err := os.Stat(cfg.OutputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// the viewer is launched once
	assert.Equal(t, []string{cfg.OutputPath}, opened)
}

func TestRunTwiceWithChartInInputDir(t *testing.T) {
	gen := writeExample(t)
	cfg := newConfig(t, gen.BaseDir())
	cfg.OutputPath = filepath.Join(gen.BaseDir(), "timers.svg")

	a, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Run())
	require.FileExists(t, cfg.OutputPath)

	// a fresh analyzer sees the chart of the previous run on disk
	again, err := New(newConfigWithOutput(t, gen.BaseDir(), cfg.OutputPath))
	require.NoError(t, err)
	require.NoError(t, again.Run())

	tl, err := again.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"IO", "Total"}, tl.Names())
}

func newConfigWithOutput(t *testing.T, dir, output string) *Config {
	cfg := newConfig(t, dir)
	cfg.OutputPath = output
	return cfg
}

func TestRunUnsupportedOutput(t *testing.T) {
	gen := writeExample(t)
	cfg := newConfig(t, gen.BaseDir())
	cfg.OutputPath = filepath.Join(t.TempDir(), "timers.bmp")

	a, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, a.Run())
}

func TestWatchRerunsOnChange(t *testing.T) {
	gen := writeExample(t)
	cfg := newConfig(t, gen.BaseDir())
	cfg.SummaryFormat = "none"

	a, err := New(cfg)
	require.NoError(t, err)
	passes := make(chan error, 10)
	a.afterPass = func(err error) { passes <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	waitPass := func() error {
		select {
		case err := <-passes:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a pass")
			return nil
		}
	}

	require.NoError(t, waitPass())

	_, err = gen.WriteTimer("Compute", fixtures.Row{Step: 1, Start: t0.Add(time.Second), Duration: 0.5})
	require.NoError(t, err)
	require.NoError(t, waitPass())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}

	tl, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"IO", "Compute", "Total"}, tl.Names())
}

func TestWatchIgnoresOwnChart(t *testing.T) {
	gen := writeExample(t)
	cfg := newConfig(t, gen.BaseDir())
	cfg.OutputPath = filepath.Join(gen.BaseDir(), "timers.svg")
	cfg.SummaryFormat = "none"

	a, err := New(cfg)
	require.NoError(t, err)
	passes := make(chan error, 10)
	a.afterPass = func(err error) { passes <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	select {
	case err := <-passes:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the first pass")
	}

	// the chart written by the first pass does not trigger another one
	select {
	case err := <-passes:
		t.Fatalf("unexpected pass after writing the chart: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	_, err = gen.WriteTimer("Compute", fixtures.Row{Step: 1, Start: t0.Add(time.Second), Duration: 0.5})
	require.NoError(t, err)
	select {
	case err := <-passes:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the second pass")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestCacheStats(t *testing.T) {
	stats := NewCacheStats()
	stats.Record(parser.ParseResult{File: "a", Miss: parser.MissNone})
	stats.Record(parser.ParseResult{File: "b", Miss: parser.MissNotCached})
	stats.Record(parser.ParseResult{File: "c", Miss: parser.MissSize})
	stats.Record(parser.ParseResult{File: "d", Error: errors.New("boom")})

	total, hits, misses, failures, hitRate := stats.GetStats()
	assert.Equal(t, 4, total)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 25.0, hitRate)
	assert.Equal(t, map[parser.MissReason]int{parser.MissNotCached: 1, parser.MissSize: 1}, stats.MissReasons())
}

func TestLoadGeneratedRun(t *testing.T) {
	gen := fixtures.NewTimingGenerator(t.TempDir())
	require.NoError(t, gen.GenerateRun(t0, 3, "Setup", "Solve", "Output"))

	a, err := New(newConfig(t, gen.BaseDir()))
	require.NoError(t, err)
	tl, err := a.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Solve", "Setup", "Output", "Total"}, tl.Names())
	assert.Equal(t, timeline.OriginAggregate, tl.OriginSource)
	for i, timer := range tl.Timers {
		assert.Equal(t, i, timer.Rank())
		assert.Equal(t, 4, timer.TotalCount())
	}
	assert.Equal(t, 9.0, tl.Aggregate.TotalDuration())
}
