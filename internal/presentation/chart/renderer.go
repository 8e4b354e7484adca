package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/constants"
	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Options are the rendering toggles, passed explicitly to every render
type Options struct {
	// Scale divides time-series durations by their step delta
	Scale        bool
	Palette      Palette
	TickInterval time.Duration
	MaxTicks     int
	Location     *time.Location
	// Width and Height are the size of one panel
	Width  vg.Length
	Height vg.Length
}

// Renderer turns an ordered, aligned set of timers into chart panels
type Renderer struct {
	opts Options
}

// NewRenderer fills unset options with their defaults
func NewRenderer(opts Options) *Renderer {
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.DefaultTickInterval
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = constants.MaxTimeTicks
	}
	if opts.Location == nil {
		opts.Location = util.GetTimeProvider().Location()
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Renderer{opts: opts}
}

// Options returns the effective options
func (r *Renderer) Options() Options {
	return r.opts
}

// Plot builds the panel of one chart kind. Timers must be in display order.
func (r *Renderer) Plot(kind Kind, timers []*model.Timer) (*plot.Plot, error) {
	switch kind {
	case KindBars:
		return r.barPlot(timers)
	case KindSeries:
		return r.seriesPlot(timers)
	default:
		return nil, fmt.Errorf("unknown chart type %q", kind)
	}
}

func (r *Renderer) barPlot(timers []*model.Timer) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Timer intervals"
	p.X.Label.Text = "Time"
	p.HideY()
	p.Y.Min, p.Y.Max = 0, float64(len(timers))

	var origin time.Time
	if len(timers) > 0 {
		origin = timers[0].Origin()
	}
	p.X.Tick.Marker = TimeTicker{
		Origin:   origin,
		Interval: r.opts.TickInterval,
		Location: r.opts.Location,
		MaxTicks: r.opts.MaxTicks,
	}

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	p.Add(grid, trackLines{count: len(timers), style: plotter.DefaultGridLineStyle})

	var names plotter.XYLabels
	for _, t := range timers {
		fill := withAlpha(r.opts.Palette.ColorFor(t.Rank()), constants.BarAlpha)
		for _, span := range BarSpans(t) {
			bar, err := plotter.NewPolygon(plotter.XYs{
				{X: span.Left, Y: span.Bottom},
				{X: span.Right, Y: span.Bottom},
				{X: span.Right, Y: span.Top},
				{X: span.Left, Y: span.Top},
			})
			if err != nil {
				return nil, fmt.Errorf("bar for timer %s: %w", t.Name(), err)
			}
			bar.Color = fill
			bar.LineStyle = draw.LineStyle{Color: fill}
			p.Add(bar)

			names.XYs = append(names.XYs, span.Center())
			names.Labels = append(names.Labels, t.Name())
		}
	}

	if len(names.Labels) > 0 {
		labels, err := plotter.NewLabels(names)
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YCenter
			labels.TextStyle[i].Color = color.Black
		}
		p.Add(labels)
	}

	return p, nil
}

func (r *Renderer) seriesPlot(timers []*model.Timer) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Duration per time step"
	if r.opts.Scale {
		p.Title.Text += " (scaled by step delta)"
	}
	p.X.Label.Text = "Time step"
	p.Y.Label.Text = "Duration (seconds)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	lines := 0
	for _, t := range timers {
		pts := SeriesPoints(t, r.opts.Scale)
		if len(pts) == 0 {
			util.LogDebugf("Timer %s has no records, skipping its series", t.Name())
			continue
		}
		util.LogDebugf("Plotting %q", t.Name())

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series for timer %s: %w", t.Name(), err)
		}
		line.LineStyle.Color = r.opts.Palette.ColorFor(t.Rank())
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(t.Name(), line)
		lines++
	}

	if lines == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = constants.DurationFloor, 1
	}
	// keep both bounds positive for the log axis
	if p.Y.Min >= p.Y.Max {
		p.Y.Min, p.Y.Max = p.Y.Min/10, p.Y.Max*10
	}
	return p, nil
}

// Render draws one panel per kind, stacked vertically in the requested
// order, and writes the figure to w in the given format
func (r *Renderer) Render(w io.Writer, format string, kinds []Kind, timers []*model.Timer) error {
	if len(kinds) == 0 {
		return fmt.Errorf("no chart type requested")
	}

	plots := make([][]*plot.Plot, 0, len(kinds))
	for _, kind := range kinds {
		p, err := r.Plot(kind, timers)
		if err != nil {
			return err
		}
		plots = append(plots, []*plot.Plot{p})
	}

	c, err := draw.NewFormattedCanvas(r.opts.Width, r.opts.Height*vg.Length(len(plots)), format)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadY:      vg.Millimeter * 6,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i, row := range plots {
		row[0].Draw(canvases[i][0])
	}

	_, err = c.WriteTo(w)
	return err
}

// Save renders to path; the image format follows the file extension
func (r *Renderer) Save(path string, kinds []Kind, timers []*model.Timer) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := r.Render(f, format, kinds, timers); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

// FormatOf returns the image format for an output path
func FormatOf(path string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return "", fmt.Errorf("output %q has no extension (supported: %s)", path, strings.Join(draw.Formats(), ", "))
	}
	if !slices.Contains(draw.Formats(), format) {
		return "", fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(draw.Formats(), ", "))
	}
	return format, nil
}

// trackLines separates the bar chart tracks
type trackLines struct {
	count int
	style draw.LineStyle
}

func (g trackLines) Plot(c draw.Canvas, p *plot.Plot) {
	_, trY := p.Transforms(&c)
	for i := 0; i <= g.count; i++ {
		y := trY(float64(i))
		if y < c.Min.Y || y > c.Max.Y {
			continue
		}
		c.StrokeLine2(g.style, c.Min.X, y, c.Max.X, y)
	}
}
