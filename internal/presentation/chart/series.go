package chart

import (
	"math"

	"github.com/penwyp/go-timer-analyzer/internal/core/constants"
	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"gonum.org/v1/plot/plotter"
)

// BarSpan is one record of a timer laid out on the bar chart. X values are
// seconds since the shared origin, Y values are track units.
type BarSpan struct {
	Left, Right float64
	Bottom, Top float64
}

// Center returns the point where the timer name is drawn
func (s BarSpan) Center() plotter.XY {
	return plotter.XY{X: (s.Left + s.Right) / 2, Y: (s.Bottom + s.Top) / 2}
}

// BarSpans lays out every record of t on the track matching its rank
func BarSpans(t *model.Timer) []BarSpan {
	spans := make([]BarSpan, 0, t.Len())
	bottom := float64(t.Rank())
	ends := t.EndTimestamps()
	for i := 0; i < t.Len(); i++ {
		spans = append(spans, BarSpan{
			Left:   t.Offset(t.Record(i).Start),
			Right:  t.Offset(ends[i]),
			Bottom: bottom,
			Top:    bottom + 1,
		})
	}
	return spans
}

// StepDeltas returns the divisor of every sample. Without scaling every
// delta is 1. With scaling the first delta is the first step itself and the
// others are the distance to the previous step; non-positive deltas fall
// back to 1.
func StepDeltas(steps []float64, scale bool) []float64 {
	deltas := make([]float64, len(steps))
	for i := range steps {
		d := 1.0
		if scale {
			if i == 0 {
				d = steps[0]
			} else {
				d = steps[i] - steps[i-1]
			}
			if d <= 0 || math.IsNaN(d) {
				d = 1
			}
		}
		deltas[i] = d
	}
	return deltas
}

// SeriesPoints returns the time-series line of t. A single record is drawn
// from (0, DurationFloor) to its own point. Values that cannot be shown on a
// log axis are raised to DurationFloor.
func SeriesPoints(t *model.Timer, scale bool) plotter.XYs {
	steps := t.Steps()
	durations := t.Durations()

	switch len(steps) {
	case 0:
		return nil
	case 1:
		steps = []float64{0, steps[0]}
		durations = []float64{constants.DurationFloor, durations[0]}
	}

	deltas := StepDeltas(steps, scale)
	pts := make(plotter.XYs, len(steps))
	for i := range steps {
		y := durations[i] / deltas[i]
		if y <= 0 || math.IsNaN(y) || math.IsInf(y, 0) {
			y = constants.DurationFloor
		}
		pts[i] = plotter.XY{X: steps[i], Y: y}
	}
	return pts
}
