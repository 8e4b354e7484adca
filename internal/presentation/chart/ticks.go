package chart

import (
	"math"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/constants"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"gonum.org/v1/plot"
)

// TimeTickFormat is the label layout of the bar chart time axis
const TimeTickFormat = "15:04:05"

// TimeTicker labels an axis of seconds-since-origin with wall clock times.
// Ticks fall on whole multiples of Interval.
type TimeTicker struct {
	Origin   time.Time
	Interval time.Duration
	Location *time.Location
	MaxTicks int
}

var _ plot.Ticker = TimeTicker{}

// Ticks implements plot.Ticker
func (tt TimeTicker) Ticks(min, max float64) []plot.Tick {
	if max < min || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	loc := tt.Location
	if loc == nil {
		loc = time.Local
	}

	interval := tt.effectiveInterval(max - min)
	start := tt.Origin.Add(util.SecondsToDuration(min))
	end := tt.Origin.Add(util.SecondsToDuration(max))

	ts := start.Truncate(interval)
	if ts.Before(start) {
		ts = ts.Add(interval)
	}

	var ticks []plot.Tick
	for ; !ts.After(end); ts = ts.Add(interval) {
		ticks = append(ticks, plot.Tick{
			Value: ts.Sub(tt.Origin).Seconds(),
			Label: ts.In(loc).Format(TimeTickFormat),
		})
	}
	return ticks
}

// effectiveInterval widens the interval to the smallest multiple that keeps
// the tick count within MaxTicks
func (tt TimeTicker) effectiveInterval(span float64) time.Duration {
	interval := tt.Interval
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}
	maxTicks := tt.MaxTicks
	if maxTicks <= 0 {
		maxTicks = constants.MaxTimeTicks
	}

	count := span / interval.Seconds()
	if count <= float64(maxTicks) {
		return interval
	}
	factor := math.Ceil(count / float64(maxTicks))
	return interval * time.Duration(factor)
}
