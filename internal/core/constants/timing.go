package constants

import "time"

const (
	// Timer files are named <TimerFilePrefix><Name>.<ext>
	TimerFilePrefix = "Timing_"

	// AggregateTimerName is the timer that anchors alignment and is drawn last
	AggregateTimerName = "Total"

	// CommentMarker starts a comment line in timer files
	CommentMarker = '#'

	// TimerFileColumns is the minimum number of columns of a data row
	TimerFileColumns = 3
)

const (
	// DurationFloor stands in for "effectively zero" on a log-scale axis
	DurationFloor = 1.0e-7

	// DefaultTickInterval is the major tick spacing of the bar chart time axis
	DefaultTickInterval = time.Second

	// MaxTimeTicks caps the number of labelled ticks on the time axis
	MaxTimeTicks = 60

	// BarAlpha is the opacity of bar chart rectangles
	BarAlpha = 0.6
)
