package timeline

import (
	"errors"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/model"
)

// ErrNoTimers is returned when there is nothing to order
var ErrNoTimers = errors.New("no timer files found")

// OriginSource tells where the shared origin came from
type OriginSource string

const (
	// OriginAggregate: first start of the aggregate timer
	OriginAggregate OriginSource = "aggregate"
	// OriginEarliest: no usable aggregate, earliest first start of all timers
	OriginEarliest OriginSource = "earliest"
	// OriginNone: no timer has a record
	OriginNone OriginSource = "none"
)

// Timeline is the ordered, aligned set of timers handed to the renderers
type Timeline struct {
	Timers       []*model.Timer
	Origin       time.Time
	OriginSource OriginSource
	// Aggregate is the reference timer, nil when none was usable
	Aggregate *model.Timer
}

// Len returns the number of timers
func (tl *Timeline) Len() int {
	return len(tl.Timers)
}

// Names returns the timer names in display order
func (tl *Timeline) Names() []string {
	names := make([]string, len(tl.Timers))
	for i, t := range tl.Timers {
		names[i] = t.Name()
	}
	return names
}
