package model

import (
	"path/filepath"
	"strings"

	"github.com/penwyp/go-timer-analyzer/internal/core/constants"
)

// Kind tells the aggregate timer apart from regular ones
type Kind int

const (
	KindRegular Kind = iota
	KindAggregate
)

func (k Kind) String() string {
	if k == KindAggregate {
		return "aggregate"
	}
	return "regular"
}

// FileEvent represents a file system event on a timer file
type FileEvent struct {
	Path      string
	Operation string
}

// TimerNameFromPath derives the display name of a timer from its file:
// "/out/Timing_IO.csv" -> "IO"
func TimerNameFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(name, constants.TimerFilePrefix)
}

// KindOfName classifies a timer by its display name
func KindOfName(name string) Kind {
	if name == constants.AggregateTimerName {
		return KindAggregate
	}
	return KindRegular
}

// IsAggregatePath reports whether path names the aggregate timer file
func IsAggregatePath(path string) bool {
	return KindOfName(TimerNameFromPath(path)) == KindAggregate
}
