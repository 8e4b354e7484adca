package timeline

import (
	"fmt"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// Build runs the ordering and alignment pass. Regular timers keep their
// relative order and aggregate timers are moved after them. Each timer's
// rank is its final position; every timer shares one origin, the first
// start of the first aggregate timer that has records.
func Build(parsed []model.ParsedTimer) (*Timeline, error) {
	if len(parsed) == 0 {
		return nil, ErrNoTimers
	}

	ordered := orderAggregateLast(parsed)
	origin, source, refIndex := resolveOrigin(ordered)

	total := len(ordered)
	tl := &Timeline{
		Timers:       make([]*model.Timer, total),
		Origin:       origin,
		OriginSource: source,
	}
	for rank, p := range ordered {
		tl.Timers[rank] = p.Finalize(model.Placement{
			Origin:     origin,
			Rank:       rank,
			TotalCount: total,
		})
	}
	if refIndex >= 0 {
		tl.Aggregate = tl.Timers[refIndex]
	}

	util.LogDebug(fmt.Sprintf("Timeline built: %d timers, origin %s (%s)",
		total, origin.Format(time.RFC3339Nano), source))

	return tl, nil
}

func orderAggregateLast(parsed []model.ParsedTimer) []model.ParsedTimer {
	ordered := make([]model.ParsedTimer, 0, len(parsed))
	var aggregates []model.ParsedTimer
	for _, p := range parsed {
		if p.Kind == model.KindAggregate {
			aggregates = append(aggregates, p)
			continue
		}
		ordered = append(ordered, p)
	}
	return append(ordered, aggregates...)
}

// resolveOrigin returns the origin, where it came from and the index of the
// reference aggregate timer (-1 when there is none)
func resolveOrigin(ordered []model.ParsedTimer) (time.Time, OriginSource, int) {
	aggregates := 0
	for _, p := range ordered {
		if p.Kind == model.KindAggregate {
			aggregates++
		}
	}

	for i, p := range ordered {
		if p.Kind != model.KindAggregate {
			continue
		}
		if first, ok := p.FirstStart(); ok {
			if aggregates > 1 {
				util.LogWarn(fmt.Sprintf("Found %d aggregate timers, aligning on the first with records: %s", aggregates, p.Path))
			}
			return first, OriginAggregate, i
		}
	}

	if aggregates > 0 {
		util.LogWarn("Aggregate timer has no records, aligning on the earliest timer start")
	} else {
		util.LogWarn("No aggregate timer found, aligning on the earliest timer start")
	}

	var earliest time.Time
	found := false
	for _, p := range ordered {
		first, ok := p.FirstStart()
		if !ok {
			continue
		}
		if !found || first.Before(earliest) {
			earliest = first
			found = true
		}
	}
	if !found {
		util.LogWarn("No timer has any record, origin left unset")
		return time.Time{}, OriginNone, -1
	}
	return earliest, OriginEarliest, -1
}
