package formatter

import (
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/model"
)

// Row is the summary line of one timer
type Row struct {
	Name      string   `json:"name"`
	Aggregate bool     `json:"aggregate"`
	Records   int      `json:"records"`
	Seconds   float64  `json:"seconds"`
	PerStep   *float64 `json:"per_step,omitempty"`
	Percent   *float64 `json:"percent,omitempty"`
}

// Report summarizes where the time of a run went
type Report struct {
	Origin time.Time `json:"origin"`
	// Steps is the number of time steps the per-step column divides by
	Steps        int64   `json:"steps"`
	TotalSeconds float64 `json:"total_seconds"`
	HasAggregate bool    `json:"has_aggregate"`
	Rows         []Row   `json:"timers"`
}

// BuildReport summarizes timers in display order. reference is the
// aggregate timer percentages are computed against; without one the
// percentage column is left empty and the step count comes from the
// largest step of any timer.
func BuildReport(timers []*model.Timer, reference *model.Timer) Report {
	report := Report{
		HasAggregate: reference != nil,
		Rows:         make([]Row, 0, len(timers)),
	}

	if reference != nil {
		report.Steps = reference.LastStep()
		report.TotalSeconds = reference.TotalDuration()
		report.Origin = reference.Origin()
	} else {
		for _, t := range timers {
			if last := t.LastStep(); last > report.Steps {
				report.Steps = last
			}
		}
		if len(timers) > 0 {
			report.Origin = timers[0].Origin()
		}
	}

	for _, t := range timers {
		row := Row{
			Name:      t.Name(),
			Aggregate: t.IsAggregate(),
			Records:   t.Len(),
			Seconds:   t.TotalDuration(),
		}
		if report.Steps > 0 {
			perStep := row.Seconds / float64(report.Steps)
			row.PerStep = &perStep
		}
		if reference != nil && report.TotalSeconds > 0 {
			percent := row.Seconds / report.TotalSeconds * 100
			row.Percent = &percent
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}
