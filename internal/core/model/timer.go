package model

import (
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// TimerRecord is one row of a timer file
type TimerRecord struct {
	Step     int64     `json:"step"`
	Start    time.Time `json:"start"`
	Duration float64   `json:"duration"` // seconds, >= 0
}

// Elapsed returns the duration as a time.Duration
func (r TimerRecord) Elapsed() time.Duration {
	return util.SecondsToDuration(r.Duration)
}

// End returns Start + Duration
func (r TimerRecord) End() time.Time {
	return r.Start.Add(r.Elapsed())
}

// ParsedTimer is a timer as read from disk, before the ordering pass has
// given it an origin and a rank.
type ParsedTimer struct {
	Name    string
	Path    string
	Kind    Kind
	Records []TimerRecord
}

// NewParsedTimer names and classifies the records read from path
func NewParsedTimer(path string, records []TimerRecord) ParsedTimer {
	name := TimerNameFromPath(path)
	return ParsedTimer{
		Name:    name,
		Path:    path,
		Kind:    KindOfName(name),
		Records: records,
	}
}

// FirstStart returns the start of the first record
func (p ParsedTimer) FirstStart() (time.Time, bool) {
	if len(p.Records) == 0 {
		return time.Time{}, false
	}
	return p.Records[0].Start, true
}

// Placement is the pass-wide context a timer needs for display
type Placement struct {
	Origin     time.Time
	Rank       int
	TotalCount int
}

// Timer is the finalized, read-only view of one timer file
type Timer struct {
	name    string
	path    string
	kind    Kind
	records []TimerRecord
	ends    []time.Time

	origin     time.Time
	rank       int
	totalCount int
}

// Finalize builds the immutable Timer once its placement is known
func (p ParsedTimer) Finalize(placement Placement) *Timer {
	records := make([]TimerRecord, len(p.Records))
	copy(records, p.Records)

	ends := make([]time.Time, len(records))
	for i, r := range records {
		ends[i] = r.End()
	}

	return &Timer{
		name:       p.Name,
		path:       p.Path,
		kind:       p.Kind,
		records:    records,
		ends:       ends,
		origin:     placement.Origin,
		rank:       placement.Rank,
		totalCount: placement.TotalCount,
	}
}

func (t *Timer) Name() string { return t.name }
func (t *Timer) Path() string { return t.path }
func (t *Timer) Kind() Kind { return t.kind }
func (t *Timer) IsAggregate() bool { return t.kind == KindAggregate }
func (t *Timer) Origin() time.Time { return t.origin }
func (t *Timer) Rank() int { return t.rank }
func (t *Timer) TotalCount() int { return t.totalCount }
func (t *Timer) Len() int { return len(t.records) }
func (t *Timer) Record(i int) TimerRecord { return t.records[i] }

// Records returns a copy of the records
func (t *Timer) Records() []TimerRecord {
	out := make([]TimerRecord, len(t.records))
	copy(out, t.records)
	return out
}

// EndTimestamps returns start+duration for every record
func (t *Timer) EndTimestamps() []time.Time {
	out := make([]time.Time, len(t.ends))
	copy(out, t.ends)
	return out
}

// Steps returns the step column as floats, ready for plotting
func (t *Timer) Steps() []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = float64(r.Step)
	}
	return out
}

// Durations returns the duration column in seconds
func (t *Timer) Durations() []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Duration
	}
	return out
}

// TotalDuration sums the record durations in seconds
func (t *Timer) TotalDuration() float64 {
	var total float64
	for _, r := range t.records {
		total += r.Duration
	}
	return total
}

// LastStep returns the largest recorded step, 0 when empty
func (t *Timer) LastStep() int64 {
	var last int64
	for _, r := range t.records {
		if r.Step > last {
			last = r.Step
		}
	}
	return last
}

// Offset returns the number of seconds between the origin and ts
func (t *Timer) Offset(ts time.Time) float64 {
	return ts.Sub(t.origin).Seconds()
}
