package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTimerNameFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/out/Timing_IO.csv", "IO"},
		{"Timing_Total.csv", "Total"},
		{"/out/Timing_Wait.txt", "Wait"},
		{"/out/Timing_with.dots.csv", "with.dots"},
		{"/out/NoPrefix.csv", "NoPrefix"},
		{"/out/Timing_.csv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimerNameFromPath(tt.path))
		})
	}
}

func TestKindOfName(t *testing.T) {
	assert.Equal(t, KindAggregate, KindOfName("Total"))
	assert.Equal(t, KindRegular, KindOfName("total"))
	assert.Equal(t, KindRegular, KindOfName("IO"))
	assert.True(t, IsAggregatePath("/x/Timing_Total.csv"))
	assert.False(t, IsAggregatePath("/x/Timing_Totals.csv"))
	assert.Equal(t, "aggregate", KindAggregate.String())
	assert.Equal(t, "regular", KindRegular.String())
}

func TestTimerRecordEnd(t *testing.T) {
	r := TimerRecord{Step: 1, Start: t0, Duration: 1.5}
	assert.Equal(t, 1500*time.Millisecond, r.Elapsed())
	assert.Equal(t, t0.Add(1500*time.Millisecond), r.End())
}

func TestNewParsedTimer(t *testing.T) {
	records := []TimerRecord{{Step: 1, Start: t0, Duration: 5}}
	p := NewParsedTimer("/out/Timing_Total.csv", records)

	assert.Equal(t, "Total", p.Name)
	assert.Equal(t, KindAggregate, p.Kind)
	first, ok := p.FirstStart()
	require.True(t, ok)
	assert.Equal(t, t0, first)

	_, ok = NewParsedTimer("/out/Timing_Empty.csv", nil).FirstStart()
	assert.False(t, ok)
}

func TestFinalize(t *testing.T) {
	records := []TimerRecord{
		{Step: 2, Start: t0.Add(2 * time.Second), Duration: 1},
		{Step: 5, Start: t0.Add(4 * time.Second), Duration: 0.5},
	}
	p := NewParsedTimer("/out/Timing_IO.csv", records)
	timer := p.Finalize(Placement{Origin: t0, Rank: 0, TotalCount: 2})

	assert.Equal(t, "IO", timer.Name())
	assert.Equal(t, "/out/Timing_IO.csv", timer.Path())
	assert.False(t, timer.IsAggregate())
	assert.Equal(t, t0, timer.Origin())
	assert.Equal(t, 0, timer.Rank())
	assert.Equal(t, 2, timer.TotalCount())
	assert.Equal(t, 2, timer.Len())

	assert.Equal(t, []time.Time{
		t0.Add(3 * time.Second),
		t0.Add(4500 * time.Millisecond),
	}, timer.EndTimestamps())
	assert.Equal(t, []float64{2, 5}, timer.Steps())
	assert.Equal(t, []float64{1, 0.5}, timer.Durations())
	assert.InDelta(t, 1.5, timer.TotalDuration(), 1e-12)
	assert.Equal(t, int64(5), timer.LastStep())
	assert.InDelta(t, 2.0, timer.Offset(timer.Record(0).Start), 1e-12)
}

func TestFinalizeIsolatesRecords(t *testing.T) {
	records := []TimerRecord{{Step: 1, Start: t0, Duration: 1}}
	p := NewParsedTimer("/out/Timing_IO.csv", records)
	timer := p.Finalize(Placement{Origin: t0})

	records[0].Duration = 99
	got := timer.Records()
	got[0].Duration = 42

	assert.Equal(t, 1.0, timer.Record(0).Duration)
}
