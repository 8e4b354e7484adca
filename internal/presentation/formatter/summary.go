package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// SummaryFormatter writes a short prose report
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(w io.Writer, report Report) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("Timer Summary Report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(report.Rows) == 0 {
		b.WriteString("No timers to summarize\n\n")
		b.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if !report.Origin.IsZero() {
		fmt.Fprintf(&b, "Started: %s\n", util.GetTimeProvider().Format(report.Origin, "2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "Timers: %d\n", len(report.Rows))
	if report.Steps > 0 {
		fmt.Fprintf(&b, "Time steps: %s\n", util.FormatNumber(int(report.Steps)))
	}
	if report.HasAggregate {
		fmt.Fprintf(&b, "Total: %s s (%s)\n", util.FormatSeconds(report.TotalSeconds), util.FormatDuration(report.TotalSeconds))
	} else {
		b.WriteString("Total: - (no aggregate timer)\n")
	}
	b.WriteString("\n")

	b.WriteString("Timers:\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, row := range report.Rows {
		fmt.Fprintf(&b, "\n%s:\n", row.Name)
		fmt.Fprintf(&b, "  Records:        %s\n", util.FormatNumber(row.Records))
		fmt.Fprintf(&b, "  Duration:       %s s\n", util.FormatSeconds(row.Seconds))
		fmt.Fprintf(&b, "  Per time step:  %s\n", formatPerStep(row))
		fmt.Fprintf(&b, "  Of total:       %s %%\n", formatPercent(row))
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
