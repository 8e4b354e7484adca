package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// Output formats of the summary report
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
	FormatNone    = "none"
)

// Formats lists the accepted --summary values
var Formats = []string{FormatTable, FormatJSON, FormatCSV, FormatSummary, FormatNone}

// Formatter writes a report
type Formatter interface {
	Format(w io.Writer, report Report) error
}

// New returns the formatter for a --summary value
func New(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return NewTableFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	case FormatSummary:
		return NewSummaryFormatter(), nil
	case FormatNone:
		return nopFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown summary format %q (possibilities: %s)", format, strings.Join(Formats, ", "))
	}
}

type nopFormatter struct{}

func (nopFormatter) Format(io.Writer, Report) error { return nil }

func formatPerStep(row Row) string {
	if row.PerStep == nil {
		return "-"
	}
	return util.FormatSeconds(*row.PerStep)
}

func formatPercent(row Row) string {
	if row.Percent == nil {
		return "-"
	}
	return util.FormatPercent(*row.Percent)
}
