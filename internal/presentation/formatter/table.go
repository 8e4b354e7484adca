package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timer-analyzer/internal/presentation/layout"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

const tableTitle = "Timing of different code aspects"

// minNameWidth is the narrowest the name column is squeezed to
const minNameWidth = 8

type TableFormatter struct {
	headers []string
	sizer   layout.Sizer
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Code Aspect", "Records", "Seconds", "Per Step", "% of Total"},
	}
}

func (f *TableFormatter) Format(w io.Writer, report Report) error {
	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, []string{
			row.Name,
			util.FormatNumber(row.Records),
			util.FormatSeconds(row.Seconds),
			formatPerStep(row),
			formatPercent(row),
		})
	}

	widths := f.calculateColumnWidths(rows, f.sizer.MaxWidth(w))
	inner := tableWidth(widths) - 2

	var b strings.Builder
	f.writeBorder(&b, []int{inner - 2}, "top")
	fmt.Fprintf(&b, "│ %s │\n", util.CenterText(tableTitle, inner-2))
	f.writeBorder(&b, widths, "middle")
	f.writeRow(&b, f.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, row := range rows {
		f.writeRow(&b, row, widths)
	}
	f.writeBorder(&b, widths, "middle")

	human := "-"
	if report.HasAggregate {
		human = util.FormatDuration(report.TotalSeconds)
	}
	label := "Total (human readable):"
	fmt.Fprintf(&b, "│ %s │\n", f.sizer.Fit(label+" "+human, inner-2, true))
	f.writeBorder(&b, []int{inner - 2}, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

// calculateColumnWidths sizes every column to its content. When maxWidth is
// set the name column gives up space first.
func (f *TableFormatter) calculateColumnWidths(rows [][]string, maxWidth int) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = f.sizer.DisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := f.sizer.DisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// the title and footer rows span the whole table
	minInner := f.sizer.DisplayWidth(tableTitle) + 4
	if total := tableWidth(widths) - 2; total < minInner {
		widths[0] += minInner - total
	}

	if maxWidth > 0 {
		if over := tableWidth(widths) - maxWidth; over > 0 {
			widths[0] = max(widths[0]-over, minNameWidth)
		}
	}
	return widths
}

// tableWidth is the printed width of a row including borders
func tableWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + 3
	}
	return total
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// writeRow left-aligns the name column and right-aligns the numbers
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		b.WriteString(" ")
		b.WriteString(f.sizer.Fit(value, widths[i], i == 0))
		b.WriteString(" │")
	}
	b.WriteString("\n")
}
