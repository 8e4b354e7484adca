package layout

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"golang.org/x/term"
)

// MinTableWidth is the narrowest width a table is squeezed to
const MinTableWidth = 60

// Sizer measures and pads text by display width, so names with wide runes
// keep table columns aligned
type Sizer struct{}

// DisplayWidth calculates the display width of a string containing wide runes
func (Sizer) DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.DisplayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// Fit truncates s to width and pads it to exactly width columns
func (i Sizer) Fit(s string, width int, leftAlign bool) string {
	if i.DisplayWidth(s) > width {
		s = util.TruncateToWidth(s, width)
	}
	return i.PadString(s, width, leftAlign)
}

// MaxWidth returns the usable width when w is a terminal, 0 (unbounded)
// otherwise
func (Sizer) MaxWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}

	termWidth, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	if termWidth < MinTableWidth {
		termWidth = MinTableWidth
	}

	util.LogDebugf("Terminal width %d", termWidth)
	return termWidth
}
