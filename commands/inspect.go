package commands

import (
	"fmt"
	"io"

	"github.com/penwyp/go-timer-analyzer/internal/analyzer"
	"github.com/penwyp/go-timer-analyzer/internal/core/timeline"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/chart"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/formatter"
	"github.com/penwyp/go-timer-analyzer/internal/presentation/layout"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:    "inspect",
	Short:  "Debug command to print the timer ordering and alignment",
	Long:   `Loads the timer files and prints their display order, ranks and offsets from the origin without rendering anything.`,
	Hidden: true, // Hidden from help
	RunE:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	dir, err := validateInput()
	if err != nil {
		return err
	}

	a, err := analyzer.New(&analyzer.Config{
		InputDir:      dir,
		Pattern:       settings.Pattern,
		Render:        chart.Options{Location: util.GetTimeProvider().Location()},
		SummaryFormat: formatter.FormatNone,
		SkipInvalid:   settings.SkipInvalid,
	})
	if err != nil {
		return err
	}

	tl, err := a.Load()
	if err != nil {
		return err
	}

	printTimeline(cmd.OutOrStdout(), dir, tl)
	return nil
}

// printTimeline writes one line per timer in display order
func printTimeline(w io.Writer, dir string, tl *timeline.Timeline) {
	var sizer layout.Sizer
	color := sizer.MaxWidth(w) > 0
	provider := util.GetTimeProvider()

	fmt.Fprintln(w, util.FormatHeaderTitle("=== Timer Timeline ===", color))
	fmt.Fprintf(w, "Input Directory: %s\n", dir)
	if tl.OriginSource == timeline.OriginNone {
		fmt.Fprintln(w, "Origin: none (no timer has records)")
	} else {
		fmt.Fprintf(w, "Origin: %s (%s)\n", provider.Format(tl.Origin, "2006-01-02 15:04:05.000 MST"), tl.OriginSource)
	}
	fmt.Fprintln(w)

	nameWidth := len("Timer")
	for _, t := range tl.Timers {
		nameWidth = max(nameWidth, sizer.DisplayWidth(t.Name()))
	}

	fmt.Fprintf(w, "%4s  %s  %8s  %12s  %12s\n",
		"Rank", sizer.PadString("Timer", nameWidth, true), "Records", "First Start", "Last End")
	for _, t := range tl.Timers {
		first, last := "-", "-"
		if t.Len() > 0 {
			ends := t.EndTimestamps()
			first = fmt.Sprintf("%+.3fs", t.Offset(t.Record(0).Start))
			last = fmt.Sprintf("%+.3fs", t.Offset(ends[len(ends)-1]))
		}
		fmt.Fprintf(w, "%4d  %s  %8s  %12s  %12s\n",
			t.Rank(), sizer.PadString(t.Name(), nameWidth, true), util.FormatNumber(t.Len()), first, last)
	}
}
