package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/analyzer"
	"github.com/penwyp/go-timer-analyzer/internal/config"
	"github.com/penwyp/go-timer-analyzer/internal/util"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the charts whenever the timer files change",
	Long: `Renders once, then watches the input directory and renders again after every
burst of changes. A failed pass is logged and the watch keeps going. Interrupt
(Ctrl+C) stops it.

Example:
  go-timer-analyzer watch -i ./timings -t barh -t ts --summary none`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", config.DefaultDebounce,
		"Quiet period after the last change before re-rendering")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("debounce") {
		settings.Debounce = watchDebounce
	}
	if settings.Debounce < 0 {
		return usageErrorf("--debounce must not be negative, got %v", settings.Debounce)
	}

	analyzerConfig, err := buildConfig(settings)
	if err != nil {
		return err
	}
	analyzerConfig.Stdout = cmd.OutOrStdout()

	a, err := analyzer.New(analyzerConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.LogInfof("Watching %s (debounce %v)", analyzerConfig.InputDir, analyzerConfig.Debounce)
	return a.Watch(ctx)
}
