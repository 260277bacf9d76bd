package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"steergen/internal/watch"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	watchTarget   string
	watchOut      string
	watchDebounce time.Duration
)

// watchCmd regenerates the documents whenever the project changes
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate steering documents on file changes",
	Long: `Watches the project for source and manifest changes and regenerates the
steering documents after each burst of changes settles.

Runs until interrupted.

Examples:
  steergen watch
  steergen watch ./shop --target cursor --debounce 2s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchTarget, "target", "t", "", "Steering target (defaults to the configured target)")
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "Directory the documents are written under (defaults to the configured output_dir)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before regenerating (defaults to the configured debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	target, err := effectiveTarget(watchTarget)
	if err != nil {
		return err
	}

	root := projectRoot(args)
	outDir := flagOr(watchOut, cfg.OutputDir)

	debounce := cfg.GetDebounce()
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	regenerate := func(ctx context.Context) error {
		bundle, _, err := buildBundle(ctx, root, cfg.Framework, target)
		if err != nil {
			return err
		}
		return writeBundle(bundle, outDir)
	}

	// Generate once up front so the documents match the current state
	// before the first change arrives.
	if err := regenerate(ctx); err != nil {
		return err
	}

	w, err := watch.New(root, cfg.Watch.Paths, debounce, regenerate, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("Watching %s (target %s, debounce %s). Press Ctrl-C to stop.\n", root, target, debounce)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal")
	w.Stop()

	stats := w.Stats()
	fmt.Printf("Saw %d change(s), regenerated %d time(s)\n", stats.EventsSeen, stats.RunsTriggered)
	return nil
}
