package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rigcore/rig/internal/core/graph"
)

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Drive the per-frame lifecycle over a composition",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		manifestPath := cfg.Runtime.Manifest
		if len(args) > 0 {
			manifestPath = args[0]
		}
		if manifestPath == "" {
			return errors.New("no manifest given (argument or runtime.manifest in config)")
		}

		system, err := buildSystem(manifestPath, log)
		if err != nil {
			return err
		}

		selection := graph.NewSelection(system,
			cfg.Selection.MultiSelect, cfg.Selection.ExclusiveSelect)
		defer selection.Dispose()

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runLoop(ctx, system.Graph(), cfg.Runtime.TickRate, cfg.Runtime.MaxFrames, log)
	},
}

// runLoop invokes update, tick, pre-render, and post-render on the root
// graph once per tick, in that order, until the context is cancelled or
// maxFrames is reached.
func runLoop(ctx context.Context, g *graph.Graph, tickRate time.Duration, maxFrames uint64, log *zap.Logger) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	var frame uint64
	last := time.Now()
	log.Info("frame loop started", zap.Duration("tick_rate", tickRate))

	for {
		select {
		case <-ctx.Done():
			log.Info("frame loop stopped", zap.Uint64("frames", frame))
			return nil
		case now := <-ticker.C:
			fc := &graph.FrameContext{
				Time:  now,
				Delta: now.Sub(last),
				Frame: frame,
			}
			last = now
			g.Update(fc)
			g.Tick(fc)
			g.PreRender(fc)
			g.PostRender(fc)
			frame++
			if maxFrames > 0 && frame >= maxFrames {
				log.Info("frame loop finished", zap.Uint64("frames", frame))
				return nil
			}
		}
	}
}
