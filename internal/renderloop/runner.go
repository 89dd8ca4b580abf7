package renderloop

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// RunnerConfig holds configuration for the frame runner.
type RunnerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Runner drives a registry at a fixed frame cadence.
type Runner struct {
	interval time.Duration
	registry *Registry
	logger   *slog.Logger
	frames   atomic.Uint64
}

// NewRunner creates a runner for the given registry. A zero or negative
// interval defaults to 60 frames per second.
func NewRunner(cfg RunnerConfig, registry *Registry) *Runner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		interval: interval,
		registry: registry,
		logger:   logger,
	}
}

// Frames returns the number of frames driven so far.
func (r *Runner) Frames() uint64 {
	return r.frames.Load()
}

// Run drives the registry once per interval. Blocks until the context is
// cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("render loop started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("render loop stopped", "frames", r.frames.Load())
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick drives a single frame. A panicking participant must not take the
// whole loop down.
func (r *Runner) tick() {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("render loop panic recovered", "error", err)
		}
	}()

	r.registry.DriveFrame()
	r.frames.Add(1)
}
