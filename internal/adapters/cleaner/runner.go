// Package cleaner runs the periodic sweep of stale pending-auth attempts and
// expired sessions.
package cleaner

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/observability/statsd"
)

// Sweeper is the subset of the auth service the cleaner drives.
type Sweeper interface {
	CleanupExpired(ctx context.Context) error
}

// Runner executes cleanup passes at a fixed interval until its context is
// cancelled. A startup jitter spreads passes out when multiple instances
// start together.
type Runner struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sweeper Sweeper
	Config  config.CleanupConfig
	Logger  *slog.Logger
	// Metrics is optional.
	Metrics statsd.Sink
}

// NewRunner creates a cleanup runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("sweeper is required")
	}
	interval := opts.Config.Interval
	if interval <= 0 {
		interval = config.DefaultCleanupInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sweeper:  opts.Sweeper,
		interval: interval,
		logger:   logger.With("component", "cleaner"),
		metrics:  opts.Metrics,
	}, nil
}

// Run starts the cleanup loop and runs until the context is cancelled.
// Returns nil on graceful shutdown.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting cleanup runner", "interval", r.interval)

	r.waitWithJitter(ctx)
	if ctx.Err() != nil {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "cleanup runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r.runPass(ctx)
		}
	}
}

// runPass executes one cleanup pass. Errors are logged and counted but never
// stop the loop.
func (r *Runner) runPass(ctx context.Context) {
	start := time.Now()
	err := r.sweeper.CleanupExpired(ctx)
	elapsed := time.Since(start)

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		r.logger.Debug("cleanup pass cancelled", "error", err)
		return
	default:
		result = "error"
		r.logger.Error("cleanup pass failed", "error", err)
	}

	if r.metrics != nil {
		tags := map[string]string{"result": result}
		r.metrics.Count("cleanup.pass", 1, tags)
		r.metrics.Timing("cleanup.pass_duration", elapsed, tags)
	}
}

// waitWithJitter delays up to 10% of the interval before the first pass.
func (r *Runner) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		r.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)))

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
