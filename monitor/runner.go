package monitor

import (
	"context"
	"log/slog"
	"time"
)

const defaultInterval = 10 * time.Second

// Runner drives the service on a fixed interval. The first tick fires
// immediately; cancellation is honored between ticks, never mid-tick.
type Runner struct {
	svc      Service
	logger   *slog.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewRunner(svc Service, logger *slog.Logger, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Runner{
		svc:      svc,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (r *Runner) Start(ctx context.Context) error {
	if err := r.svc.Prime(ctx); err != nil {
		r.logger.Warn("cpu baseline priming failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("sampling loop started", slog.Duration("interval", r.interval))

	for {
		// Tick failures are contained; the next tick retries.
		r.svc.Tick(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info("sampling loop stopping")

			return ctx.Err()
		case <-r.stopChan:
			r.logger.Info("sampling loop stopped")

			return nil
		case <-ticker.C:
		}
	}
}

func (r *Runner) Stop() {
	close(r.stopChan)
}
