package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/syncscope/syncscope/monitor"
)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    monitor.Service
}

func Logging(logger *slog.Logger, svc monitor.Service) monitor.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) Prime(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Prime cpu baseline failed", args...)

			return
		}
		lm.logger.Info("Prime cpu baseline completed successfully", args...)
	}(time.Now())

	return lm.svc.Prime(ctx)
}

// Tick logs the canonical status line on success: exactly one per tick.
func (lm *loggingMiddleware) Tick(ctx context.Context) (resp monitor.Status, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int64("key", resp.Key),
			slog.Bool("located", resp.Located),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Sampling tick skipped", args...)

			return
		}
		lm.logger.Info(resp.String(), args...)
	}(time.Now())

	return lm.svc.Tick(ctx)
}
