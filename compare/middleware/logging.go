package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/syncscope/syncscope/compare"
)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    compare.Service
}

func Logging(logger *slog.Logger, svc compare.Service) compare.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) ListVersions(ctx context.Context) (resp []string, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("count", len(resp)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List versions failed", args...)

			return
		}
		lm.logger.Info("List versions completed successfully", args...)
	}(time.Now())

	return lm.svc.ListVersions(ctx)
}

func (lm *loggingMiddleware) Select(ctx context.Context, indices []int) (resp []string, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Any("indices", indices),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Select versions failed", args...)

			return
		}
		args = append(args, slog.Any("versions", resp))
		lm.logger.Info("Select versions completed successfully", args...)
	}(time.Now())

	return lm.svc.Select(ctx, indices)
}

func (lm *loggingMiddleware) Assemble(ctx context.Context, versions []string) (resp compare.SeriesSet, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Any("versions", versions),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Assemble series failed", args...)

			return
		}
		lm.logger.Info("Assemble series completed successfully", args...)
	}(time.Now())

	return lm.svc.Assemble(ctx, versions)
}
