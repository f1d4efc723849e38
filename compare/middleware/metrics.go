package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/syncscope/syncscope/compare"
)

var _ compare.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     compare.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc compare.Service) compare.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) ListVersions(ctx context.Context) ([]string, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list-versions").Add(1)
		mm.latency.With("method", "list-versions").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.ListVersions(ctx)
}

func (mm *metricsMiddleware) Select(ctx context.Context, indices []int) ([]string, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "select").Add(1)
		mm.latency.With("method", "select").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Select(ctx, indices)
}

func (mm *metricsMiddleware) Assemble(ctx context.Context, versions []string) (compare.SeriesSet, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "assemble").Add(1)
		mm.latency.With("method", "assemble").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Assemble(ctx, versions)
}
