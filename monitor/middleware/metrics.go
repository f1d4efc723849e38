package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/syncscope/syncscope/monitor"
)

var _ monitor.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     monitor.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc monitor.Service) monitor.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Prime(ctx context.Context) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "prime").Add(1)
		mm.latency.With("method", "prime").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Prime(ctx)
}

func (mm *metricsMiddleware) Tick(ctx context.Context) (monitor.Status, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "tick").Add(1)
		mm.latency.With("method", "tick").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Tick(ctx)
}
