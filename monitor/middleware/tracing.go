package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/syncscope/syncscope/monitor"
)

var _ monitor.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    monitor.Service
}

func Tracing(tracer trace.Tracer, svc monitor.Service) monitor.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) Prime(ctx context.Context) (err error) {
	ctx, span := tm.tracer.Start(ctx, "prime")
	defer span.End()

	return tm.svc.Prime(ctx)
}

func (tm *tracing) Tick(ctx context.Context) (resp monitor.Status, err error) {
	ctx, span := tm.tracer.Start(ctx, "tick")
	defer func() {
		span.SetAttributes(
			attribute.Int64("key", resp.Key),
			attribute.Bool("located", resp.Located),
		)
		span.End()
	}()

	return tm.svc.Tick(ctx)
}
