package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/syncscope/syncscope/compare"
)

var _ compare.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    compare.Service
}

func Tracing(tracer trace.Tracer, svc compare.Service) compare.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) ListVersions(ctx context.Context) ([]string, error) {
	ctx, span := tm.tracer.Start(ctx, "list-versions")
	defer span.End()

	return tm.svc.ListVersions(ctx)
}

func (tm *tracing) Select(ctx context.Context, indices []int) ([]string, error) {
	ctx, span := tm.tracer.Start(ctx, "select", trace.WithAttributes(
		attribute.Int("count", len(indices)),
	))
	defer span.End()

	return tm.svc.Select(ctx, indices)
}

func (tm *tracing) Assemble(ctx context.Context, versions []string) (compare.SeriesSet, error) {
	ctx, span := tm.tracer.Start(ctx, "assemble", trace.WithAttributes(
		attribute.StringSlice("versions", versions),
	))
	defer span.End()

	return tm.svc.Assemble(ctx, versions)
}
