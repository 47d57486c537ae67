package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// startSpan is no-op safe: without a configured tracer provider it costs
// nothing and log correlation fields stay empty.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer("etlfootball/usecase").Start(ctx, name)
}
