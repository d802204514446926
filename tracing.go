package bt

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
)

var noopTracer = opentracing.NoopTracer{}

// childSpanFromContext starts a span named "bt::"+operation as a child of
// whatever span is already on ctx (falling back to the no-op tracer),
// generalized from the teacher's tick-only helper to also back History
// spans.
func childSpanFromContext(ctx context.Context, operation string) (opentracing.Span, context.Context) {
	span := opentracing.SpanFromContext(ctx)

	var tracer opentracing.Tracer = &noopTracer
	if span != nil {
		tracer = span.Tracer()
	}

	return opentracing.StartSpanFromContextWithTracer(
		ctx,
		tracer,
		"bt::"+operation,
	)
}
