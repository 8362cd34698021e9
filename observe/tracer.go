package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/dispatchkit/dispatch"
)

// Tracer wraps each dispatch in an OpenTelemetry span named "dispatch",
// keyed by the event's correlation identifier. It uses the global tracer
// provider; without one the spans are no-ops. Tracer implements
// dispatch.Tracer.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer over the global OTel tracer provider.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(meterName)}
}

// Start implements dispatch.Tracer.
func (t *Tracer) Start(ctx context.Context, correlation string) (context.Context, func(dispatch.Outcome)) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if correlation != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("dispatch.correlation_id", correlation)))
	}
	ctx, span := t.tracer.Start(ctx, "dispatch", opts...)

	return ctx, func(o dispatch.Outcome) {
		span.SetAttributes(
			attribute.String("dispatch.result", o.Result.String()),
			attribute.Bool("dispatch.rejected", o.Rejected),
			attribute.Int("dispatch.targets", o.Targets),
		)
		if o.Err != nil {
			span.RecordError(o.Err)
			span.SetStatus(codes.Error, o.Err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
