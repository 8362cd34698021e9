package observe

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/dshills/dispatchkit/dispatch"
)

const meterName = "dispatchkit"

// OTel records dispatch outcomes through OpenTelemetry instruments: counters
// for dispatches, errors, and rejections, and a duration histogram. It uses
// the global meter provider; configure it before construction. If instrument
// creation fails the sink degrades to noop instruments with one warning.
type OTel[E any] struct {
	dispatches metric.Int64Counter
	errors     metric.Int64Counter
	rejected   metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewOTel creates an OpenTelemetry metrics sink. The logger (nil allowed)
// receives a single warning if instruments cannot be created.
func NewOTel[E any](logger *slog.Logger) *OTel[E] {
	s, err := newOTel[E](otel.Meter(meterName))
	if err != nil {
		if logger != nil {
			logger.Warn("otel metrics unavailable, using noop instruments", "error", err)
		}
		return newNoopOTel[E]()
	}
	return s
}

func newOTel[E any](meter metric.Meter) (*OTel[E], error) {
	dispatches, err := meter.Int64Counter("dispatchkit.dispatches",
		metric.WithDescription("Number of dispatched events"),
	)
	if err != nil {
		return nil, err
	}
	errCounter, err := meter.Int64Counter("dispatchkit.errors",
		metric.WithDescription("Number of failed dispatches"),
	)
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("dispatchkit.rejected",
		metric.WithDescription("Number of events no target resolved for"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("dispatchkit.duration_ms",
		metric.WithDescription("Dispatch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	return &OTel[E]{
		dispatches: dispatches,
		errors:     errCounter,
		rejected:   rejected,
		duration:   duration,
	}, nil
}

func newNoopOTel[E any]() *OTel[E] {
	meter := noop.NewMeterProvider().Meter(meterName)
	s, _ := newOTel[E](meter)
	return s
}

// Record implements dispatch.MetricsSink.
func (s *OTel[E]) Record(_ E, o dispatch.Outcome) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("result", o.Result.String()),
	)
	s.dispatches.Add(ctx, 1, attrs)
	if o.Err != nil {
		s.errors.Add(ctx, 1, attrs)
	}
	if o.Rejected {
		s.rejected.Add(ctx, 1)
	}
	s.duration.Record(ctx, float64(o.Elapsed.Microseconds())/1000.0, attrs)
}
