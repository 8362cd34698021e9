package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/dispatchkit/hook"
)

// Dispatcher composes one Provider and one Delivery into the kernel's entry
// point for a fully-routed event. Failures are scoped per dispatch: an
// event's error surfaces to the caller and never affects other events.
type Dispatcher[E any] struct {
	provider   Provider[E]
	delivery   Delivery[E]
	metrics    MetricsSink[E]
	deadletter DeadLetter[E]
	correlator Correlator[E]
	tracer     Tracer
	logger     *slog.Logger
}

// Option configures a Dispatcher.
type Option[E any] func(*Dispatcher[E])

// WithMetrics installs a sink observing every dispatch outcome.
func WithMetrics[E any](sink MetricsSink[E]) Option[E] {
	return func(d *Dispatcher[E]) { d.metrics = sink }
}

// WithDeadLetter installs a sink offered each event whose dispatch failed.
func WithDeadLetter[E any](sink DeadLetter[E]) Option[E] {
	return func(d *Dispatcher[E]) { d.deadletter = sink }
}

// WithCorrelator installs the extractor that keys tracing spans.
func WithCorrelator[E any](c Correlator[E]) Option[E] {
	return func(d *Dispatcher[E]) { d.correlator = c }
}

// WithTracer installs a tracer wrapping each dispatch in a span.
func WithTracer[E any](t Tracer) Option[E] {
	return func(d *Dispatcher[E]) { d.tracer = t }
}

// WithLogger installs a logger for boundary failures (dead-letter sink
// errors). Nil disables logging.
func WithLogger[E any](l *slog.Logger) Option[E] {
	return func(d *Dispatcher[E]) { d.logger = l }
}

// New creates a dispatcher over a provider and a delivery strategy.
func New[E any](p Provider[E], del Delivery[E], opts ...Option[E]) *Dispatcher[E] {
	if p == nil || del == nil {
		panic("dispatch: dispatcher requires a provider and a delivery")
	}
	d := &Dispatcher[E]{provider: p, delivery: del}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves the event's targets and delivers to them. A nil return
// with no targets means the event was rejected: no consumer exists, which is
// not a failure. Hook errors surface as the returned error after the
// boundary sinks have been notified.
func (d *Dispatcher[E]) Dispatch(ctx context.Context, evt E) error {
	start := time.Now()

	finish := func(Outcome) {}
	if d.tracer != nil {
		var correlation string
		if d.correlator != nil {
			correlation, _ = d.correlator(evt)
		}
		ctx, finish = d.tracer.Start(ctx, correlation)
	}

	targets := d.provider.Resolve(evt)
	if len(targets) == 0 {
		o := Outcome{Result: hook.Continue, Rejected: true, Elapsed: time.Since(start)}
		finish(o)
		d.record(evt, o)
		return nil
	}

	res, err := d.delivery.Deliver(ctx, evt, targets)
	o := Outcome{Result: res, Err: err, Elapsed: time.Since(start), Targets: len(targets)}
	finish(o)
	d.record(evt, o)

	if err != nil && d.deadletter != nil {
		if derr := d.deadletter.Offer(ctx, evt, err); derr != nil && d.logger != nil {
			d.logger.Warn("dead-letter sink failed", "error", derr, "cause", err)
		}
	}
	return err
}

func (d *Dispatcher[E]) record(evt E, o Outcome) {
	if d.metrics != nil {
		d.metrics.Record(evt, o)
	}
}
