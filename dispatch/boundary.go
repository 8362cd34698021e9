package dispatch

import (
	"context"
	"time"

	"github.com/dshills/dispatchkit/hook"
)

// Outcome summarizes one dispatch for boundary collaborators.
type Outcome struct {
	// Result is the terminal chain result: Continue when no target claimed
	// the event, Stop when one handled or halted it.
	Result hook.Result

	// Err is the dispatch's failure, if any.
	Err error

	// Rejected reports that no target resolved for the event at all.
	Rejected bool

	// Elapsed is the wall-clock duration of the dispatch.
	Elapsed time.Duration

	// Targets is the number of hooks the event was delivered to.
	Targets int
}

// MetricsSink observes dispatch outcomes. Record is called on the dispatch
// path and must not block; buffer or drop inside the sink.
type MetricsSink[E any] interface {
	Record(evt E, o Outcome)
}

// DeadLetter receives events whose dispatch failed, together with the
// failure. Delivery to the sink is best-effort: its error is logged and
// never re-fails the original dispatch.
type DeadLetter[E any] interface {
	Offer(ctx context.Context, evt E, err error) error
}

// Correlator extracts a correlation identifier from an event for tracing.
// The boolean reports whether the event carries one.
type Correlator[E any] func(E) (string, bool)

// Tracer wraps each dispatch in a span-like scope keyed by the event's
// correlation identifier. Start returns the context hooks run under and a
// finish function invoked with the dispatch outcome. The dispatcher's
// control flow is identical with or without a tracer.
type Tracer interface {
	Start(ctx context.Context, correlation string) (context.Context, func(Outcome))
}
