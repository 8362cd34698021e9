// Package deadletter provides best-effort sinks for events whose dispatch
// failed. A sink stores Records; adapters bind a sink to the dispatcher's
// DeadLetter boundary for a concrete event type. Sink failures are the
// caller's to log and ignore: a dead-letter write never re-fails the
// dispatch that produced it.
package deadletter

import (
	"context"
	"time"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/dispatchkit/dispatch"
	"github.com/dshills/dispatchkit/event"
)

// Record is one dead-lettered event.
type Record struct {
	// Time is when the record was created.
	Time time.Time

	// Source is the ingress that produced the event.
	Source string

	// Correlation links the record to related events.
	Correlation string

	// Reason is the dispatch error's message.
	Reason string

	// Payload is the owned event payload.
	Payload []byte
}

// JSON renders the record as a single compact JSON object.
func (r Record) JSON() []byte {
	b := []byte(`{}`)
	b, _ = sjson.SetBytes(b, "time", r.Time.UTC().Format(time.RFC3339Nano))
	b, _ = sjson.SetBytes(b, "source", r.Source)
	if r.Correlation != "" {
		b, _ = sjson.SetBytes(b, "correlation", r.Correlation)
	}
	b, _ = sjson.SetBytes(b, "reason", r.Reason)
	b, _ = sjson.SetBytes(b, "payload", string(r.Payload))
	return pretty.Ugly(b)
}

// Sink stores dead-letter records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// Adapt binds a sink to the dispatcher's DeadLetter boundary using enc to
// turn a failed event into a record.
func Adapt[E any](sink Sink, enc func(E, error) Record) dispatch.DeadLetter[E] {
	return adapter[E]{sink: sink, enc: enc}
}

type adapter[E any] struct {
	sink Sink
	enc  func(E, error) Record
}

func (a adapter[E]) Offer(ctx context.Context, evt E, err error) error {
	return a.sink.Write(ctx, a.enc(evt, err))
}

// Events binds a sink to the standard owned event type.
func Events(sink Sink) dispatch.DeadLetter[event.Event[[]byte]] {
	return Adapt(sink, FromEvent)
}

// FromEvent builds a record from an owned event and its dispatch error.
func FromEvent(evt event.Event[[]byte], err error) Record {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return Record{
		Time:        time.Now(),
		Source:      evt.Meta.Source,
		Correlation: evt.Meta.CorrelationID,
		Reason:      reason,
		Payload:     evt.Payload,
	}
}
