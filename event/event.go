package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents one occurrence in its owned form. Events are immutable
// once created and safe to share across goroutines as long as the payload
// holds no aliases into short-lived buffers.
type Event[P any] struct {
	// Meta contains standard event information.
	Meta Metadata

	// Payload contains the event-specific data.
	Payload P
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the ingress or module that produced the event.
	Source string

	// CorrelationID links related events (e.g., request/response).
	CorrelationID string

	// CausationID links to the event that caused this one.
	CausationID string

	// Version is the schema version of the payload.
	Version int
}

// NewMetadata creates metadata with a fresh ID, the current time, and
// schema version 1.
func NewMetadata(source string) Metadata {
	return Metadata{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    source,
		Version:   1,
	}
}

// New creates an event with generated metadata.
func New[P any](source string, payload P) Event[P] {
	return Event[P]{
		Meta:    NewMetadata(source),
		Payload: payload,
	}
}

// NewWithMetadata creates an event with caller-supplied metadata, filling in
// any missing ID, timestamp, or version.
func NewWithMetadata[P any](meta Metadata, payload P) Event[P] {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Version == 0 {
		meta.Version = 1
	}
	return Event[P]{Meta: meta, Payload: payload}
}

// Metadata returns the event's metadata for type-erased handling.
func (e Event[P]) Metadata() Metadata {
	return e.Meta
}

// WithCorrelation returns a copy of the event with a correlation ID set.
func (e Event[P]) WithCorrelation(correlationID string) Event[P] {
	e.Meta.CorrelationID = correlationID
	return e
}

// CausedBy returns a copy of the event linked to the event that caused it.
// The causation ID becomes the parent's ID; the correlation ID is inherited
// from the parent unless already set.
func (e Event[P]) CausedBy(parent Metadata) Event[P] {
	e.Meta.CausationID = parent.ID
	if e.Meta.CorrelationID == "" {
		e.Meta.CorrelationID = parent.CorrelationID
	}
	return e
}

// WithSource returns a copy of the event with a different source.
func (e Event[P]) WithSource(source string) Event[P] {
	e.Meta.Source = source
	return e
}

// MetadataProvider is implemented by types that can provide event metadata.
type MetadataProvider interface {
	Metadata() Metadata
}
