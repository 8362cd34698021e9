// Package event defines the owned event value that flows through the
// asynchronous dispatch phase.
//
// An Event carries an arbitrary payload plus standard Metadata (identity,
// timing, correlation). Events are immutable once created: the With* methods
// return modified copies. An owned Event must be duplicable and safe to hand
// to an independent goroutine, which means its payload must not alias any
// ingestion arena or receive buffer; the ingest package's promotion helpers
// produce payloads that satisfy this.
//
// Two small contracts connect events to the rest of the kernel:
//
//   - Keyer lets an event expose its own routing key.
//   - Promotable marks borrowed-phase values that know how to produce an
//     independently owned copy of themselves.
package event
