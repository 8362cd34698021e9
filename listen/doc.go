// Package listen provides the synchronous filter/transform stage that runs
// over borrowed data before any event is promoted.
//
// A Listener examines an input and either rejects it (ok == false, the event
// goes no further at zero additional cost) or passes a transformed value
// onward. Listeners are pure: no I/O, no blocking, no suspension, and no
// stored references to their input. They run on the calling goroutine inside
// the ingestion scope, so anything they return that aliases the input is
// borrowed and must be promoted before crossing into asynchronous work.
//
// Listeners compose left to right with Then; a composed chain is itself a
// Listener typed by the last stage's output:
//
//	gate := listen.Then(
//	    listen.Filter(func(s string) bool { return len(s) < 512 }),
//	    listen.Tokenize("!"),
//	)
//
//	cmd, ok := gate.Listen(raw)
//	if !ok {
//	    return // rejected, nothing allocated
//	}
package listen
