// Package hook defines the asynchronous processing unit of the dispatch
// kernel and the machinery for composing units into chains.
//
// # Hooks and Results
//
// A Hook receives an owned event and returns a Result plus an error:
//
//   - Continue: the hook has no claim on the event; later hooks in the same
//     chain still see it.
//   - Stop: the event is fully handled; the remaining hooks are skipped.
//   - error: the chain halts and the error propagates to the caller.
//
// Unlike the synchronous listen phase, hooks may block, perform I/O, or
// delegate to sub-dispatch. They always receive a context and must honor its
// cancellation for long-running work.
//
// # Chains
//
// Two chain representations exist with identical observable semantics:
//
//   - Chain is an ordered, runtime-mutable sequence of Hook values. Entries
//     may be appended, inserted, and removed while dispatches are in flight;
//     execution runs against a snapshot.
//   - Static2, Static3, and Static4 are fixed-arity compositions whose hook
//     types are known at compile time, removing interface indirection on the
//     hot path. They exist purely for performance.
//
// Both forms execute the same algorithm (Run): hooks in order, first Stop or
// error wins.
//
// # Wrappers
//
// Cross-cutting concerns wrap a hook without modifying it: WithTimeout races
// the inner hook against a deadline, WithRecover converts a panic into an
// error result, and When gates the inner hook behind a predicate. Wrappers
// are themselves hooks and nest freely:
//
//	h := hook.WithTimeout(hook.WithRecover(worker), 2*time.Second)
//
// # Pipelines
//
// A Pipeline fuses a synchronous listener with a terminal Handler and
// exposes the pair as a single Hook: listener rejection returns Continue
// without invoking the handler, listener acceptance runs the handler and
// returns Stop.
package hook
