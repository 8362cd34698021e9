// Package dispatch composes routing and execution into the kernel's entry
// point.
//
// A Dispatcher pairs a Provider, which resolves the hooks that care about an
// event, with a Delivery, which decides how those hooks run:
//
//   - Sequential applies the chain algorithm in declared order.
//   - FanOut runs every target concurrently and waits for all of them,
//     reporting the first error without cancelling siblings.
//
// Providers range from a fixed target list (Targets) through router-backed
// resolution (RouteProvider) to a named Registry with priorities, groups,
// and per-registration enable toggles.
//
// Routing adapts a route.Router into a hook that can sit anywhere in a
// chain: events without a key pass through untouched, a matched key hands
// the event to the routed target, and an unmatched key falls through to an
// optional fallback or the rest of the chain.
//
// The Dispatcher also carries the kernel's boundary signals: an injectable
// MetricsSink observes every dispatch outcome, a DeadLetter sink receives
// events whose hooks failed, and a Correlator plus Tracer wrap each dispatch
// in a span keyed by the event's correlation identifier. All three are
// optional and none of them alters control flow.
package dispatch
