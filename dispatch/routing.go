package dispatch

import (
	"context"

	"github.com/dshills/dispatchkit/hook"
	"github.com/dshills/dispatchkit/route"
)

// Routing adapts a router into a hook so routed handling can sit anywhere in
// a chain. On each event it extracts a key; events without one pass with
// Continue. A matched key invokes the routed target: its error propagates,
// and otherwise the chain halts with Stop (the event is handled) unless
// fallthrough is enabled. An unmatched key invokes the fallback target with
// the same semantics when one is configured, and passes with Continue when
// not.
type Routing[E any, K comparable] struct {
	router      route.Router[K, hook.Hook[E]]
	key         KeyFunc[E, K]
	fallback    hook.Hook[E]
	fallThrough bool
}

// RoutingOption configures a Routing hook.
type RoutingOption[E any, K comparable] func(*Routing[E, K])

// WithFallback sets the target invoked when no route matches the extracted
// key.
func WithFallback[E any, K comparable](h hook.Hook[E]) RoutingOption[E, K] {
	return func(r *Routing[E, K]) { r.fallback = h }
}

// WithFallthrough makes a routed invocation return Continue instead of Stop,
// so later chain stages still observe the event after a match.
func WithFallthrough[E any, K comparable]() RoutingOption[E, K] {
	return func(r *Routing[E, K]) { r.fallThrough = true }
}

// NewRouting builds a routing hook over a router and a key extractor.
func NewRouting[E any, K comparable](router route.Router[K, hook.Hook[E]], key KeyFunc[E, K], opts ...RoutingOption[E, K]) *Routing[E, K] {
	if router == nil || key == nil {
		panic("dispatch: routing requires a router and a key function")
	}
	r := &Routing[E, K]{router: router, key: key}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnEvent implements hook.Hook.
func (r *Routing[E, K]) OnEvent(ctx context.Context, evt E) (hook.Result, error) {
	key, ok := r.key(evt)
	if !ok {
		return hook.Continue, nil
	}

	target, ok := r.router.Route(key)
	if !ok {
		if r.fallback == nil {
			return hook.Continue, nil
		}
		target = r.fallback
	}

	if _, err := target.OnEvent(ctx, evt); err != nil {
		return hook.Stop, err
	}
	if r.fallThrough {
		return hook.Continue, nil
	}
	return hook.Stop, nil
}
