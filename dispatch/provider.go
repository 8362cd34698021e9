package dispatch

import (
	"github.com/dshills/dispatchkit/hook"
	"github.com/dshills/dispatchkit/route"
)

// Provider resolves the hooks that should observe an event. An empty result
// means no consumer exists: the event is rejected, which is not an error.
type Provider[E any] interface {
	Resolve(evt E) []hook.Hook[E]
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc[E any] func(E) []hook.Hook[E]

// Resolve implements Provider.
func (f ProviderFunc[E]) Resolve(evt E) []hook.Hook[E] {
	return f(evt)
}

// Targets builds a provider that resolves every event to the same fixed hook
// list. Nil hooks are skipped.
func Targets[E any](hooks ...hook.Hook[E]) Provider[E] {
	fixed := make([]hook.Hook[E], 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			fixed = append(fixed, h)
		}
	}
	return ProviderFunc[E](func(E) []hook.Hook[E] {
		return fixed
	})
}

// KeyFunc extracts a routing key from an event. The boolean reports whether
// the event is routable at all.
type KeyFunc[E any, K comparable] func(E) (K, bool)

// RouteProvider resolves targets through a router: the key function extracts
// a key, the router maps it to a hook. Events without a key, and keys
// without a route, resolve to nothing.
type RouteProvider[E any, K comparable] struct {
	router route.Router[K, hook.Hook[E]]
	key    KeyFunc[E, K]
}

// NewRouteProvider builds a router-backed provider.
func NewRouteProvider[E any, K comparable](r route.Router[K, hook.Hook[E]], key KeyFunc[E, K]) *RouteProvider[E, K] {
	if r == nil || key == nil {
		panic("dispatch: route provider requires a router and a key function")
	}
	return &RouteProvider[E, K]{router: r, key: key}
}

// Resolve implements Provider.
func (p *RouteProvider[E, K]) Resolve(evt E) []hook.Hook[E] {
	key, ok := p.key(evt)
	if !ok {
		return nil
	}
	target, ok := p.router.Route(key)
	if !ok {
		return nil
	}
	return []hook.Hook[E]{target}
}
