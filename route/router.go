package route

// Router resolves a routing key to a target. The boolean reports whether a
// route matched; resolution of a missing key is not an error. Route must not
// mutate router state.
type Router[K comparable, T any] interface {
	Route(key K) (T, bool)
}

// RouterFunc adapts a plain function to the Router interface.
type RouterFunc[K comparable, T any] func(K) (T, bool)

// Route implements Router.
func (f RouterFunc[K, T]) Route(key K) (T, bool) {
	return f(key)
}

// Entry is one key/target association used to build the fixed backends.
type Entry[K comparable, T any] struct {
	Key    K
	Target T
}
