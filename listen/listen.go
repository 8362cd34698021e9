package listen

// Listener is a synchronous filter/transform stage. Listen returns the
// transformed value and true to pass the input onward, or the zero value and
// false to reject it. Implementations must be pure: no I/O, no blocking, and
// no references to the input retained past the call.
type Listener[In, Out any] interface {
	Listen(in In) (Out, bool)
}

// Func adapts a plain function to the Listener interface.
type Func[In, Out any] func(In) (Out, bool)

// Listen implements Listener.
func (f Func[In, Out]) Listen(in In) (Out, bool) {
	return f(in)
}

// Filter builds a pass-through listener that accepts inputs satisfying pred.
func Filter[T any](pred func(T) bool) Listener[T, T] {
	return Func[T, T](func(v T) (T, bool) {
		if pred(v) {
			return v, true
		}
		var zero T
		return zero, false
	})
}

// Map builds a listener that transforms every input unconditionally.
func Map[In, Out any](fn func(In) Out) Listener[In, Out] {
	return Func[In, Out](func(in In) (Out, bool) {
		return fn(in), true
	})
}

// FilterMap builds a listener from a combined filter and transform.
func FilterMap[In, Out any](fn func(In) (Out, bool)) Listener[In, Out] {
	return Func[In, Out](fn)
}

// Then composes two listeners left to right. The second stage only runs when
// the first accepts; rejection at any stage short-circuits the chain.
func Then[A, B, C any](first Listener[A, B], second Listener[B, C]) Listener[A, C] {
	return Func[A, C](func(a A) (C, bool) {
		b, ok := first.Listen(a)
		if !ok {
			var zero C
			return zero, false
		}
		return second.Listen(b)
	})
}
