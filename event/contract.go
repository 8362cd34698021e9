package event

// Keyer is implemented by events that expose their own routing key. The
// second return value reports whether the event is routable at all; events
// without a key flow past routing stages untouched.
type Keyer[K comparable] interface {
	RouteKey() (K, bool)
}

// Promotable marks a borrowed-phase value that can produce an independently
// owned copy of itself. Promotion is one-directional: the owned copy must
// share no storage with the borrowed original, so it may outlive the arena
// scope the original was built in.
type Promotable[T any] interface {
	Promote() T
}

// PromoteAll promotes every element of a borrowed slice into a fresh owned
// slice.
func PromoteAll[T Promotable[T]](borrowed []T) []T {
	if borrowed == nil {
		return nil
	}
	owned := make([]T, len(borrowed))
	for i, b := range borrowed {
		owned[i] = b.Promote()
	}
	return owned
}
