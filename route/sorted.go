package route

import (
	"cmp"
	"fmt"
	"slices"
)

// Below this size a linear scan beats binary search on modern hardware.
const sortedScanMax = 4

// Sorted is a fixed router backed by a sorted array: O(log n) lookup with
// minimal memory overhead. It is immutable after construction and therefore
// safe for concurrent use without locking.
type Sorted[K cmp.Ordered, T any] struct {
	keys    []K
	targets []T
}

// NewSorted builds a sorted router from entries, rejecting duplicates.
func NewSorted[K cmp.Ordered, T any](entries []Entry[K, T]) (*Sorted[K, T], error) {
	s := &Sorted[K, T]{
		keys:    make([]K, 0, len(entries)),
		targets: make([]T, 0, len(entries)),
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[K, T]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	for i, e := range sorted {
		if i > 0 && e.Key == sorted[i-1].Key {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, e.Key)
		}
		s.keys = append(s.keys, e.Key)
		s.targets = append(s.targets, e.Target)
	}
	return s, nil
}

// Route implements Router.
func (s *Sorted[K, T]) Route(key K) (T, bool) {
	if len(s.keys) <= sortedScanMax {
		for i, k := range s.keys {
			if k == key {
				return s.targets[i], true
			}
		}
		var zero T
		return zero, false
	}

	i, found := slices.BinarySearch(s.keys, key)
	if !found {
		var zero T
		return zero, false
	}
	return s.targets[i], true
}

// Len reports the number of routes.
func (s *Sorted[K, T]) Len() int {
	return len(s.keys)
}

// Keys returns the registered keys in sorted order. The caller must not
// modify the returned slice.
func (s *Sorted[K, T]) Keys() []K {
	return s.keys
}
