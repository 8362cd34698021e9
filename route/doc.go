// Package route provides key-to-target lookup with interchangeable backends.
//
// Every backend satisfies the same contract:
//
//	type Router[K comparable, T any] interface {
//	    Route(key K) (T, bool)
//	}
//
// where a false return means no route matched. The backends trade lookup
// cost against mutability:
//
//   - Map: hash lookup, O(1) average, insert and remove at runtime. The
//     general-purpose default.
//   - Perfect: collision-free hash lookup, O(1) worst case, built once from
//     a fixed key set. No runtime insertion.
//   - Sorted: binary search over a sorted array, O(log n), built once,
//     minimal memory overhead. Falls back to a linear scan for tiny sets.
//   - Trie: segment-wise prefix tree over '/'-separated keys, O(segments),
//     runtime-extensible, with single-segment ('+') and trailing
//     multi-segment ('#') wildcards plus longest-literal-prefix lookup.
//   - Path: segment-wise matcher for parameterized paths (':id') with a
//     trailing catch-all ('*rest'), runtime-extensible, capturing parameter
//     values.
//
// Wildcard tie-break: a literal segment always outranks a wildcard or
// parameter at the same position, and the longest literal prefix wins, so
// registering a more specific route shadows broader ones only for the keys
// it covers.
//
// Lookups never mutate router state. The mutable backends (Map, Trie, Path)
// serialize writers behind an RWMutex while allowing concurrent readers; the
// fixed backends (Perfect, Sorted) are immutable after construction and need
// no locking at all.
package route
