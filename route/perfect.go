package route

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Displacement seeds rarely exceed a few hundred at bucket load 4; the cap
// only bounds pathological inputs such as colliding 64-bit hashes.
const maxSeed = 1 << 20

// Perfect is a collision-free router over a fixed string key set: O(1)
// worst-case lookup, no runtime insertion. Built with the hash-and-displace
// construction: keys are grouped into buckets by a first-level hash, then
// each bucket receives a displacement seed that maps its keys onto free
// slots. Perfect is immutable after construction and safe for concurrent
// use without locking.
type Perfect[T any] struct {
	seeds   []uint32
	keys    []string
	targets []T
}

// BuildPerfect constructs a perfect-hash router for the given entries. The
// table is minimal: exactly len(entries) slots.
func BuildPerfect[T any](entries map[string]T) (*Perfect[T], error) {
	n := len(entries)
	if n == 0 {
		return &Perfect[T]{}, nil
	}

	nbuckets := (n + 3) / 4
	p := &Perfect[T]{
		seeds:   make([]uint32, nbuckets),
		keys:    make([]string, n),
		targets: make([]T, n),
	}

	type bucket struct {
		id     int
		keys   []string
		hashes []uint64
	}
	buckets := make([]bucket, nbuckets)
	for i := range buckets {
		buckets[i].id = i
	}
	for k := range entries {
		h := xxhash.Sum64String(k)
		b := &buckets[h%uint64(nbuckets)]
		b.keys = append(b.keys, k)
		b.hashes = append(b.hashes, h)
	}

	// Place the fullest buckets first while free slots are plentiful.
	sort.Slice(buckets, func(i, j int) bool {
		return len(buckets[i].keys) > len(buckets[j].keys)
	})

	occupied := make([]bool, n)
	slots := make([]int, 0, 8)

	for _, b := range buckets {
		if len(b.keys) == 0 {
			break
		}

		placed := false
	seeding:
		for seed := uint32(1); seed <= maxSeed; seed++ {
			slots = slots[:0]
			for _, h := range b.hashes {
				s := int(displace(h, seed) % uint64(n))
				if occupied[s] {
					continue seeding
				}
				for _, prev := range slots {
					if prev == s {
						continue seeding
					}
				}
				slots = append(slots, s)
			}
			for i, s := range slots {
				occupied[s] = true
				p.keys[s] = b.keys[i]
				p.targets[s] = entries[b.keys[i]]
			}
			p.seeds[b.id] = seed
			placed = true
			break
		}
		if !placed {
			return nil, ErrBuildFailed
		}
	}
	return p, nil
}

// Route implements Router. Lookup is one hash, one displacement, and one
// key comparison.
func (p *Perfect[T]) Route(key string) (T, bool) {
	if len(p.keys) == 0 {
		var zero T
		return zero, false
	}
	h := xxhash.Sum64String(key)
	slot := displace(h, p.seeds[h%uint64(len(p.seeds))]) % uint64(len(p.keys))
	if p.keys[slot] != key {
		var zero T
		return zero, false
	}
	return p.targets[slot], true
}

// Len reports the number of routes.
func (p *Perfect[T]) Len() int {
	return len(p.keys)
}

// displace derives a slot hash from the first-level hash and a bucket seed.
func displace(h uint64, seed uint32) uint64 {
	x := h ^ uint64(seed)*0x9e3779b97f4a7c15
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	return x
}
