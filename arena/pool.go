package arena

import "sync"

// Pool recycles arenas of a single capacity so steady-state ingestion does
// not allocate backing storage per event. Pool is safe for concurrent use.
type Pool struct {
	capacity int
	pool     sync.Pool
}

// NewPool creates a pool whose arenas have the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	p := &Pool{capacity: capacity}
	p.pool.New = func() any {
		return New(p.capacity)
	}
	return p
}

// Get returns an empty arena, reusing a previously released one when
// available.
func (p *Pool) Get() *Arena {
	return p.pool.Get().(*Arena)
}

// Put resets the arena and makes it available for reuse. Put is a no-op for
// nil arenas and for arenas of a different capacity, which are left to the
// garbage collector.
func (p *Pool) Put(a *Arena) {
	if a == nil || a.Cap() != p.capacity {
		return
	}
	a.Reset()
	p.pool.Put(a)
}

// Capacity reports the capacity of arenas produced by this pool.
func (p *Pool) Capacity() int {
	return p.capacity
}
