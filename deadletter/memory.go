package deadletter

import (
	"context"
	"sync"
)

// Memory is a fixed-capacity in-memory ring: when full, the oldest record
// is overwritten. Suitable for tests and for keeping a recent-failures
// window without unbounded growth. Memory is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	ring  []Record
	next  int
	count int
}

// NewMemory creates a ring holding up to capacity records (non-positive
// capacities get a small default).
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 128
	}
	return &Memory{ring: make([]Record, capacity)}
}

// Write implements Sink.
func (m *Memory) Write(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring[m.next] = rec
	m.next = (m.next + 1) % len(m.ring)
	if m.count < len(m.ring) {
		m.count++
	}
	return nil
}

// Records returns a snapshot of the stored records, oldest first.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, m.count)
	start := m.next - m.count
	if start < 0 {
		start += len(m.ring)
	}
	for i := 0; i < m.count; i++ {
		out = append(out, m.ring[(start+i)%len(m.ring)])
	}
	return out
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
