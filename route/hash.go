package route

import "sync"

// Map is the general-purpose hash-keyed router: O(1) average lookup with
// insertion and removal at runtime. Map is safe for concurrent use; lookups
// proceed concurrently while mutations are serialized.
type Map[K comparable, T any] struct {
	mu      sync.RWMutex
	entries map[K]T
}

// NewMap creates an empty hash router.
func NewMap[K comparable, T any]() *Map[K, T] {
	return &Map[K, T]{entries: make(map[K]T)}
}

// Add registers a target under key, failing with ErrDuplicateKey if the key
// already has a route.
func (m *Map[K, T]) Add(key K, target T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; exists {
		return ErrDuplicateKey
	}
	m.entries[key] = target
	return nil
}

// Set registers a target under key, replacing any existing route.
func (m *Map[K, T]) Set(key K, target T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = target
}

// Remove deletes the route for key, reporting whether one existed.
func (m *Map[K, T]) Remove(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists {
		return false
	}
	delete(m.entries, key)
	return true
}

// Route implements Router.
func (m *Map[K, T]) Route(key K) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	target, ok := m.entries[key]
	return target, ok
}

// Len reports the number of registered routes.
func (m *Map[K, T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Keys returns the registered keys in unspecified order.
func (m *Map[K, T]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}
