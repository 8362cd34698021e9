package dispatch

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/dispatchkit/hook"
)

// Registry is a named, priority-ordered hook provider. Higher priorities
// resolve first; ties resolve in registration order. Each registration
// carries an atomic enable toggle so hooks can be switched off without
// structural mutation, individually or by group. Registry is safe for
// concurrent use.
type Registry[E any] struct {
	mu      sync.RWMutex
	entries []*registration[E]
	seq     int
}

type registration[E any] struct {
	name     string
	group    string
	priority int
	seq      int
	hook     hook.Hook[E]
	enabled  atomic.Bool
}

// Handle controls one registration's enable toggle. Toggling is safe from
// any goroutine and takes effect on the next Resolve.
type Handle struct {
	enabled *atomic.Bool
}

// Enable switches the registration on.
func (h *Handle) Enable() { h.enabled.Store(true) }

// Disable switches the registration off; Resolve skips it.
func (h *Handle) Disable() { h.enabled.Store(false) }

// Enabled reports the current toggle state.
func (h *Handle) Enabled() bool { return h.enabled.Load() }

// RegisterOption configures one registration.
type RegisterOption func(*registrationConfig)

type registrationConfig struct {
	priority int
	group    string
}

// WithPriority sets the registration's priority; higher runs first. The
// default is 0.
func WithPriority(p int) RegisterOption {
	return func(c *registrationConfig) { c.priority = p }
}

// WithGroup tags the registration so EnableGroup and DisableGroup can toggle
// it together with its peers.
func WithGroup(group string) RegisterOption {
	return func(c *registrationConfig) { c.group = group }
}

// NewRegistry creates an empty registry.
func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{}
}

// Register adds h under name, replacing any existing registration with the
// same name (the replacement keeps its new priority and group and starts
// enabled). The returned handle toggles this registration.
func (r *Registry[E]) Register(name string, h hook.Hook[E], opts ...RegisterOption) *Handle {
	cfg := registrationConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := &registration[E]{
		name:     name,
		group:    cfg.group,
		priority: cfg.priority,
		hook:     h,
	}
	reg.enabled.Store(true)

	r.mu.Lock()
	defer r.mu.Unlock()

	reg.seq = r.seq
	r.seq++

	for i, existing := range r.entries {
		if existing.name == name {
			r.entries[i] = reg
			r.sortLocked()
			return &Handle{enabled: &reg.enabled}
		}
	}
	r.entries = append(r.entries, reg)
	r.sortLocked()
	return &Handle{enabled: &reg.enabled}
}

// Remove deletes the registration with the given name, reporting whether one
// existed.
func (r *Registry[E]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.entries {
		if reg.name == name {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// EnableGroup switches on every registration tagged with group.
func (r *Registry[E]) EnableGroup(group string) {
	r.setGroup(group, true)
}

// DisableGroup switches off every registration tagged with group.
func (r *Registry[E]) DisableGroup(group string) {
	r.setGroup(group, false)
}

func (r *Registry[E]) setGroup(group string, enabled bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range r.entries {
		if reg.group == group {
			reg.enabled.Store(enabled)
		}
	}
}

// Names returns the registered names in resolution order.
func (r *Registry[E]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, reg := range r.entries {
		names[i] = reg.name
	}
	return names
}

// Len reports the number of registrations, enabled or not.
func (r *Registry[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Resolve implements Provider: a snapshot of the enabled hooks in priority
// order.
func (r *Registry[E]) Resolve(E) []hook.Hook[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hooks := make([]hook.Hook[E], 0, len(r.entries))
	for _, reg := range r.entries {
		if reg.enabled.Load() {
			hooks = append(hooks, reg.hook)
		}
	}
	if len(hooks) == 0 {
		return nil
	}
	return hooks
}

// sortLocked orders entries by priority (higher first), then registration
// order. Caller holds the write lock.
func (r *Registry[E]) sortLocked() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority > r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
}
