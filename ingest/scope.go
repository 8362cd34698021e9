package ingest

import "github.com/dshills/dispatchkit/arena"

// Scope is the per-event ingestion scope: it owns the arena backing every
// borrowed allocation made while one event is processed synchronously. A
// scope is created at ingress, used by exactly one goroutine, and ended as
// soon as the synchronous phase completes or short-circuits. Nothing
// allocated in the scope may be referenced after End except through
// promotion.
type Scope struct {
	arena  *arena.Arena
	pool   *arena.Pool
	source string
	ended  bool
}

// Option configures a Scope.
type Option func(*Scope)

// WithArenaCapacity sets the arena capacity for a scope that does not draw
// from a pool.
func WithArenaCapacity(capacity int) Option {
	return func(s *Scope) {
		if s.pool == nil {
			s.arena = arena.New(capacity)
		}
	}
}

// WithPool draws the scope's arena from a pool; End returns it. The pool
// option wins over WithArenaCapacity.
func WithPool(p *arena.Pool) Option {
	return func(s *Scope) {
		if p != nil {
			s.pool = p
			s.arena = p.Get()
		}
	}
}

// WithSource sets the source recorded on events promoted out of this scope.
func WithSource(source string) Option {
	return func(s *Scope) { s.source = source }
}

// Begin opens an ingestion scope. Without options the scope owns a fresh
// arena of the default capacity.
func Begin(opts ...Option) Scope {
	var s Scope
	for _, opt := range opts {
		opt(&s)
	}
	if s.arena == nil {
		s.arena = arena.New(0)
	}
	return s
}

// End closes the scope, bulk-releasing every borrowed allocation in O(1).
// Pooled arenas return to their pool. End is idempotent.
func (s *Scope) End() {
	if s.ended {
		return
	}
	s.ended = true
	if s.pool != nil {
		s.pool.Put(s.arena)
	} else {
		s.arena.Reset()
	}
	s.arena = nil
}

// Arena exposes the scope's arena for borrowed allocations.
func (s *Scope) Arena() *arena.Arena {
	return s.arena
}

// Source returns the source label configured for this scope.
func (s *Scope) Source() string {
	return s.source
}

// Ended reports whether the scope has been closed.
func (s *Scope) Ended() bool {
	return s.ended
}

// View wraps raw ingress bytes in a borrowed view bound to this scope. The
// bytes are not copied; the view is valid only until End.
func (s *Scope) View(raw []byte) View {
	return View{scope: s, raw: raw}
}

// CopyView copies raw into the scope's arena and returns a view over the
// arena-backed copy, for ingress buffers the transport will reuse before the
// synchronous phase completes. Exhausted capacity is fatal for this event.
func (s *Scope) CopyView(raw []byte) (View, error) {
	b, err := s.arena.Copy(raw)
	if err != nil {
		return View{}, err
	}
	return View{scope: s, raw: b}, nil
}
