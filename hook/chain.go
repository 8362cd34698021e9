package hook

import (
	"context"
	"sync"
)

// Run executes hooks in order: Continue advances, Stop halts immediately,
// and an error halts and propagates. The returned Result is Continue only
// when every hook ran and continued. A canceled context halts before the
// first hook runs.
func Run[E any](ctx context.Context, evt E, hooks []Hook[E]) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Stop, err
	}
	for _, h := range hooks {
		res, err := h.OnEvent(ctx, evt)
		if err != nil {
			return Stop, err
		}
		if res == Stop {
			return Stop, nil
		}
	}
	return Continue, nil
}

// Chain is an ordered, runtime-mutable sequence of hooks. It implements
// Hook itself: executing the chain applies the Run algorithm to a snapshot
// of its entries, so concurrent mutation never affects an in-flight
// dispatch. Chain is safe for concurrent use.
type Chain[E any] struct {
	mu    sync.RWMutex
	hooks []Hook[E]
}

// NewChain creates a chain with the given hooks in order. Nil hooks are
// skipped.
func NewChain[E any](hooks ...Hook[E]) *Chain[E] {
	c := &Chain[E]{}
	for _, h := range hooks {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
	return c
}

// Append adds a hook to the end of the chain. Nil hooks are ignored.
func (c *Chain[E]) Append(h Hook[E]) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, h)
}

// Insert places a hook at position i, shifting later entries. Position
// len(chain) is equivalent to Append.
func (c *Chain[E]) Insert(i int, h Hook[E]) error {
	if h == nil {
		return ErrNilHook
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i > len(c.hooks) {
		return ErrInvalidIndex
	}
	c.hooks = append(c.hooks, nil)
	copy(c.hooks[i+1:], c.hooks[i:])
	c.hooks[i] = h
	return nil
}

// RemoveAt deletes the hook at position i.
func (c *Chain[E]) RemoveAt(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.hooks) {
		return ErrInvalidIndex
	}
	c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
	return nil
}

// Len reports the number of hooks in the chain.
func (c *Chain[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hooks)
}

// OnEvent implements Hook by running the chain against a snapshot of its
// current entries.
func (c *Chain[E]) OnEvent(ctx context.Context, evt E) (Result, error) {
	return Run(ctx, evt, c.snapshot())
}

func (c *Chain[E]) snapshot() []Hook[E] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.hooks) == 0 {
		return nil
	}
	snap := make([]Hook[E], len(c.hooks))
	copy(snap, c.hooks)
	return snap
}
