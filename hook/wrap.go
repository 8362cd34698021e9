package hook

import (
	"context"
	"errors"
	"runtime/debug"
	"time"
)

// Timeout wraps an inner hook with a deadline. See WithTimeout.
type Timeout[E any] struct {
	inner Hook[E]
	limit time.Duration
}

// WithTimeout wraps inner so each invocation races against limit. On expiry
// the inner hook's goroutine is detached, its eventual result is discarded,
// and a *TimeoutError is returned. The context passed to inner carries the
// deadline, giving cooperative implementations a chance to abort early. A
// non-positive limit disables the wrapper.
//
// The race runs inner on its own goroutine, so a recover wrapper cannot
// catch inner's panics from outside; wrap inner with WithRecover inside the
// timeout if it may panic.
func WithTimeout[E any](inner Hook[E], limit time.Duration) *Timeout[E] {
	return &Timeout[E]{inner: inner, limit: limit}
}

// OnEvent implements Hook.
func (t *Timeout[E]) OnEvent(ctx context.Context, evt E) (Result, error) {
	if t.limit <= 0 {
		return t.inner.OnEvent(ctx, evt)
	}

	tctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	// Buffered so a detached hook's late send never blocks its goroutine.
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		res, err := t.inner.OnEvent(tctx, evt)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return Stop, o.err
		}
		return o.res, nil
	case <-tctx.Done():
		// Parent cancellation is not a timeout.
		if errors.Is(tctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return Stop, &TimeoutError{Limit: t.limit, Elapsed: time.Since(start)}
		}
		return Stop, ctx.Err()
	}
}

// Recover wraps an inner hook with fault isolation. See WithRecover.
type Recover[E any] struct {
	inner Hook[E]
}

// WithRecover wraps inner so that a panic during its execution becomes a
// *PanicError result instead of unwinding past the wrapper. The stack trace
// is captured at the point of recovery.
func WithRecover[E any](inner Hook[E]) *Recover[E] {
	return &Recover[E]{inner: inner}
}

// OnEvent implements Hook.
func (r *Recover[E]) OnEvent(ctx context.Context, evt E) (res Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			res = Stop
			err = &PanicError{Value: v, Stack: string(debug.Stack())}
		}
	}()
	return r.inner.OnEvent(ctx, evt)
}

// Conditional gates an inner hook behind a predicate. See When.
type Conditional[E any] struct {
	pred  func(E) bool
	inner Hook[E]
}

// When wraps inner so it only runs for events satisfying pred; other events
// pass with Continue and the inner hook is never invoked.
func When[E any](pred func(E) bool, inner Hook[E]) *Conditional[E] {
	return &Conditional[E]{pred: pred, inner: inner}
}

// OnEvent implements Hook.
func (c *Conditional[E]) OnEvent(ctx context.Context, evt E) (Result, error) {
	if c.pred != nil && !c.pred(evt) {
		return Continue, nil
	}
	return c.inner.OnEvent(ctx, evt)
}
