// Package script runs sandboxed Lua hooks inside the dispatch kernel.
//
// gopher-lua's LState is not goroutine-safe, so an Engine owns exactly one
// state and serializes every operation through a request channel: hooks
// compiled on the same engine share the state and never race. The state
// opens only the base, table, string, and math libraries, and the functions
// that load code from outside the chunk (dofile, loadfile, load,
// loadstring) are removed.
package script

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultQueueSize bounds how many operations may wait for the state.
const DefaultQueueSize = 64

// Sentinel errors for the script engine.
var (
	// ErrEngineClosed is returned when a closed engine is used.
	ErrEngineClosed = errors.New("script: engine closed")

	// ErrNoHandler is returned when a chunk does not define an on_event
	// function.
	ErrNoHandler = errors.New("script: chunk does not define on_event")

	// ErrBadResult is returned when on_event returns something other than
	// "continue" or "stop".
	ErrBadResult = errors.New(`script: on_event must return "continue" or "stop"`)
)

type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Engine owns one sandboxed Lua state and the goroutine that runs it.
type Engine struct {
	queue     chan call
	stop      chan struct{}
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	logger    *slog.Logger

	// Advisory only: gopher-lua cannot enforce a hard memory cap.
	memoryLimitMB int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMemoryLimitMB records an advisory memory budget for the state.
func WithMemoryLimitMB(mb int) EngineOption {
	return func(e *Engine) { e.memoryLimitMB = mb }
}

// WithLogger sets the engine's logger. Nil disables logging.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithQueueSize sets the request queue depth.
func WithQueueSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.queue = make(chan call, n)
		}
	}
}

// NewEngine creates a sandboxed engine and starts its state goroutine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		queue: make(chan call, DefaultQueueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.run()
	return e
}

// run owns the LState for the engine's whole lifetime.
func (e *Engine) run() {
	defer close(e.done)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSandbox(L)

	for {
		select {
		case c := <-e.queue:
			c.result <- e.safeCall(L, c.fn)
		case <-e.stop:
			for {
				select {
				case c := <-e.queue:
					c.result <- ErrEngineClosed
				default:
					return
				}
			}
		}
	}
}

func (e *Engine) safeCall(L *lua.LState, fn func(*lua.LState) error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.New("script: lua runtime panic")
			if e.logger != nil {
				e.logger.Error("lua panic", "value", v)
			}
		}
	}()
	return fn(L)
}

// do runs fn on the state goroutine, honoring ctx while waiting.
func (e *Engine) do(ctx context.Context, fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	c := call{fn: fn, result: make(chan error, 1)}
	select {
	case e.queue <- c:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stop:
		return ErrEngineClosed
	}
	select {
	case err := <-c.result:
		return err
	case <-ctx.Done():
		// The operation still runs to completion on the state goroutine;
		// its result is discarded.
		return ctx.Err()
	}
}

// Close stops the engine and releases the Lua state. Close is idempotent;
// in-flight operations finish first.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.stop)
		<-e.done
	})
}

// openSandbox opens the safe subset of the standard library and strips the
// code-loading entry points.
func openSandbox(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// io, os, debug, and package stay closed.

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage"} {
		L.SetGlobal(name, lua.LNil)
	}
}
