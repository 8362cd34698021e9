package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/dispatchkit/event"
	"github.com/dshills/dispatchkit/hook"
)

// Hook is a Lua chunk participating in a hook chain. The chunk must define
//
//	function on_event(evt)
//	    return "continue" -- or "stop"
//	end
//
// where evt is a table carrying the event's metadata fields (id, source,
// correlation_id, timestamp as unix seconds) and its payload as a string. A
// Lua error or an unexpected return value becomes a hook error.
type Hook struct {
	engine *Engine
	name   string
	fn     *lua.LFunction
}

// NewHook compiles source on the engine's state and binds its on_event
// function. The name labels errors. Compilation runs the chunk once, so
// top-level statements execute at load time.
func (e *Engine) NewHook(name, source string) (*Hook, error) {
	h := &Hook{engine: e, name: name}
	err := e.do(context.Background(), func(L *lua.LState) error {
		if err := L.DoString(source); err != nil {
			return fmt.Errorf("script %s: %w", name, err)
		}
		fn, ok := L.GetGlobal("on_event").(*lua.LFunction)
		if !ok {
			return fmt.Errorf("script %s: %w", name, ErrNoHandler)
		}
		// Clear the global so the next compiled chunk cannot shadow this
		// hook's handler.
		L.SetGlobal("on_event", lua.LNil)
		h.fn = fn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// OnEvent implements hook.Hook for owned byte-payload events.
func (h *Hook) OnEvent(ctx context.Context, evt event.Event[[]byte]) (hook.Result, error) {
	res := hook.Continue
	err := h.engine.do(ctx, func(L *lua.LState) error {
		tbl := L.NewTable()
		L.SetField(tbl, "id", lua.LString(evt.Meta.ID))
		L.SetField(tbl, "source", lua.LString(evt.Meta.Source))
		L.SetField(tbl, "correlation_id", lua.LString(evt.Meta.CorrelationID))
		L.SetField(tbl, "timestamp", lua.LNumber(evt.Meta.Timestamp.Unix()))
		L.SetField(tbl, "payload", lua.LString(evt.Payload))

		L.Push(h.fn)
		L.Push(tbl)
		if err := L.PCall(1, 1, nil); err != nil {
			return fmt.Errorf("script %s: %w", h.name, err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		switch lua.LVAsString(ret) {
		case "continue":
			res = hook.Continue
		case "stop":
			res = hook.Stop
		default:
			return fmt.Errorf("script %s: %w (got %s)", h.name, ErrBadResult, ret.Type())
		}
		return nil
	})
	if err != nil {
		return hook.Stop, err
	}
	return res, nil
}
