package hook

import "context"

// Result signals how chain execution proceeds after a hook returns.
type Result uint8

const (
	// Continue advances the chain to the next hook.
	Continue Result = iota

	// Stop halts the chain; remaining hooks are not invoked.
	Stop
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Hook is an asynchronous processing unit. OnEvent may block or perform I/O;
// it must honor ctx cancellation for long-running work. On error the chain
// halts and the error propagates; the accompanying Result is then Stop.
type Hook[E any] interface {
	OnEvent(ctx context.Context, evt E) (Result, error)
}

// Func adapts a plain function to the Hook interface.
type Func[E any] func(ctx context.Context, evt E) (Result, error)

// OnEvent implements Hook.
func (f Func[E]) OnEvent(ctx context.Context, evt E) (Result, error) {
	return f(ctx, evt)
}

// Handler is the terminal unit of a Pipeline: it consumes a value the
// pipeline's listener produced and reports success or failure.
type Handler[V any] interface {
	Handle(ctx context.Context, v V) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc[V any] func(ctx context.Context, v V) error

// Handle implements Handler.
func (f HandlerFunc[V]) Handle(ctx context.Context, v V) error {
	return f(ctx, v)
}
