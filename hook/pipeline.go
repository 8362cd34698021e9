package hook

import (
	"context"

	"github.com/dshills/dispatchkit/listen"
)

// Pipeline fuses a synchronous listener stage with a terminal handler and
// exposes the pair as one Hook. The listener decides whether the event is
// interesting; the handler does the asynchronous work on what the listener
// extracted.
type Pipeline[E, V any] struct {
	listener listen.Listener[E, V]
	handler  Handler[V]
}

// NewPipeline builds a pipeline. Both stages are required.
func NewPipeline[E, V any](l listen.Listener[E, V], h Handler[V]) *Pipeline[E, V] {
	if l == nil || h == nil {
		panic("hook: pipeline requires a listener and a handler")
	}
	return &Pipeline[E, V]{listener: l, handler: h}
}

// OnEvent implements Hook. Listener rejection returns Continue without
// invoking the handler; acceptance runs the handler and returns Stop, with
// the handler's error propagated.
func (p *Pipeline[E, V]) OnEvent(ctx context.Context, evt E) (Result, error) {
	v, ok := p.listener.Listen(evt)
	if !ok {
		return Continue, nil
	}
	if err := p.handler.Handle(ctx, v); err != nil {
		return Stop, err
	}
	return Stop, nil
}
