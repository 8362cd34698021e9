package dispatch

import (
	"context"
	"sync"

	"github.com/dshills/dispatchkit/hook"
)

// Delivery is an execution policy for a resolved target set. Deliver reports
// the terminal chain result and the first error observed; implementations
// must invoke no further targets after deciding to halt (Sequential) but may
// have already started siblings that run to completion (FanOut).
type Delivery[E any] interface {
	Deliver(ctx context.Context, evt E, targets []hook.Hook[E]) (hook.Result, error)
}

// Sequential delivers targets in declared order using the chain algorithm:
// Continue advances, the first Stop or error halts.
type Sequential[E any] struct{}

// Deliver implements Delivery.
func (Sequential[E]) Deliver(ctx context.Context, evt E, targets []hook.Hook[E]) (hook.Result, error) {
	return hook.Run(ctx, evt, targets)
}

// FanOut delivers to every target concurrently and completes when all have
// completed. The first error in declared order is reported; siblings already
// in flight are never cancelled, so a failing target cannot suppress
// another's side effects. The result is Stop when any target stopped or
// failed, Continue when every target continued.
type FanOut[E any] struct{}

// Deliver implements Delivery.
func (FanOut[E]) Deliver(ctx context.Context, evt E, targets []hook.Hook[E]) (hook.Result, error) {
	if err := ctx.Err(); err != nil {
		return hook.Stop, err
	}

	results := make([]hook.Result, len(targets))
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, h := range targets {
		wg.Add(1)
		go func(i int, h hook.Hook[E]) {
			defer wg.Done()
			results[i], errs[i] = h.OnEvent(ctx, evt)
		}(i, h)
	}
	wg.Wait()

	res := hook.Continue
	for i := range targets {
		if errs[i] != nil {
			return hook.Stop, errs[i]
		}
		if results[i] == hook.Stop {
			res = hook.Stop
		}
	}
	return res, nil
}
