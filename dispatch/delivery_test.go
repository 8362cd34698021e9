package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dshills/dispatchkit/dispatch"
	"github.com/dshills/dispatchkit/hook"
)

// recorder tracks which named hooks observed an event.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) saw(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (r *recorder) hook(name string, res hook.Result, err error) hook.Func[string] {
	return func(_ context.Context, _ string) (hook.Result, error) {
		r.mu.Lock()
		r.calls = append(r.calls, name)
		r.mu.Unlock()
		return res, err
	}
}

func TestSequentialDeliver(t *testing.T) {
	errBoom := errors.New("boom")
	rec := &recorder{}
	targets := []hook.Hook[string]{
		rec.hook("a", hook.Continue, nil),
		rec.hook("b", hook.Continue, errBoom),
		rec.hook("c", hook.Continue, nil),
	}

	res, err := dispatch.Sequential[string]{}.Deliver(context.Background(), "evt", targets)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want %v", err, errBoom)
	}
	if res != hook.Stop {
		t.Errorf("res = %v, want Stop", res)
	}
	got := rec.names()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("calls = %v, want [a b]", got)
	}
}

// A failing fan-out sibling must not suppress the others' side effects, and
// exactly one error is aggregated.
func TestFanOutSiblingFailure(t *testing.T) {
	errBoom := errors.New("boom")
	rec := &recorder{}
	targets := []hook.Hook[string]{
		rec.hook("a", hook.Continue, nil),
		rec.hook("b", hook.Continue, errBoom),
		rec.hook("c", hook.Continue, nil),
	}

	res, err := dispatch.FanOut[string]{}.Deliver(context.Background(), "evt", targets)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want %v", err, errBoom)
	}
	if res != hook.Stop {
		t.Errorf("res = %v, want Stop", res)
	}
	for _, name := range []string{"a", "b", "c"} {
		if !rec.saw(name) {
			t.Errorf("target %s never ran", name)
		}
	}
}

func TestFanOutAllContinue(t *testing.T) {
	rec := &recorder{}
	targets := []hook.Hook[string]{
		rec.hook("a", hook.Continue, nil),
		rec.hook("b", hook.Continue, nil),
	}

	res, err := dispatch.FanOut[string]{}.Deliver(context.Background(), "evt", targets)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if res != hook.Continue {
		t.Errorf("res = %v, want Continue", res)
	}
}

func TestFanOutStopPropagates(t *testing.T) {
	rec := &recorder{}
	targets := []hook.Hook[string]{
		rec.hook("a", hook.Continue, nil),
		rec.hook("b", hook.Stop, nil),
	}

	res, err := dispatch.FanOut[string]{}.Deliver(context.Background(), "evt", targets)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if res != hook.Stop {
		t.Errorf("res = %v, want Stop", res)
	}
}

func TestFanOutCanceledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dispatch.FanOut[string]{}.Deliver(ctx, "evt", []hook.Hook[string]{
		rec.hook("a", hook.Continue, nil),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if rec.saw("a") {
		t.Error("target ran under a canceled context")
	}
}
