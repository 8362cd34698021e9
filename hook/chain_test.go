package hook_test

import (
	"context"
	"errors"
	"sync"
	"testing"

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

func (r *recorder) hook(name string, res hook.Result, err error) hook.Func[string] {
	return func(_ context.Context, _ string) (hook.Result, error) {
		r.mu.Lock()
		r.calls = append(r.calls, name)
		r.mu.Unlock()
		return res, err
	}
}

func TestRun(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		results   []hook.Result
		errAt     int // index of erroring hook, -1 for none
		wantCalls []string
		wantRes   hook.Result
		wantErr   error
	}{
		{
			name:      "all continue",
			results:   []hook.Result{hook.Continue, hook.Continue, hook.Continue},
			errAt:     -1,
			wantCalls: []string{"h0", "h1", "h2"},
			wantRes:   hook.Continue,
		},
		{
			name:      "stop halts chain",
			results:   []hook.Result{hook.Continue, hook.Stop, hook.Continue},
			errAt:     -1,
			wantCalls: []string{"h0", "h1"},
			wantRes:   hook.Stop,
		},
		{
			name:      "first stop wins",
			results:   []hook.Result{hook.Stop, hook.Stop, hook.Stop},
			errAt:     -1,
			wantCalls: []string{"h0"},
			wantRes:   hook.Stop,
		},
		{
			name:      "error halts and propagates",
			results:   []hook.Result{hook.Continue, hook.Continue, hook.Continue},
			errAt:     1,
			wantCalls: []string{"h0", "h1"},
			wantRes:   hook.Stop,
			wantErr:   errBoom,
		},
		{
			name:      "empty chain",
			results:   nil,
			errAt:     -1,
			wantCalls: nil,
			wantRes:   hook.Continue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			hooks := make([]hook.Hook[string], len(tt.results))
			for i, res := range tt.results {
				var err error
				if i == tt.errAt {
					err = errBoom
				}
				hooks[i] = rec.hook(names[i], res, err)
			}

			res, err := hook.Run(context.Background(), "evt", hooks)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if res != tt.wantRes {
				t.Errorf("res = %v, want %v", res, tt.wantRes)
			}
			got := rec.names()
			if len(got) != len(tt.wantCalls) {
				t.Fatalf("calls = %v, want %v", got, tt.wantCalls)
			}
			for i := range got {
				if got[i] != tt.wantCalls[i] {
					t.Errorf("calls = %v, want %v", got, tt.wantCalls)
					break
				}
			}
		})
	}
}

var names = []string{"h0", "h1", "h2", "h3"}

func TestRunCanceledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hook.Run(ctx, "evt", []hook.Hook[string]{rec.hook("h0", hook.Continue, nil)})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(rec.names()) != 0 {
		t.Error("hook ran under canceled context")
	}
}

func TestChainMutation(t *testing.T) {
	rec := &recorder{}
	c := hook.NewChain[string]()

	c.Append(rec.hook("h0", hook.Continue, nil))
	c.Append(rec.hook("h2", hook.Continue, nil))
	if err := c.Insert(1, rec.hook("h1", hook.Continue, nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	if _, err := c.OnEvent(context.Background(), "evt"); err != nil {
		t.Fatalf("OnEvent: %v", err)
	}
	want := []string{"h0", "h1", "h2"}
	got := rec.names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if err := c.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len after remove = %d, want 2", c.Len())
	}

	if err := c.Insert(99, rec.hook("hx", hook.Continue, nil)); !errors.Is(err, hook.ErrInvalidIndex) {
		t.Errorf("Insert(99) err = %v, want ErrInvalidIndex", err)
	}
	if err := c.RemoveAt(-1); !errors.Is(err, hook.ErrInvalidIndex) {
		t.Errorf("RemoveAt(-1) err = %v, want ErrInvalidIndex", err)
	}
}

func TestChainConcurrentMutation(t *testing.T) {
	c := hook.NewChain[string](hook.Func[string](func(context.Context, string) (hook.Result, error) {
		return hook.Continue, nil
	}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				c.Append(hook.Func[string](func(context.Context, string) (hook.Result, error) {
					return hook.Continue, nil
				}))
				_ = c.RemoveAt(c.Len() - 1)
			}
		}
	}()

	for range 200 {
		if _, err := c.OnEvent(context.Background(), "evt"); err != nil {
			t.Errorf("OnEvent: %v", err)
		}
	}
	close(stop)
	wg.Wait()
}
