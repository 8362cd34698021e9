package hook_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/dispatchkit/hook"
	"github.com/dshills/dispatchkit/listen"
)

func TestPipeline(t *testing.T) {
	var handled []string
	p := hook.NewPipeline[string, listen.Command](
		listen.Tokenize("!"),
		hook.HandlerFunc[listen.Command](func(_ context.Context, cmd listen.Command) error {
			handled = append(handled, cmd.Name)
			return nil
		}),
	)

	t.Run("listener accepts", func(t *testing.T) {
		res, err := p.OnEvent(context.Background(), "!ping")
		if err != nil {
			t.Fatalf("OnEvent: %v", err)
		}
		if res != hook.Stop {
			t.Errorf("res = %v, want Stop", res)
		}
		if len(handled) != 1 || handled[0] != "ping" {
			t.Errorf("handled = %v, want [ping]", handled)
		}
	})

	t.Run("listener rejects", func(t *testing.T) {
		handled = handled[:0]
		res, err := p.OnEvent(context.Background(), "plain message")
		if err != nil {
			t.Fatalf("OnEvent: %v", err)
		}
		if res != hook.Continue {
			t.Errorf("res = %v, want Continue", res)
		}
		if len(handled) != 0 {
			t.Error("handler ran for rejected event")
		}
	})
}

func TestPipelineHandlerError(t *testing.T) {
	errHandler := errors.New("handler failed")
	p := hook.NewPipeline[string, string](
		listen.Filter(func(string) bool { return true }),
		hook.HandlerFunc[string](func(context.Context, string) error {
			return errHandler
		}),
	)

	res, err := p.OnEvent(context.Background(), "evt")
	if !errors.Is(err, errHandler) {
		t.Fatalf("err = %v, want handler error", err)
	}
	if res != hook.Stop {
		t.Errorf("res = %v, want Stop", res)
	}
}

func TestPipelineComposedListeners(t *testing.T) {
	var got string
	p := hook.NewPipeline[string, string](
		listen.Then(
			listen.Filter(func(s string) bool { return strings.HasPrefix(s, "evt:") }),
			listen.Map(strings.ToUpper),
		),
		hook.HandlerFunc[string](func(_ context.Context, v string) error {
			got = v
			return nil
		}),
	)

	if _, err := p.OnEvent(context.Background(), "evt:hello"); err != nil {
		t.Fatalf("OnEvent: %v", err)
	}
	if got != "EVT:HELLO" {
		t.Errorf("handler saw %q, want EVT:HELLO", got)
	}
}

func TestPipelineInChain(t *testing.T) {
	rec := &recorder{}
	chain := hook.NewChain[string](
		hook.NewPipeline[string, listen.Command](
			listen.Tokenize("!"),
			hook.HandlerFunc[listen.Command](func(context.Context, listen.Command) error { return nil }),
		),
		rec.hook("general", hook.Continue, nil),
	)

	// A command event is claimed by the pipeline; the general hook is skipped.
	if _, err := chain.OnEvent(context.Background(), "!cmd"); err != nil {
		t.Fatal(err)
	}
	if len(rec.names()) != 0 {
		t.Error("general hook ran after pipeline claimed the event")
	}

	// A non-command event flows past the pipeline to the general hook.
	if _, err := chain.OnEvent(context.Background(), "chatter"); err != nil {
		t.Fatal(err)
	}
	if len(rec.names()) != 1 {
		t.Error("general hook did not observe unclaimed event")
	}
}
