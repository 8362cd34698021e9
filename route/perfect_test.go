package route_test

import (
	"fmt"
	"testing"

	"github.com/dshills/dispatchkit/route"
)

func TestPerfect(t *testing.T) {
	entries := make(map[string]int)
	for i := 0; i < 200; i++ {
		entries[fmt.Sprintf("route/%d/segment", i)] = i
	}

	p, err := route.BuildPerfect(entries)
	if err != nil {
		t.Fatalf("BuildPerfect: %v", err)
	}
	if p.Len() != len(entries) {
		t.Fatalf("Len = %d, want %d", p.Len(), len(entries))
	}

	for key, want := range entries {
		got, ok := p.Route(key)
		if !ok || got != want {
			t.Errorf("Route(%s) = %d, %v; want %d, true", key, got, ok, want)
		}
	}

	for _, miss := range []string{"", "route/200/segment", "route/0", "nope"} {
		if _, ok := p.Route(miss); ok {
			t.Errorf("Route(%q) matched, want miss", miss)
		}
	}
}

func TestPerfectEmpty(t *testing.T) {
	p, err := route.BuildPerfect(map[string]int{})
	if err != nil {
		t.Fatalf("BuildPerfect(empty): %v", err)
	}
	if _, ok := p.Route("anything"); ok {
		t.Error("empty router matched")
	}
}

func TestPerfectSingle(t *testing.T) {
	p, err := route.BuildPerfect(map[string]string{"only": "target"})
	if err != nil {
		t.Fatalf("BuildPerfect: %v", err)
	}
	if got, ok := p.Route("only"); !ok || got != "target" {
		t.Errorf("Route(only) = %q, %v; want target, true", got, ok)
	}
	if _, ok := p.Route("other"); ok {
		t.Error("Route(other) matched, want miss")
	}
}
