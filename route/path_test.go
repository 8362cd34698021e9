package route_test

import (
	"errors"
	"testing"

	"github.com/dshills/dispatchkit/route"
)

func buildPath(t *testing.T, patterns map[string]string) *route.Path[string] {
	t.Helper()
	p := route.NewPath[string]()
	for pattern, target := range patterns {
		if err := p.Add(pattern, target); err != nil {
			t.Fatalf("Add(%s): %v", pattern, err)
		}
	}
	return p
}

func TestPathLookup(t *testing.T) {
	p := buildPath(t, map[string]string{
		"users/:id":           "user",
		"users/me":            "self",
		"users/:id/posts/:pid": "post",
		"files/*path":          "file",
		"status":               "status",
	})

	tests := []struct {
		name       string
		key        string
		want       string
		wantParams route.Params
		wantOK     bool
	}{
		{name: "literal", key: "status", want: "status", wantOK: true},
		{name: "literal beats param", key: "users/me", want: "self", wantOK: true},
		{
			name: "param capture", key: "users/42", want: "user",
			wantParams: route.Params{"id": "42"}, wantOK: true,
		},
		{
			name: "two params", key: "users/42/posts/7", want: "post",
			wantParams: route.Params{"id": "42", "pid": "7"}, wantOK: true,
		},
		{
			name: "catch-all", key: "files/a/b/c.txt", want: "file",
			wantParams: route.Params{"path": "a/b/c.txt"}, wantOK: true,
		},
		{name: "param refuses empty segment", key: "users/", wantOK: false},
		{name: "unmatched", key: "groups/1", wantOK: false},
		{name: "partial", key: "users/42/posts", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, params, ok := p.Lookup(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("target = %q, want %q", got, tt.want)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if params[k] != v {
					t.Errorf("params[%s] = %q, want %q", k, params[k], v)
				}
			}
		})
	}
}

func TestPathRouteDiscardsParams(t *testing.T) {
	p := buildPath(t, map[string]string{"orders/:id": "order"})

	got, ok := p.Route("orders/99")
	if !ok || got != "order" {
		t.Fatalf("Route(orders/99) = %q, %v; want order, true", got, ok)
	}
}

func TestPathInvalidPatterns(t *testing.T) {
	p := route.NewPath[string]()

	tests := []struct {
		pattern string
		wantErr error
	}{
		{pattern: "", wantErr: route.ErrEmptyKey},
		{pattern: "a/*rest/b", wantErr: route.ErrInvalidPattern},
		{pattern: "a/*", wantErr: route.ErrInvalidPattern},
		{pattern: "a/:", wantErr: route.ErrInvalidPattern},
	}
	for _, tt := range tests {
		if err := p.Add(tt.pattern, "x"); !errors.Is(err, tt.wantErr) {
			t.Errorf("Add(%q) err = %v, want %v", tt.pattern, err, tt.wantErr)
		}
	}

	if err := p.Add("a/:id", "x"); err != nil {
		t.Fatalf("Add(a/:id): %v", err)
	}
	// Same shape, different parameter name: still a duplicate.
	if err := p.Add("a/:name", "y"); !errors.Is(err, route.ErrDuplicateKey) {
		t.Errorf("Add(a/:name) err = %v, want ErrDuplicateKey", err)
	}
}

func TestPathRemove(t *testing.T) {
	p := buildPath(t, map[string]string{
		"a/:id":   "param",
		"a/fixed": "fixed",
	})

	if !p.Remove("a/:id") {
		t.Fatal("Remove(a/:id) = false")
	}
	if _, ok := p.Route("a/42"); ok {
		t.Error("removed param route still matches")
	}
	if got, _ := p.Route("a/fixed"); got != "fixed" {
		t.Errorf("Route(a/fixed) = %q, want fixed", got)
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
}
