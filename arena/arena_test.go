package arena_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/dispatchkit/arena"
)

func TestAlloc(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		sizes    []int
		wantErr  error
	}{
		{name: "single allocation", capacity: 16, sizes: []int{8}},
		{name: "fills exactly", capacity: 16, sizes: []int{8, 8}},
		{name: "exhausted", capacity: 16, sizes: []int{8, 9}, wantErr: arena.ErrArenaFull},
		{name: "zero size", capacity: 16, sizes: []int{0}},
		{name: "negative size", capacity: 16, sizes: []int{-1}, wantErr: arena.ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arena.New(tt.capacity)
			var lastErr error
			for _, n := range tt.sizes {
				_, lastErr = a.Alloc(n)
			}
			if tt.wantErr != nil {
				if !errors.Is(lastErr, tt.wantErr) {
					t.Fatalf("Alloc error = %v, want %v", lastErr, tt.wantErr)
				}
				return
			}
			if lastErr != nil {
				t.Fatalf("Alloc returned unexpected error: %v", lastErr)
			}
		})
	}
}

func TestAllocDoesNotOverlap(t *testing.T) {
	a := arena.New(32)

	first, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	second, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	copy(first, "aaaa")
	copy(second, "bbbb")

	if !bytes.Equal(first, []byte("aaaa")) {
		t.Errorf("first allocation corrupted: %q", first)
	}
	if !bytes.Equal(second, []byte("bbbb")) {
		t.Errorf("second allocation corrupted: %q", second)
	}
}

func TestAllocCapsAppend(t *testing.T) {
	a := arena.New(32)

	first, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	second, err := a.Copy([]byte("keep"))
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}

	// An append past the allocation's capacity must reallocate instead of
	// writing into the neighboring allocation.
	grown := append(first, 'x')
	_ = grown

	if !bytes.Equal(second, []byte("keep")) {
		t.Errorf("append bled into neighbor: %q", second)
	}
}

func TestCopy(t *testing.T) {
	a := arena.New(64)

	src := []byte("payload")
	got, err := a.Copy(src)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("Copy = %q, want %q", got, src)
	}

	// Mutating the source must not affect the arena view.
	src[0] = 'X'
	if got[0] == 'X' {
		t.Error("arena view aliases the source buffer")
	}
}

func TestCopyString(t *testing.T) {
	a := arena.New(64)

	got, err := a.CopyString("hello")
	if err != nil {
		t.Fatalf("CopyString: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("CopyString = %q, want %q", got, "hello")
	}
}

func TestReset(t *testing.T) {
	a := arena.New(16)

	if _, err := a.Alloc(16); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if _, err := a.Alloc(1); !errors.Is(err, arena.ErrArenaFull) {
		t.Fatalf("Alloc after fill = %v, want ErrArenaFull", err)
	}

	a.Reset()

	if a.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", a.Len())
	}
	if _, err := a.Alloc(16); err != nil {
		t.Errorf("Alloc after Reset: %v", err)
	}
}

func TestAccounting(t *testing.T) {
	a := arena.New(100)

	if _, err := a.Alloc(30); err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if got := a.Len(); got != 30 {
		t.Errorf("Len = %d, want 30", got)
	}
	if got := a.Cap(); got != 100 {
		t.Errorf("Cap = %d, want 100", got)
	}
	if got := a.Remaining(); got != 70 {
		t.Errorf("Remaining = %d, want 70", got)
	}
}

func TestNewDefaultCapacity(t *testing.T) {
	a := arena.New(0)
	if a.Cap() != arena.DefaultCapacity {
		t.Errorf("Cap = %d, want %d", a.Cap(), arena.DefaultCapacity)
	}
}
