package event_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/dispatchkit/event"
)

func TestNew(t *testing.T) {
	evt := event.New("gateway", []byte(`{"op":1}`))

	if evt.Meta.ID == "" {
		t.Error("ID not generated")
	}
	if evt.Meta.Source != "gateway" {
		t.Errorf("Source = %q, want %q", evt.Meta.Source, "gateway")
	}
	if evt.Meta.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if evt.Meta.Version != 1 {
		t.Errorf("Version = %d, want 1", evt.Meta.Version)
	}
	if string(evt.Payload) != `{"op":1}` {
		t.Errorf("Payload = %q", evt.Payload)
	}
}

func TestNewUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		evt := event.New("test", struct{}{})
		if seen[evt.Meta.ID] {
			t.Fatalf("duplicate ID %q", evt.Meta.ID)
		}
		seen[evt.Meta.ID] = true
	}
}

func TestNewWithMetadata(t *testing.T) {
	t.Run("fills missing fields", func(t *testing.T) {
		evt := event.NewWithMetadata(event.Metadata{Source: "sensor"}, 42)
		if evt.Meta.ID == "" {
			t.Error("ID not filled")
		}
		if evt.Meta.Timestamp.IsZero() {
			t.Error("Timestamp not filled")
		}
		if evt.Meta.Version != 1 {
			t.Errorf("Version = %d, want 1", evt.Meta.Version)
		}
	})

	t.Run("keeps provided fields", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		meta := event.Metadata{ID: "fixed", Timestamp: ts, Version: 3}
		evt := event.NewWithMetadata(meta, 42)
		if evt.Meta.ID != "fixed" || !evt.Meta.Timestamp.Equal(ts) || evt.Meta.Version != 3 {
			t.Errorf("metadata overwritten: %+v", evt.Meta)
		}
	})
}

func TestWithCorrelation(t *testing.T) {
	evt := event.New("test", "payload")
	linked := evt.WithCorrelation("corr-1")

	if linked.Meta.CorrelationID != "corr-1" {
		t.Errorf("CorrelationID = %q, want %q", linked.Meta.CorrelationID, "corr-1")
	}
	if evt.Meta.CorrelationID != "" {
		t.Error("original event mutated")
	}
}

func TestCausedBy(t *testing.T) {
	parent := event.New("test", "a").WithCorrelation("corr-9")
	child := event.New("test", "b").CausedBy(parent.Meta)

	if child.Meta.CausationID != parent.Meta.ID {
		t.Errorf("CausationID = %q, want %q", child.Meta.CausationID, parent.Meta.ID)
	}
	if child.Meta.CorrelationID != "corr-9" {
		t.Errorf("CorrelationID not inherited: %q", child.Meta.CorrelationID)
	}

	preset := event.New("test", "c").WithCorrelation("own").CausedBy(parent.Meta)
	if preset.Meta.CorrelationID != "own" {
		t.Errorf("existing CorrelationID overwritten: %q", preset.Meta.CorrelationID)
	}
}

type borrowedToken struct {
	text string
}

func (b borrowedToken) Promote() borrowedToken {
	return borrowedToken{text: strings.Clone(b.text)}
}

func TestPromoteAll(t *testing.T) {
	borrowed := []borrowedToken{{text: "one"}, {text: "two"}}
	owned := event.PromoteAll(borrowed)

	if len(owned) != 2 {
		t.Fatalf("len = %d, want 2", len(owned))
	}
	for i := range borrowed {
		if owned[i].text != borrowed[i].text {
			t.Errorf("owned[%d] = %q, want %q", i, owned[i].text, borrowed[i].text)
		}
	}

	if event.PromoteAll[borrowedToken](nil) != nil {
		t.Error("PromoteAll(nil) != nil")
	}
}
