package realtimews

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPtr(t *testing.T) {
	if p := Ptr(0.8); *p != 0.8 {
		t.Errorf("expected 0.8, got %v", *p)
	}
	if p := Ptr(""); p == nil || *p != "" {
		t.Error("expected pointer to empty string")
	}

	a, b := Ptr(1), Ptr(1)
	if a == b {
		t.Error("each call should return a distinct pointer")
	}
}

func TestPtr_SessionUsage(t *testing.T) {
	s := Session{Temperature: Ptr(0.6)}
	if s.Temperature == nil || *s.Temperature != 0.6 {
		t.Errorf("unexpected temperature: %v", s.Temperature)
	}
}

func TestNewEventID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEventID()
		if !strings.HasPrefix(id, "evt_") {
			t.Fatalf("expected evt_ prefix, got %q", id)
		}
		if _, err := uuid.Parse(strings.TrimPrefix(id, "evt_")); err != nil {
			t.Fatalf("expected a UUID suffix, got %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
