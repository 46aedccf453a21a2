package handlers

import (
	"testing"
	"time"
)

func TestStates_IssueAndConsume(t *testing.T) {
	states := NewStates()

	state := states.Issue()
	if state == "" {
		t.Fatal("Issue() returned an empty state")
	}
	if states.Pending() != 1 {
		t.Errorf("Pending() = %d; want 1", states.Pending())
	}

	if !states.Consume(state) {
		t.Error("Expected issued state to be accepted")
	}
	if states.Consume(state) {
		t.Error("Expected state to be rejected on replay")
	}
	if states.Consume("never-issued") {
		t.Error("Expected unknown state to be rejected")
	}
}

func TestStates_Expiry(t *testing.T) {
	current := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	states := &States{
		issued: make(map[string]time.Time),
		ttl:    5 * time.Minute,
		now:    func() time.Time { return current },
	}

	stale := states.Issue()
	current = current.Add(6 * time.Minute)
	if states.Consume(stale) {
		t.Error("Expected expired state to be rejected")
	}

	old := states.Issue()
	current = current.Add(6 * time.Minute)
	fresh := states.Issue()
	if states.Pending() != 1 {
		t.Errorf("Pending() = %d; want 1 after pruning", states.Pending())
	}
	if states.Consume(old) {
		t.Error("Expected pruned state to be rejected")
	}
	if !states.Consume(fresh) {
		t.Error("Expected fresh state to be accepted")
	}
}
