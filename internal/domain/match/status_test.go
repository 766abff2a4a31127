package match

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("  LIVE ")
	if err != nil || got != StatusLive {
		t.Fatalf("expected live, got %q err=%v", got, err)
	}
	if _, err := ParseStatus("postponed"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestStrictPolicyTransitions(t *testing.T) {
	all := []Status{StatusScheduled, StatusLive, StatusCompleted, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusScheduled, StatusLive}:      true,
		{StatusLive, StatusCompleted}:      true,
		{StatusScheduled, StatusCancelled}: true,
		{StatusLive, StatusCancelled}:      true,
	}

	for _, from := range all {
		for _, to := range all {
			want := from == to || allowed[[2]Status{from, to}]
			if got := PolicyStrict.CanTransition(from, to); got != want {
				t.Fatalf("strict %s -> %s: expected %v, got %v", from, to, want, got)
			}
			if !PolicyFree.CanTransition(from, to) {
				t.Fatalf("free %s -> %s should be allowed", from, to)
			}
		}
	}
}

func TestChangeStatus(t *testing.T) {
	m := Match{Status: StatusCompleted}
	if err := m.ChangeStatus(PolicyStrict, StatusLive); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if m.Status != StatusCompleted {
		t.Fatalf("rejected transition changed status to %q", m.Status)
	}

	legacy := Match{Status: Status("Fight Night")}
	if err := legacy.ChangeStatus(PolicyStrict, StatusLive); err != nil {
		t.Fatalf("legacy label should move to known status: %v", err)
	}
	if err := legacy.ChangeStatus(PolicyStrict, Status("paused")); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestTerminalStatusesAreFinal(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusCancelled} {
		if !from.Terminal() {
			t.Fatalf("expected %s to be terminal", from)
		}
		for _, to := range []Status{StatusScheduled, StatusLive, StatusCompleted, StatusCancelled} {
			if to == from {
				continue
			}
			if PolicyStrict.CanTransition(from, to) {
				t.Fatalf("strict %s -> %s should be rejected", from, to)
			}
		}
	}
	if StatusScheduled.Terminal() || StatusLive.Terminal() {
		t.Fatalf("scheduled and live must not be terminal")
	}
}
