package match

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

var strictTransitions = map[Status][]Status{
	StatusScheduled: {StatusLive, StatusCancelled},
	StatusLive:      {StatusCompleted, StatusCancelled},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return status, nil
}

func (s Status) Known() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Terminal statuses accept no further moves under the strict policy.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TransitionPolicy decides which status moves are accepted.
type TransitionPolicy string

const (
	PolicyStrict TransitionPolicy = "strict"
	PolicyFree   TransitionPolicy = "free"
)

func ParseTransitionPolicy(raw string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyFree:
		return PolicyFree, nil
	default:
		return "", fmt.Errorf("unknown transition policy %q", raw)
	}
}

// CanTransition reports whether from -> to is allowed. Re-applying the current
// status is always allowed. A stored label outside the known set (legacy data)
// may move to any known status.
func (p TransitionPolicy) CanTransition(from, to Status) bool {
	if !to.Known() {
		return false
	}
	if from == to || !from.Known() || p == PolicyFree {
		return true
	}
	if from.Terminal() {
		return false
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChangeStatus moves the match to next under the given policy.
func (m *Match) ChangeStatus(policy TransitionPolicy, next Status) error {
	if !next.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if !policy.CanTransition(m.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, next)
	}
	m.Status = next
	return nil
}
