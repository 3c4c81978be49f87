package washup

import (
	"fmt"
	"strings"
)

// Transition is a valid status change for a step
type Transition struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

// validTransitions is the authoritative step lifecycle
var validTransitions = []Transition{
	{From: StatusPending, To: StatusInProgress},
	{From: StatusInProgress, To: StatusCompleted},
	{From: StatusInProgress, To: StatusFailed},
	// only inside a transactional run
	{From: StatusCompleted, To: StatusRolledBack},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next statuses
func ValidTransitionsFrom(status Status) []Status {
	var nexts []Status
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether a step may move from one status to another
func CanTransition(from, to Status) error {
	if transitionSet[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid step transition %s → %s; valid from %s: %s", from, to, from, describeValidFrom(from))
}

// Terminal reports whether no further transition is possible
func Terminal(status Status) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// Transitions returns the full lifecycle for documentation
func Transitions() []Transition {
	return append([]Transition(nil), validTransitions...)
}

func describeValidFrom(status Status) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal status)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// advance moves step to status, refusing anything outside the lifecycle
func (s *Step) advance(to Status) error {
	if err := CanTransition(s.Status, to); err != nil {
		return fmt.Errorf("step %s: %w", s.ID, err)
	}
	s.Status = to
	return nil
}

// Statuses lists every step status in lifecycle order
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusRolledBack}
}
