// Package lifecycle defines the order status enumeration and the
// derivations the UI needs from it (labels, badge styling, progress
// timeline). Statuses are integer-tagged so the lookup tables below are
// exhaustive by construction.
package lifecycle

import "fmt"

type Status int

// Canonical progress order. Pending is the initial state, Collected the
// terminal one. Transitions are deliberately unordered: the admin view
// offers all four statuses at all times and the store accepts any target.
const (
	Pending Status = iota
	InProgress
	Ready
	Collected
)

// All lists every status in canonical progress order.
var All = [...]Status{Pending, InProgress, Ready, Collected}

var labels = [...]string{
	Pending:    "Pending",
	InProgress: "In Progress",
	Ready:      "Ready",
	Collected:  "Collected",
}

// Badge CSS classes and icon names, indexed by status.
var badgeClasses = [...]string{
	Pending:    "badge badge-pending",
	InProgress: "badge badge-progress",
	Ready:      "badge badge-ready",
	Collected:  "badge badge-collected",
}

var icons = [...]string{
	Pending:    "package",
	InProgress: "clock",
	Ready:      "check-circle",
	Collected:  "truck",
}

func (s Status) String() string     { return labels[s] }
func (s Status) BadgeClass() string { return badgeClasses[s] }
func (s Status) Icon() string       { return icons[s] }

// Parse maps a stored or submitted label back to a Status. "Received" is
// accepted as an alias for Pending (an older variant of the customer UI
// used it) but is never emitted.
func Parse(s string) (Status, error) {
	switch s {
	case "Pending", "Received":
		return Pending, nil
	case "In Progress":
		return InProgress, nil
	case "Ready":
		return Ready, nil
	case "Collected":
		return Collected, nil
	}
	return Pending, fmt.Errorf("unknown order status %q", s)
}

// Step is one entry of the tracking timeline.
type Step struct {
	Status    Status
	Completed bool
	Current   bool
}

// Progress derives the timeline for the given status: every status at or
// before it in canonical order is completed, the status itself is current,
// later ones are neither. Recomputed per render, never stored.
func Progress(current Status) []Step {
	steps := make([]Step, len(All))
	for i, s := range All {
		steps[i] = Step{
			Status:    s,
			Completed: s <= current,
			Current:   s == current,
		}
	}
	return steps
}
