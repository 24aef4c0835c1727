package domain

import "fmt"

// Step is a stage of the checkout wizard.
type Step int

const (
	StepCustomize Step = iota + 1
	StepReview
	StepTravelers
	StepPayment
	StepConfirmed
)

var stepNames = map[Step]string{
	StepCustomize: "CUSTOMIZE",
	StepReview:    "REVIEW",
	StepTravelers: "TRAVELERS",
	StepPayment:   "PAYMENT",
	StepConfirmed: "CONFIRMED",
}

func (s Step) IsTerminal() bool {
	return s == StepConfirmed
}

func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// String representation (for logging)
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP(%d)", int(s))
}

// Previous returns the step a back navigation lands on.
func (s Step) Previous() (Step, bool) {
	switch s {
	case StepReview, StepTravelers, StepPayment:
		return s - 1, true
	default:
		return s, false
	}
}

// CanTransitionTo reports whether the wizard graph has an edge from -> to.
// Forward edges advance one step at a time, back edges are allowed between
// the four editable steps, and nothing leaves Confirmed.
func CanTransitionTo(from, to Step) bool {
	if !from.Valid() || !to.Valid() || from.IsTerminal() {
		return false
	}
	if to == from+1 {
		return true
	}
	prev, ok := from.Previous()
	return ok && prev == to
}
