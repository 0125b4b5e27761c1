package checkout

// Step represents the position in the linear checkout sequence
type Step string

const (
	StepContact  Step = "contact"
	StepShipping Step = "shipping"
	StepReview   Step = "review"
	StepSuccess  Step = "success"
)

// IsValid checks if the step is a valid Step
func (s Step) IsValid() bool {
	switch s {
	case StepContact, StepShipping, StepReview, StepSuccess:
		return true
	}
	return false
}

// String returns the string representation of Step
func (s Step) String() string {
	return string(s)
}

// CanTransitionTo checks if the step can transition to the target step.
// The sequence is strictly linear; jumping steps is unrepresentable.
func (s Step) CanTransitionTo(target Step) bool {
	switch s {
	case StepContact:
		return target == StepShipping
	case StepShipping:
		return target == StepContact || target == StepReview
	case StepReview:
		return target == StepShipping || target == StepSuccess
	case StepSuccess:
		return false // Terminal state
	}
	return false
}

// Next returns the step reached by advancing, or the same step when
// there is nowhere forward to go. Review advances only via submission.
func (s Step) Next() Step {
	switch s {
	case StepContact:
		return StepShipping
	case StepShipping:
		return StepReview
	}
	return s
}

// Prev returns the step reached by going back, or the same step when
// backing out is not allowed.
func (s Step) Prev() Step {
	switch s {
	case StepShipping:
		return StepContact
	case StepReview:
		return StepShipping
	}
	return s
}

// IsTerminal reports whether the step has no outgoing transitions
func (s Step) IsTerminal() bool {
	return s == StepSuccess
}
