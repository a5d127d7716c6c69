package checkout

// State represents the state of one checkout attempt
type State string

const (
	StateDrafting                State = "drafting"
	StateSubmitting              State = "submitting"
	StateAwaitingExternalPayment State = "awaiting_external_payment"
	StateVerifying               State = "verifying"
	StateCompleted               State = "completed"
	StateFailed                  State = "failed"
)

// IsValid checks if the state is a valid checkout State
func (s State) IsValid() bool {
	switch s {
	case StateDrafting, StateSubmitting, StateAwaitingExternalPayment,
		StateVerifying, StateCompleted, StateFailed:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state.
// AwaitingExternalPayment and Verifying only occur on the gateway path;
// dismissal of the external payment step returns to Drafting with the cart
// and draft untouched.
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateDrafting:
		return target == StateSubmitting || target == StateFailed
	case StateSubmitting:
		return target == StateAwaitingExternalPayment || target == StateCompleted || target == StateFailed
	case StateAwaitingExternalPayment:
		return target == StateVerifying || target == StateDrafting || target == StateFailed
	case StateVerifying:
		return target == StateCompleted || target == StateFailed
	case StateFailed:
		return target == StateDrafting
	case StateCompleted:
		return false // Terminal
	}
	return false
}
