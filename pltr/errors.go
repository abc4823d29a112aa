package pltr

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Solve and Run.
var (
	// ErrInfeasibleInstance indicates that no schedule exists: even the
	// empty extension of the very first step has no saturating flow.
	ErrInfeasibleInstance = errors.New("pltr: instance is not schedulable")

	// ErrInvariantViolation indicates an engine defect. It is always
	// delivered through *InvariantError.
	ErrInvariantViolation = errors.New("pltr: invariant violation")

	// ErrMaxFlowExceedsBound indicates a flow value above p_total.
	ErrMaxFlowExceedsBound = errors.New("pltr: max flow exceeds total processing volume")

	// ErrLowerBoundNotEnforced is returned under LowerBoundStrict for
	// instances with q > 0, which the network cannot encode.
	ErrLowerBoundNotEnforced = errors.New("pltr: lower bound q is not enforced by the network")

	// ErrUnknownLowerBoundPolicy is returned by ParseLowerBoundPolicy.
	ErrUnknownLowerBoundPolicy = errors.New("pltr: unknown lower bound policy")
)

// InvariantError carries the diagnostic context of an invariant violation.
// Slot is -1 when the violation is not tied to a slot.
type InvariantError struct {
	Step   Step
	Level  int
	Slot   int
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("pltr: invariant violation in %s (level %d, slot %d): %s", e.Step, e.Level, e.Slot, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes ErrInvariantViolation and the underlying cause, if any.
func (e *InvariantError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvariantViolation, e.Err}
	}

	return []error{ErrInvariantViolation}
}
