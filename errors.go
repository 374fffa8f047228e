package qsim

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRandomSource is returned by stochastic operations on a
	// simulator that was built without a random source.
	ErrMissingRandomSource = errors.New("qsim: stochastic operation without a random source")

	// ErrDimensionMismatch is returned when a state or operator does not fit
	// the declared number of qubits.
	ErrDimensionMismatch = errors.New("qsim: dimension mismatch")

	// ErrInvalidState is the sentinel behind every *InvalidStateError.
	ErrInvalidState = errors.New("qsim: invalid quantum state")

	// ErrUnsupportedOperation marks a capability the simulator variant does
	// not offer, or an unknown gate or noise channel.
	ErrUnsupportedOperation = errors.New("qsim: unsupported operation")

	// ErrNotImplemented marks a known, permanent gap.
	ErrNotImplemented = errors.New("qsim: not implemented")

	ErrInvalidProbability = errors.New("qsim: probability outside [0, 1]")
	ErrInvalidQubitCount  = errors.New("qsim: qubit count must be positive")
)

// StateViolation names the density matrix invariant that failed validation.
type StateViolation int

const (
	NotHermitian StateViolation = iota + 1
	NotTraceOne
	NegativeEigenvalue
)

func (v StateViolation) String() string {
	switch v {
	case NotHermitian:
		return "NotHermitian"
	case NotTraceOne:
		return "NotTraceOne"
	case NegativeEigenvalue:
		return "NegativeEigenvalue"
	default:
		return fmt.Sprintf("StateViolation(%d)", int(v))
	}
}

/*
InvalidStateError reports which validity check a candidate density matrix
failed. It matches ErrInvalidState under errors.Is.
*/
type InvalidStateError struct {
	Reason StateViolation
	Detail string
}

func (e *InvalidStateError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", ErrInvalidState, e.Reason)
	}
	return fmt.Sprintf("%v: %v: %s", ErrInvalidState, e.Reason, e.Detail)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
