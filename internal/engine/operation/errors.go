package operation

import (
	"errors"
	"fmt"
)

// Sentinel errors for operation resolution and computation.
var (
	// ErrUnknownOperation is returned when a name is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDivisionByZero is returned when dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is the base error for operand values outside an
	// operation's domain. Use errors.Is to match it.
	ErrDomain = errors.New("operand outside operation domain")
)

// DomainError describes why a specific operation rejected its operands.
type DomainError struct {
	Operation string // operation name
	Reason    string // human-readable condition
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

// Unwrap lets errors.Is(err, ErrDomain) match any DomainError.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// newDomainError creates a DomainError for an operation.
func newDomainError(op, reason string) *DomainError {
	return &DomainError{Operation: op, Reason: reason}
}
