// Package gauss computes Gaussian quadrature rules (nodes and weights) for
// the Legendre, Hermite and Laguerre orthogonal polynomial families, and
// evaluates integrals against fixed rules.
package gauss

import "fmt"

// Kind classifies a rule computation or evaluation failure.
type Kind int

const (
	// KindInvalidOrder reports a rule order outside [1, MaxOrder].
	KindInvalidOrder Kind = iota + 1
	// KindDimensionMismatch reports node and weight slices of different
	// lengths.
	KindDimensionMismatch
	// KindNotSorted reports nodes that are not strictly increasing.
	KindNotSorted
	// KindNonConvergence reports that the root finder did not converge
	// within its iteration budget.
	KindNonConvergence
)

// Error represents a quadrature rule error.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e != nil && t.Kind == e.Kind
}

// newError creates a new rule error of the given kind.
func newError(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the failure class of err, or 0 if err is not a rule error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
