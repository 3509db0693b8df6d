package quadrature

import "fmt"

// Kind classifies an integration failure so that callers can react
// programmatically without parsing messages.
type Kind int

const (
	// KindInvalidInterval reports an integration interval with
	// lower >= upper.
	KindInvalidInterval Kind = iota + 1
	// KindNilIntegrand reports a nil integrand function.
	KindNilIntegrand
	// KindInvalidIterationBounds reports a non-positive minimal iteration
	// count or a maximal count not greater than the minimal one.
	KindInvalidIterationBounds
	// KindTooManyEvaluations reports that the integrand evaluation budget
	// was exhausted before convergence.
	KindTooManyEvaluations
	// KindTooManyIterations reports that the iteration budget was
	// exhausted before convergence.
	KindTooManyIterations
	// KindInvalidOrder reports a non-positive number of quadrature points.
	KindInvalidOrder
)

// String returns a short identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidInterval:
		return "invalid interval"
	case KindNilIntegrand:
		return "nil integrand"
	case KindInvalidIterationBounds:
		return "invalid iteration bounds"
	case KindTooManyEvaluations:
		return "too many evaluations"
	case KindTooManyIterations:
		return "too many iterations"
	case KindInvalidOrder:
		return "invalid order"
	default:
		return "unknown"
	}
}

// Error represents an integration error with enough numeric context for a
// caller to decide whether relaxing limits and retrying makes sense.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Value is the offending value, if any.
	Value float64
	// Bound is the violated bound, if any.
	Bound float64
	// Err is the underlying error that triggered this one, if any.
	Err error
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

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: KindTooManyEvaluations}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e != nil && t.Kind == e.Kind
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// newError creates a new integration error of the given kind.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the failure class of err, or 0 if err is not an
// integration error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
