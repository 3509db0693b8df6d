package quadrature

// Incrementor is a bounded counter. Every integration run uses two
// independent instances: one for refinement iterations, one for integrand
// evaluations.
type Incrementor struct {
	count   int
	maximal int
	// kind selects the failure reported when the bound is hit.
	kind Kind
}

// NewIncrementor creates a counter that fails with the given kind once
// incrementing would exceed maximal.
func NewIncrementor(maximal int, kind Kind) *Incrementor {
	return &Incrementor{maximal: maximal, kind: kind}
}

// Count returns the current count.
func (inc *Incrementor) Count() int {
	return inc.count
}

// MaximalCount returns the maximal count.
func (inc *Incrementor) MaximalCount() int {
	return inc.maximal
}

// Reset zeroes the current count.
func (inc *Incrementor) Reset() {
	inc.count = 0
}

// WithMaximalCount returns a fresh counter with the given maximal count.
// The returned counter starts at zero.
func (inc *Incrementor) WithMaximalCount(maximal int) *Incrementor {
	return &Incrementor{maximal: maximal, kind: inc.kind}
}

// Increment adds one to the current count, failing if that would exceed the
// maximal count.
func (inc *Incrementor) Increment() error {
	if inc.count+1 > inc.maximal {
		err := newError(inc.kind, "maximal count %d exceeded", inc.maximal)
		err.Value = float64(inc.count + 1)
		err.Bound = float64(inc.maximal)
		return err
	}
	inc.count++
	return nil
}
