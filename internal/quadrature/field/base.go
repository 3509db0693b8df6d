package field

import "github.com/copyleftdev/QUADRA/internal/quadrature"

// baseIntegrator is the field counterpart of the float64 base: it holds the
// configuration and per-run state shared by the concrete integrators and
// routes every integrand evaluation through computeObjectiveValue.
type baseIntegrator[T Element[T]] struct {
	relativeAccuracy      float64
	absoluteAccuracy      float64
	minimalIterationCount int

	iterations  *quadrature.Incrementor
	evaluations *quadrature.Incrementor

	// per-run state, reset by setup
	f   Function[T]
	min T
	max T
}

func newBaseIntegrator[T Element[T]](relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (baseIntegrator[T], error) {

	if minimalIterationCount <= 0 {
		return baseIntegrator[T]{}, &quadrature.Error{
			Kind:    quadrature.KindInvalidIterationBounds,
			Message: "minimal iteration count is not strictly positive",
			Value:   float64(minimalIterationCount),
		}
	}
	if maximalIterationCount <= minimalIterationCount {
		return baseIntegrator[T]{}, &quadrature.Error{
			Kind:    quadrature.KindInvalidIterationBounds,
			Message: "maximal iteration count is not greater than minimal count",
			Value:   float64(maximalIterationCount),
			Bound:   float64(minimalIterationCount),
		}
	}

	return baseIntegrator[T]{
		relativeAccuracy:      relativeAccuracy,
		absoluteAccuracy:      absoluteAccuracy,
		minimalIterationCount: minimalIterationCount,
		iterations:            quadrature.NewIncrementor(maximalIterationCount, quadrature.KindTooManyIterations),
		evaluations:           quadrature.NewIncrementor(0, quadrature.KindTooManyEvaluations),
	}, nil
}

func checkIterationCap(maximalIterationCount, cap int) error {
	if maximalIterationCount > cap {
		return &quadrature.Error{
			Kind:    quadrature.KindInvalidIterationBounds,
			Message: "maximal iteration count exceeds hard cap",
			Value:   float64(maximalIterationCount),
			Bound:   float64(cap),
		}
	}
	return nil
}

// setup validates the integrand and interval and resets the per-run state.
// Interval ordering is checked on the real parts of the bounds.
func (b *baseIntegrator[T]) setup(maxEval int, f Function[T], lower, upper T) error {
	if f == nil {
		return &quadrature.Error{
			Kind:    quadrature.KindNilIntegrand,
			Message: "integrand function is nil",
		}
	}
	if lower.Real() >= upper.Real() {
		return &quadrature.Error{
			Kind:    quadrature.KindInvalidInterval,
			Message: "endpoints do not specify an interval",
			Value:   lower.Real(),
			Bound:   upper.Real(),
		}
	}

	b.min = lower
	b.max = upper
	b.f = f
	b.evaluations = b.evaluations.WithMaximalCount(maxEval)
	b.iterations.Reset()
	return nil
}

// computeObjectiveValue evaluates the integrand at point, counting the
// evaluation first so the budget is never exceeded.
func (b *baseIntegrator[T]) computeObjectiveValue(point T) (T, error) {
	if err := b.evaluations.Increment(); err != nil {
		var zero T
		return zero, err
	}
	return b.f(point), nil
}

// RelativeAccuracy returns the configured relative accuracy.
func (b *baseIntegrator[T]) RelativeAccuracy() float64 {
	return b.relativeAccuracy
}

// AbsoluteAccuracy returns the configured absolute accuracy.
func (b *baseIntegrator[T]) AbsoluteAccuracy() float64 {
	return b.absoluteAccuracy
}

// MinimalIterationCount returns the configured minimum iteration count.
func (b *baseIntegrator[T]) MinimalIterationCount() int {
	return b.minimalIterationCount
}

// MaximalIterationCount returns the configured maximum iteration count.
func (b *baseIntegrator[T]) MaximalIterationCount() int {
	return b.iterations.MaximalCount()
}

// Iterations returns the iteration count of the last run.
func (b *baseIntegrator[T]) Iterations() int {
	return b.iterations.Count()
}

// Evaluations returns the evaluation count of the last run.
func (b *baseIntegrator[T]) Evaluations() int {
	return b.evaluations.Count()
}
