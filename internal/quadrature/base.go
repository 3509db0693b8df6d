package quadrature

// baseIntegrator holds the configuration and per-run state shared by every
// concrete integrator. Concrete integrators embed it, call setup at the
// start of Integrate and route every integrand evaluation through
// computeObjectiveValue so that the evaluation counter strictly bounds the
// number of calls made.
type baseIntegrator struct {
	relativeAccuracy      float64
	absoluteAccuracy      float64
	minimalIterationCount int

	iterations  *Incrementor
	evaluations *Incrementor

	// per-run state, reset by setup
	f   UnivariateFunction
	min float64
	max float64
}

// newBaseIntegrator validates the accuracy settings and iteration bounds.
func newBaseIntegrator(relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (baseIntegrator, error) {

	if minimalIterationCount <= 0 {
		err := newError(KindInvalidIterationBounds,
			"minimal iteration count %d is not strictly positive", minimalIterationCount)
		err.Value = float64(minimalIterationCount)
		return baseIntegrator{}, err
	}
	if maximalIterationCount <= minimalIterationCount {
		err := newError(KindInvalidIterationBounds,
			"maximal iteration count %d is not greater than minimal count %d",
			maximalIterationCount, minimalIterationCount)
		err.Value = float64(maximalIterationCount)
		err.Bound = float64(minimalIterationCount)
		return baseIntegrator{}, err
	}

	return baseIntegrator{
		relativeAccuracy:      relativeAccuracy,
		absoluteAccuracy:      absoluteAccuracy,
		minimalIterationCount: minimalIterationCount,
		iterations:            NewIncrementor(maximalIterationCount, KindTooManyIterations),
		evaluations:           NewIncrementor(0, KindTooManyEvaluations),
	}, nil
}

// setup validates the integrand and interval and resets the per-run state.
func (b *baseIntegrator) setup(maxEval int, f UnivariateFunction, lower, upper float64) error {
	if f == nil {
		return newError(KindNilIntegrand, "integrand function is nil")
	}
	if lower >= upper {
		err := newError(KindInvalidInterval,
			"endpoints do not specify an interval: [%v, %v]", lower, upper)
		err.Value = lower
		err.Bound = upper
		return err
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
func (b *baseIntegrator) computeObjectiveValue(point float64) (float64, error) {
	if err := b.evaluations.Increment(); err != nil {
		return 0, err
	}
	return b.f(point), nil
}

// RelativeAccuracy returns the configured relative accuracy.
func (b *baseIntegrator) RelativeAccuracy() float64 {
	return b.relativeAccuracy
}

// AbsoluteAccuracy returns the configured absolute accuracy.
func (b *baseIntegrator) AbsoluteAccuracy() float64 {
	return b.absoluteAccuracy
}

// MinimalIterationCount returns the configured minimum iteration count.
func (b *baseIntegrator) MinimalIterationCount() int {
	return b.minimalIterationCount
}

// MaximalIterationCount returns the configured maximum iteration count.
func (b *baseIntegrator) MaximalIterationCount() int {
	return b.iterations.MaximalCount()
}

// Iterations returns the iteration count of the last run.
func (b *baseIntegrator) Iterations() int {
	return b.iterations.Count()
}

// Evaluations returns the evaluation count of the last run.
func (b *baseIntegrator) Evaluations() int {
	return b.evaluations.Count()
}

// checkIterationCap rejects maximal iteration counts beyond the hard cap an
// algorithm can support (tableau row storage for Romberg, panel count
// overflow for the panel-doubling rules).
func checkIterationCap(maximalIterationCount, cap int) error {
	if maximalIterationCount > cap {
		err := newError(KindInvalidIterationBounds,
			"maximal iteration count %d exceeds hard cap %d", maximalIterationCount, cap)
		err.Value = float64(maximalIterationCount)
		err.Bound = float64(cap)
		return err
	}
	return nil
}

// Min returns the lower bound of the current interval.
func (b *baseIntegrator) Min() float64 {
	return b.min
}

// Max returns the upper bound of the current interval.
func (b *baseIntegrator) Max() float64 {
	return b.max
}
