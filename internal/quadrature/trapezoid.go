package quadrature

import "math"

// TrapezoidMaxIterationsCount is the hard cap on trapezoid iterations. The
// panel count is 2^iterations and must not overflow.
const TrapezoidMaxIterationsCount = 64

// trapezoidStages computes successive refinement stages of the trapezoid
// rule. Stage n halves the panel width of stage n-1 and only evaluates the
// newly introduced points, carrying the previous stage sum forward.
type trapezoidStages struct {
	s float64
}

// stage computes the n-th stage integral of the trapezoid rule. The interval
// is divided into 2^n panels so that previously computed values are reused.
func (t *trapezoidStages) stage(b *baseIntegrator, n int) (float64, error) {
	if n == 0 {
		fMin, err := b.computeObjectiveValue(b.min)
		if err != nil {
			return 0, err
		}
		fMax, err := b.computeObjectiveValue(b.max)
		if err != nil {
			return 0, err
		}
		t.s = 0.5 * (b.max - b.min) * (fMin + fMax)
		return t.s, nil
	}

	// number of new points in this stage
	np := int64(1) << (n - 1)
	sum := 0.0

	// spacing between adjacent new points
	spacing := (b.max - b.min) / float64(np)

	// the first new point
	x := b.min + 0.5*spacing
	for i := int64(0); i < np; i++ {
		y, err := b.computeObjectiveValue(x)
		if err != nil {
			return 0, err
		}
		sum += y
		x += spacing
	}

	// add the new sum to the previously calculated result
	t.s = 0.5 * (t.s + sum*spacing)
	return t.s, nil
}

// TrapezoidIntegrator integrates by iterated refinement of the trapezoid
// rule, doubling the panel count each iteration.
type TrapezoidIntegrator struct {
	baseIntegrator
}

// NewTrapezoidIntegrator creates a trapezoid integrator with default
// settings (max iteration count set to TrapezoidMaxIterationsCount).
func NewTrapezoidIntegrator() *TrapezoidIntegrator {
	t, _ := NewTrapezoidIntegratorWithCounts(DefaultMinimalIterationCount, TrapezoidMaxIterationsCount)
	return t
}

// NewTrapezoidIntegratorWithCounts creates a trapezoid integrator with
// default accuracies and the given iteration counts.
func NewTrapezoidIntegratorWithCounts(minimalIterationCount, maximalIterationCount int) (*TrapezoidIntegrator, error) {
	return NewTrapezoidIntegratorWithAccuracy(DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
}

// NewTrapezoidIntegratorWithAccuracy creates a trapezoid integrator with the
// given accuracies and iteration counts.
func NewTrapezoidIntegratorWithAccuracy(relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*TrapezoidIntegrator, error) {

	base, err := newBaseIntegrator(relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, TrapezoidMaxIterationsCount); err != nil {
		return nil, err
	}
	return &TrapezoidIntegrator{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (t *TrapezoidIntegrator) Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error) {
	if err := t.setup(maxEval, f, lower, upper); err != nil {
		return 0, err
	}
	return t.doIntegrate()
}

func (t *TrapezoidIntegrator) doIntegrate() (float64, error) {
	var stages trapezoidStages

	oldt, err := stages.stage(&t.baseIntegrator, 0)
	if err != nil {
		return 0, err
	}
	if err := t.iterations.Increment(); err != nil {
		return 0, err
	}

	for {
		i := t.iterations.Count()
		tn, err := stages.stage(&t.baseIntegrator, i)
		if err != nil {
			return 0, err
		}
		if i >= t.minimalIterationCount {
			delta := math.Abs(tn - oldt)
			rLimit := t.relativeAccuracy * (math.Abs(oldt) + math.Abs(tn)) * 0.5
			if delta <= rLimit || delta <= t.absoluteAccuracy {
				return tn, nil
			}
		}
		oldt = tn
		if err := t.iterations.Increment(); err != nil {
			return 0, err
		}
	}
}
