package quadrature

import "math"

// MidPointMaxIterationsCount is the hard cap on midpoint iterations. The
// panel count is 2^iterations and must not overflow.
const MidPointMaxIterationsCount = 64

// MidPointIntegrator integrates by iterated refinement of the midpoint
// rule, doubling the panel count each iteration. The function should be
// integrable but needs not be defined at the interval endpoints.
type MidPointIntegrator struct {
	baseIntegrator
}

// NewMidPointIntegrator creates a midpoint integrator with default settings
// (max iteration count set to MidPointMaxIterationsCount).
func NewMidPointIntegrator() *MidPointIntegrator {
	m, _ := NewMidPointIntegratorWithCounts(DefaultMinimalIterationCount, MidPointMaxIterationsCount)
	return m
}

// NewMidPointIntegratorWithCounts creates a midpoint integrator with default
// accuracies and the given iteration counts.
func NewMidPointIntegratorWithCounts(minimalIterationCount, maximalIterationCount int) (*MidPointIntegrator, error) {
	return NewMidPointIntegratorWithAccuracy(DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
}

// NewMidPointIntegratorWithAccuracy creates a midpoint integrator with the
// given accuracies and iteration counts.
func NewMidPointIntegratorWithAccuracy(relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*MidPointIntegrator, error) {

	base, err := newBaseIntegrator(relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, MidPointMaxIterationsCount); err != nil {
		return nil, err
	}
	return &MidPointIntegrator{baseIntegrator: base}, nil
}

// stage computes the n-th stage integral of the midpoint rule. The interval
// is divided into 2^n panels rather than an arbitrary m so that previously
// computed values can be reused: only the 2^(n-1) newly introduced midpoints
// are evaluated.
func (m *MidPointIntegrator) stage(n int, previousStageResult, min, diffMaxMin float64) (float64, error) {
	// number of new points in this stage
	np := int64(1) << (n - 1)
	sum := 0.0

	// spacing between adjacent new points
	spacing := diffMaxMin / float64(np)

	// the first new point
	x := min + 0.5*spacing
	for i := int64(0); i < np; i++ {
		y, err := m.computeObjectiveValue(x)
		if err != nil {
			return 0, err
		}
		sum += y
		x += spacing
	}

	// add the new sum to the previously calculated result
	return 0.5 * (previousStageResult + sum*spacing), nil
}

// Integrate computes the definite integral of f between lower and upper.
func (m *MidPointIntegrator) Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error) {
	if err := m.setup(maxEval, f, lower, upper); err != nil {
		return 0, err
	}
	return m.doIntegrate()
}

func (m *MidPointIntegrator) doIntegrate() (float64, error) {
	min := m.min
	diff := m.max - m.min
	midPoint := min + 0.5*diff

	y, err := m.computeObjectiveValue(midPoint)
	if err != nil {
		return 0, err
	}
	oldt := diff * y

	for {
		if err := m.iterations.Increment(); err != nil {
			return 0, err
		}
		i := m.iterations.Count()
		t, err := m.stage(i, oldt, min, diff)
		if err != nil {
			return 0, err
		}
		if i >= m.minimalIterationCount {
			delta := math.Abs(t - oldt)
			rLimit := m.relativeAccuracy * (math.Abs(oldt) + math.Abs(t)) * 0.5
			if delta <= rLimit || delta <= m.absoluteAccuracy {
				return t, nil
			}
		}
		oldt = t
	}
}
