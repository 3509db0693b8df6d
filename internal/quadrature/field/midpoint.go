package field

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// MidPointIntegrator is the field counterpart of the midpoint rule
// integrator.
type MidPointIntegrator[T Element[T]] struct {
	baseIntegrator[T]
}

// NewMidPointIntegrator creates a midpoint integrator with default settings.
func NewMidPointIntegrator[T Element[T]]() *MidPointIntegrator[T] {
	m, _ := NewMidPointIntegratorWithAccuracy[T](
		quadrature.DefaultRelativeAccuracy, quadrature.DefaultAbsoluteAccuracy,
		quadrature.DefaultMinimalIterationCount, quadrature.MidPointMaxIterationsCount)
	return m
}

// NewMidPointIntegratorWithAccuracy creates a midpoint integrator with the
// given accuracies and iteration counts.
func NewMidPointIntegratorWithAccuracy[T Element[T]](relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*MidPointIntegrator[T], error) {

	base, err := newBaseIntegrator[T](relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, quadrature.MidPointMaxIterationsCount); err != nil {
		return nil, err
	}
	return &MidPointIntegrator[T]{baseIntegrator: base}, nil
}

// stage computes the n-th stage integral of the midpoint rule, evaluating
// only the 2^(n-1) newly introduced midpoints.
func (m *MidPointIntegrator[T]) stage(n int, previousStageResult, min, diffMaxMin T) (T, error) {
	var zero T

	// number of new points in this stage
	np := int64(1) << (n - 1)
	sum := min.NewInstance(0)

	// spacing between adjacent new points
	spacing := diffMaxMin.DivFloat(float64(np))

	// the first new point
	x := min.Add(spacing.MulFloat(0.5))
	for i := int64(0); i < np; i++ {
		y, err := m.computeObjectiveValue(x)
		if err != nil {
			return zero, err
		}
		sum = sum.Add(y)
		x = x.Add(spacing)
	}

	// add the new sum to the previously calculated result
	return previousStageResult.Add(sum.Multiply(spacing)).MulFloat(0.5), nil
}

// Integrate computes the definite integral of f between lower and upper.
func (m *MidPointIntegrator[T]) Integrate(maxEval int, f Function[T], lower, upper T) (T, error) {
	var zero T
	if err := m.setup(maxEval, f, lower, upper); err != nil {
		return zero, err
	}
	return m.doIntegrate()
}

func (m *MidPointIntegrator[T]) doIntegrate() (T, error) {
	var zero T

	min := m.min
	diff := m.max.Subtract(min)
	midPoint := min.Add(diff.MulFloat(0.5))

	y, err := m.computeObjectiveValue(midPoint)
	if err != nil {
		return zero, err
	}
	oldt := diff.Multiply(y)

	for {
		if err := m.iterations.Increment(); err != nil {
			return zero, err
		}
		i := m.iterations.Count()
		t, err := m.stage(i, oldt, min, diff)
		if err != nil {
			return zero, err
		}
		if i >= m.minimalIterationCount {
			delta := math.Abs(t.Subtract(oldt).Real())
			rLimit := (math.Abs(oldt.Real()) + math.Abs(t.Real())) * 0.5 * m.relativeAccuracy
			if delta <= rLimit || delta <= m.absoluteAccuracy {
				return t, nil
			}
		}
		oldt = t
	}
}
