package field

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// trapezoidStages computes successive refinement stages of the trapezoid
// rule over field elements, reusing previously computed values.
type trapezoidStages[T Element[T]] struct {
	s T
}

// stage computes the n-th stage integral of the trapezoid rule. The
// interval is divided into 2^n panels so that only the newly introduced
// points are evaluated.
func (t *trapezoidStages[T]) stage(b *baseIntegrator[T], n int) (T, error) {
	var zero T
	if n == 0 {
		fMin, err := b.computeObjectiveValue(b.min)
		if err != nil {
			return zero, err
		}
		fMax, err := b.computeObjectiveValue(b.max)
		if err != nil {
			return zero, err
		}
		t.s = b.max.Subtract(b.min).MulFloat(0.5).Multiply(fMin.Add(fMax))
		return t.s, nil
	}

	// number of new points in this stage
	np := int64(1) << (n - 1)
	sum := b.min.NewInstance(0)

	// spacing between adjacent new points
	spacing := b.max.Subtract(b.min).DivFloat(float64(np))

	// the first new point
	x := b.min.Add(spacing.MulFloat(0.5))
	for i := int64(0); i < np; i++ {
		y, err := b.computeObjectiveValue(x)
		if err != nil {
			return zero, err
		}
		sum = sum.Add(y)
		x = x.Add(spacing)
	}

	// add the new sum to the previously calculated result
	t.s = t.s.Add(sum.Multiply(spacing)).MulFloat(0.5)
	return t.s, nil
}

// TrapezoidIntegrator is the field counterpart of the trapezoid rule
// integrator.
type TrapezoidIntegrator[T Element[T]] struct {
	baseIntegrator[T]
}

// NewTrapezoidIntegrator creates a trapezoid integrator with default
// settings.
func NewTrapezoidIntegrator[T Element[T]]() *TrapezoidIntegrator[T] {
	t, _ := NewTrapezoidIntegratorWithAccuracy[T](
		quadrature.DefaultRelativeAccuracy, quadrature.DefaultAbsoluteAccuracy,
		quadrature.DefaultMinimalIterationCount, quadrature.TrapezoidMaxIterationsCount)
	return t
}

// NewTrapezoidIntegratorWithAccuracy creates a trapezoid integrator with the
// given accuracies and iteration counts.
func NewTrapezoidIntegratorWithAccuracy[T Element[T]](relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*TrapezoidIntegrator[T], error) {

	base, err := newBaseIntegrator[T](relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, quadrature.TrapezoidMaxIterationsCount); err != nil {
		return nil, err
	}
	return &TrapezoidIntegrator[T]{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (t *TrapezoidIntegrator[T]) Integrate(maxEval int, f Function[T], lower, upper T) (T, error) {
	var zero T
	if err := t.setup(maxEval, f, lower, upper); err != nil {
		return zero, err
	}
	return t.doIntegrate()
}

func (t *TrapezoidIntegrator[T]) doIntegrate() (T, error) {
	var zero T
	var stages trapezoidStages[T]

	oldt, err := stages.stage(&t.baseIntegrator, 0)
	if err != nil {
		return zero, err
	}
	if err := t.iterations.Increment(); err != nil {
		return zero, err
	}

	for {
		i := t.iterations.Count()
		tn, err := stages.stage(&t.baseIntegrator, i)
		if err != nil {
			return zero, err
		}
		if i >= t.minimalIterationCount {
			delta := math.Abs(tn.Subtract(oldt).Real())
			rLimit := (math.Abs(oldt.Real()) + math.Abs(tn.Real())) * 0.5 * t.relativeAccuracy
			if delta <= rLimit || delta <= t.absoluteAccuracy {
				return tn, nil
			}
		}
		oldt = tn
		if err := t.iterations.Increment(); err != nil {
			return zero, err
		}
	}
}
