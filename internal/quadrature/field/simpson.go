package field

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// SimpsonIntegrator is the field counterpart of the Simpson integrator.
type SimpsonIntegrator[T Element[T]] struct {
	baseIntegrator[T]
}

// NewSimpsonIntegrator creates a Simpson integrator with default settings.
func NewSimpsonIntegrator[T Element[T]]() *SimpsonIntegrator[T] {
	s, _ := NewSimpsonIntegratorWithAccuracy[T](
		quadrature.DefaultRelativeAccuracy, quadrature.DefaultAbsoluteAccuracy,
		quadrature.DefaultMinimalIterationCount, quadrature.SimpsonMaxIterationsCount)
	return s
}

// NewSimpsonIntegratorWithAccuracy creates a Simpson integrator with the
// given accuracies and iteration counts.
func NewSimpsonIntegratorWithAccuracy[T Element[T]](relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*SimpsonIntegrator[T], error) {

	base, err := newBaseIntegrator[T](relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, quadrature.SimpsonMaxIterationsCount); err != nil {
		return nil, err
	}
	return &SimpsonIntegrator[T]{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (s *SimpsonIntegrator[T]) Integrate(maxEval int, f Function[T], lower, upper T) (T, error) {
	var zero T
	if err := s.setup(maxEval, f, lower, upper); err != nil {
		return zero, err
	}
	return s.doIntegrate()
}

func (s *SimpsonIntegrator[T]) doIntegrate() (T, error) {
	var zero T
	var stages trapezoidStages[T]

	if s.minimalIterationCount == 1 {
		t0, err := stages.stage(&s.baseIntegrator, 0)
		if err != nil {
			return zero, err
		}
		t1, err := stages.stage(&s.baseIntegrator, 1)
		if err != nil {
			return zero, err
		}
		if err := s.iterations.Increment(); err != nil {
			return zero, err
		}
		return t1.MulFloat(4).Subtract(t0).DivFloat(3), nil
	}

	// Simpson's rule requires at least two trapezoid stages.
	olds := s.min.NewInstance(0)
	oldt, err := stages.stage(&s.baseIntegrator, 0)
	if err != nil {
		return zero, err
	}
	for {
		if err := s.iterations.Increment(); err != nil {
			return zero, err
		}
		i := s.iterations.Count()
		t, err := stages.stage(&s.baseIntegrator, i)
		if err != nil {
			return zero, err
		}
		sn := t.MulFloat(4).Subtract(oldt).DivFloat(3)
		if i >= s.minimalIterationCount {
			delta := math.Abs(sn.Subtract(olds).Real())
			rLimit := (math.Abs(olds.Real()) + math.Abs(sn.Real())) * 0.5 * s.relativeAccuracy
			if delta <= rLimit || delta <= s.absoluteAccuracy {
				return sn, nil
			}
		}
		olds = sn
		oldt = t
	}
}
