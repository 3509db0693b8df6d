package field

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// RombergIntegrator is the field counterpart of the Romberg integrator.
type RombergIntegrator[T Element[T]] struct {
	baseIntegrator[T]
}

// NewRombergIntegrator creates a Romberg integrator with default settings.
func NewRombergIntegrator[T Element[T]]() *RombergIntegrator[T] {
	r, _ := NewRombergIntegratorWithAccuracy[T](
		quadrature.DefaultRelativeAccuracy, quadrature.DefaultAbsoluteAccuracy,
		quadrature.DefaultMinimalIterationCount, quadrature.RombergMaxIterationsCount)
	return r
}

// NewRombergIntegratorWithAccuracy creates a Romberg integrator with the
// given accuracies and iteration counts.
func NewRombergIntegratorWithAccuracy[T Element[T]](relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*RombergIntegrator[T], error) {

	base, err := newBaseIntegrator[T](relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, quadrature.RombergMaxIterationsCount); err != nil {
		return nil, err
	}
	return &RombergIntegrator[T]{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (r *RombergIntegrator[T]) Integrate(maxEval int, f Function[T], lower, upper T) (T, error) {
	var zero T
	if err := r.setup(maxEval, f, lower, upper); err != nil {
		return zero, err
	}
	return r.doIntegrate()
}

func (r *RombergIntegrator[T]) doIntegrate() (T, error) {
	var zero T

	m := r.iterations.MaximalCount() + 1
	previousRow := make([]T, m)
	currentRow := make([]T, m)

	var stages trapezoidStages[T]
	t0, err := stages.stage(&r.baseIntegrator, 0)
	if err != nil {
		return zero, err
	}
	currentRow[0] = t0
	if err := r.iterations.Increment(); err != nil {
		return zero, err
	}
	olds := currentRow[0]

	for {
		i := r.iterations.Count()

		// switch rows
		previousRow, currentRow = currentRow, previousRow

		ti, err := stages.stage(&r.baseIntegrator, i)
		if err != nil {
			return zero, err
		}
		currentRow[0] = ti
		if err := r.iterations.Increment(); err != nil {
			return zero, err
		}
		for j := 1; j <= i; j++ {
			// Richardson extrapolation coefficient
			rc := float64(int64(1)<<(2*uint(j))) - 1
			tIJm1 := currentRow[j-1]
			currentRow[j] = tIJm1.Add(tIJm1.Subtract(previousRow[j-1]).DivFloat(rc))
		}
		s := currentRow[i]
		if i >= r.minimalIterationCount {
			delta := math.Abs(s.Subtract(olds).Real())
			rLimit := (math.Abs(olds.Real()) + math.Abs(s.Real())) * 0.5 * r.relativeAccuracy
			if delta <= rLimit || delta <= r.absoluteAccuracy {
				return s, nil
			}
		}
		olds = s
	}
}
