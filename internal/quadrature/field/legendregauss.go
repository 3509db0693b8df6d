package field

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// IterativeLegendreGaussIntegrator is the field counterpart of the
// iterative Legendre-Gauss integrator: it splits the interval into equal
// sub-intervals, applies a fixed-order rule on each and grows the number of
// sub-intervals until two successive estimates agree.
type IterativeLegendreGaussIntegrator[T Element[T]] struct {
	baseIntegrator[T]

	// factory that computes the points and weights
	factory *IntegratorFactory[T]

	// number of integration points per sub-interval
	numberOfPoints int
}

// NewIterativeLegendreGaussIntegrator creates an integrator with n points
// per sub-interval whose rules belong to the same field as proto, with
// default accuracies and iteration counts.
func NewIterativeLegendreGaussIntegrator[T Element[T]](proto T, n int) (*IterativeLegendreGaussIntegrator[T], error) {
	return NewIterativeLegendreGaussIntegratorWithAccuracy(proto, n,
		quadrature.DefaultRelativeAccuracy, quadrature.DefaultAbsoluteAccuracy,
		quadrature.DefaultMinimalIterationCount, quadrature.DefaultMaximalIterationCount)
}

// NewIterativeLegendreGaussIntegratorWithAccuracy creates an integrator
// with n points per sub-interval and the given accuracies and iteration
// counts.
func NewIterativeLegendreGaussIntegratorWithAccuracy[T Element[T]](proto T, n int,
	relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*IterativeLegendreGaussIntegrator[T], error) {

	if n <= 0 {
		return nil, &quadrature.Error{
			Kind:    quadrature.KindInvalidOrder,
			Message: "number of points is not strictly positive",
			Value:   float64(n),
		}
	}
	base, err := newBaseIntegrator[T](relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	return &IterativeLegendreGaussIntegrator[T]{
		baseIntegrator: base,
		factory:        NewIntegratorFactory(proto),
		numberOfPoints: n,
	}, nil
}

// NumberOfPoints returns the number of integration points per sub-interval.
func (g *IterativeLegendreGaussIntegrator[T]) NumberOfPoints() int {
	return g.numberOfPoints
}

// Integrate computes the definite integral of f between lower and upper.
func (g *IterativeLegendreGaussIntegrator[T]) Integrate(maxEval int, f Function[T], lower, upper T) (T, error) {
	var zero T
	if err := g.setup(maxEval, f, lower, upper); err != nil {
		return zero, err
	}
	return g.doIntegrate()
}

func (g *IterativeLegendreGaussIntegrator[T]) doIntegrate() (T, error) {
	var zero T

	// compute first estimate with a single step
	oldt, err := g.stage(1)
	if err != nil {
		return zero, err
	}

	n := 2
	for {
		// improve integral with a larger number of steps
		t, err := g.stage(n)
		if err != nil {
			return zero, err
		}

		// estimate the error
		delta := math.Abs(t.Subtract(oldt).Real())
		limit := math.Max(g.absoluteAccuracy,
			(math.Abs(oldt.Real())+math.Abs(t.Real()))*0.5*g.relativeAccuracy)

		// check convergence
		if g.iterations.Count()+1 >= g.minimalIterationCount && delta <= limit {
			return t, nil
		}

		// prepare next iteration: grow the step count faster when far
		// from the limit, but always by at least one
		ratio := math.Min(4, math.Pow(delta/limit, 0.5/float64(g.numberOfPoints)))
		n = max(int(ratio*float64(n)), n+1)
		oldt = t
		if err := g.iterations.Increment(); err != nil {
			return zero, err
		}
	}
}

// stage computes the estimate obtained by splitting the interval into n
// equal sub-intervals and applying the fixed-order rule on each of them.
func (g *IterativeLegendreGaussIntegrator[T]) stage(n int) (T, error) {
	var zero T

	min := g.min
	max := g.max
	step := max.Subtract(min).DivFloat(float64(n))

	sum := min.NewInstance(0)
	for i := 0; i < n; i++ {
		// integrate over the sub-interval [a, b]
		a := min.Add(step.MulFloat(float64(i)))
		b := a.Add(step)
		gi, err := g.factory.LegendreOn(g.numberOfPoints, a, b)
		if err != nil {
			return zero, err
		}
		v, err := gi.Integrate(g.computeObjectiveValue)
		if err != nil {
			return zero, err
		}
		sum = sum.Add(v)
	}
	return sum, nil
}
