package quadrature

import (
	"math"

	"github.com/copyleftdev/QUADRA/internal/quadrature/gauss"
)

// IterativeLegendreGaussIntegrator divides the integration interval into
// equally-sized sub-intervals and performs a fixed-order Legendre-Gauss
// quadrature on each of them, growing the number of sub-intervals until two
// successive estimates agree.
//
// Because of its non-adaptive sampling, this algorithm can converge to a
// wrong value when the function is significantly different from zero only
// toward the ends of the interval; change-of-variable tricks for estimating
// integrals over infinite intervals should be avoided with it.
type IterativeLegendreGaussIntegrator struct {
	baseIntegrator

	// factory that computes the points and weights
	factory *gauss.IntegratorFactory

	// number of integration points per sub-interval
	numberOfPoints int
}

// NewIterativeLegendreGaussIntegrator creates an integrator with n points
// per sub-interval and default accuracies and iteration counts.
func NewIterativeLegendreGaussIntegrator(n int) (*IterativeLegendreGaussIntegrator, error) {
	return NewIterativeLegendreGaussIntegratorWithAccuracy(n,
		DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		DefaultMinimalIterationCount, DefaultMaximalIterationCount)
}

// NewIterativeLegendreGaussIntegratorWithCounts creates an integrator with n
// points per sub-interval, default accuracies and the given iteration counts.
func NewIterativeLegendreGaussIntegratorWithCounts(n, minimalIterationCount, maximalIterationCount int) (*IterativeLegendreGaussIntegrator, error) {
	return NewIterativeLegendreGaussIntegratorWithAccuracy(n,
		DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
}

// NewIterativeLegendreGaussIntegratorWithAccuracy creates an integrator with
// n points per sub-interval and the given accuracies and iteration counts.
func NewIterativeLegendreGaussIntegratorWithAccuracy(n int,
	relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*IterativeLegendreGaussIntegrator, error) {

	if n <= 0 {
		err := newError(KindInvalidOrder, "number of points %d is not strictly positive", n)
		err.Value = float64(n)
		return nil, err
	}
	base, err := newBaseIntegrator(relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	return &IterativeLegendreGaussIntegrator{
		baseIntegrator: base,
		factory:        gauss.NewIntegratorFactory(),
		numberOfPoints: n,
	}, nil
}

// NumberOfPoints returns the number of integration points per sub-interval.
func (g *IterativeLegendreGaussIntegrator) NumberOfPoints() int {
	return g.numberOfPoints
}

// Integrate computes the definite integral of f between lower and upper.
func (g *IterativeLegendreGaussIntegrator) Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error) {
	if err := g.setup(maxEval, f, lower, upper); err != nil {
		return 0, err
	}
	return g.doIntegrate()
}

func (g *IterativeLegendreGaussIntegrator) doIntegrate() (float64, error) {
	// compute first estimate with a single step
	oldt, err := g.stage(1)
	if err != nil {
		return 0, err
	}

	n := 2
	for {
		// improve integral with a larger number of steps
		t, err := g.stage(n)
		if err != nil {
			return 0, err
		}

		// estimate the error
		delta := math.Abs(t - oldt)
		limit := math.Max(g.absoluteAccuracy,
			0.5*g.relativeAccuracy*(math.Abs(oldt)+math.Abs(t)))

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
			return 0, err
		}
	}
}

// stage computes the estimate obtained by splitting the interval into n
// equal sub-intervals and applying the fixed-order rule on each of them.
func (g *IterativeLegendreGaussIntegrator) stage(n int) (float64, error) {
	min := g.min
	max := g.max
	step := (max - min) / float64(n)

	sum := 0.0
	for i := 0; i < n; i++ {
		// integrate over the sub-interval [a, b]
		a := min + float64(i)*step
		b := a + step
		gi, err := g.factory.LegendreOn(g.numberOfPoints, a, b)
		if err != nil {
			return 0, err
		}
		v, err := gi.Integrate(g.computeObjectiveValue)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}
