// Package quadrature implements iterative numerical integration of real
// univariate functions: trapezoid, midpoint, Simpson, Romberg and iterative
// Legendre-Gauss algorithms sharing a common convergence framework.
package quadrature

import "math"

// Default accuracy and iteration settings shared by all integrators.
const (
	// DefaultRelativeAccuracy is the default relative accuracy of results.
	DefaultRelativeAccuracy = 1e-6

	// DefaultAbsoluteAccuracy is the default absolute accuracy of results.
	DefaultAbsoluteAccuracy = 1e-15

	// DefaultMinimalIterationCount is the default minimum number of
	// refinement iterations before convergence is even tested. A minimal
	// count avoids false early convergence when the first sample points
	// happen to fall on zeroes of the integrand.
	DefaultMinimalIterationCount = 3

	// DefaultMaximalIterationCount is the default maximum number of
	// refinement iterations.
	DefaultMaximalIterationCount = math.MaxInt32
)

// UnivariateFunction is the integrand: a real function of one real variable.
type UnivariateFunction func(x float64) float64

// Integrator is the interface shared by all univariate integrators.
//
// An Integrator instance is stateful between setup and the end of a run and
// is therefore not safe for concurrent use. Each goroutine must own its own
// instance, or calls to Integrate must be serialized externally.
type Integrator interface {
	// Integrate computes the definite integral of f between lower and
	// upper, using at most maxEval evaluations of f.
	Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error)

	// RelativeAccuracy returns the configured relative accuracy.
	RelativeAccuracy() float64

	// AbsoluteAccuracy returns the configured absolute accuracy.
	AbsoluteAccuracy() float64

	// MinimalIterationCount returns the configured minimum iteration count.
	MinimalIterationCount() int

	// MaximalIterationCount returns the configured maximum iteration count.
	MaximalIterationCount() int

	// Iterations returns the number of refinement iterations performed by
	// the last run.
	Iterations() int

	// Evaluations returns the number of integrand evaluations performed by
	// the last run.
	Evaluations() int
}
