package server

import (
	"math"
	"sort"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
)

// integrands is the registry of functions the service can evaluate. The
// server never executes caller-supplied code; requests pick a function by
// name.
var integrands = map[string]quadrature.UnivariateFunction{
	"sin": math.Sin,
	"cos": math.Cos,
	"exp": math.Exp,
	"identity": func(x float64) float64 {
		return x
	},
	"square": func(x float64) float64 {
		return x * x
	},
	"cube": func(x float64) float64 {
		return x * x * x
	},
	// 1/(1+x²), the arctangent derivative
	"inv1px2": func(x float64) float64 {
		return 1 / (1 + x*x)
	},
	// Runge's function, a classic stress test for interpolatory rules
	"runge": func(x float64) float64 {
		return 1 / (1 + 25*x*x)
	},
	// e^(-x²), the Gauss-Hermite weight
	"gaussian": func(x float64) float64 {
		return math.Exp(-x * x)
	},
}

// PolynomialIntegrand builds an evaluator for the polynomial with the given
// coefficients, lowest degree first, using Horner's scheme.
func PolynomialIntegrand(coefficients []float64) quadrature.UnivariateFunction {
	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)
	return func(x float64) float64 {
		acc := 0.0
		for i := len(coeffs) - 1; i >= 0; i-- {
			acc = acc*x + coeffs[i]
		}
		return acc
	}
}

// LookupIntegrand returns the named integrand from the registry.
func LookupIntegrand(name string) (quadrature.UnivariateFunction, bool) {
	f, ok := integrands[name]
	return f, ok
}

// IntegrandNames returns the registry keys in sorted order.
func IntegrandNames() []string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
