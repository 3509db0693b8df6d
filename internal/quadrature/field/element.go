// Package field mirrors the quadrature integrators over an abstract
// algebraic field element type, so that the same algorithms run unchanged on
// plain reals, arbitrary-precision values or differentiable number types.
package field

import "math"

// Element is the algebraic contract the integrators require of a field
// element type. Implementations are immutable values: every operation
// returns a new element. Ordering comparisons go through Real, the real
// part of the element.
type Element[T any] interface {
	// Add returns the sum of the element and rhs.
	Add(rhs T) T

	// Subtract returns the difference of the element and rhs.
	Subtract(rhs T) T

	// Multiply returns the product of the element and rhs.
	Multiply(rhs T) T

	// Divide returns the quotient of the element and rhs.
	Divide(rhs T) T

	// MulFloat returns the element scaled by a float64 factor.
	MulFloat(v float64) T

	// DivFloat returns the element divided by a float64 divisor.
	DivFloat(v float64) T

	// Sqrt returns the square root of the element.
	Sqrt() T

	// Real returns the real part of the element, used for convergence
	// tests and ordering.
	Real() float64

	// NewInstance returns a field constant with the given real value,
	// belonging to the same field as the receiver.
	NewInstance(v float64) T
}

// Function is an integrand over field elements.
type Function[T Element[T]] func(x T) T

// Real64 is the float64-backed Element implementation. It instantiates the
// generic integrators for the plain real domain and serves as the reference
// implementation for other element types.
type Real64 float64

// Add returns r + rhs.
func (r Real64) Add(rhs Real64) Real64 { return r + rhs }

// Subtract returns r - rhs.
func (r Real64) Subtract(rhs Real64) Real64 { return r - rhs }

// Multiply returns r * rhs.
func (r Real64) Multiply(rhs Real64) Real64 { return r * rhs }

// Divide returns r / rhs.
func (r Real64) Divide(rhs Real64) Real64 { return r / rhs }

// MulFloat returns r scaled by v.
func (r Real64) MulFloat(v float64) Real64 { return r * Real64(v) }

// DivFloat returns r divided by v.
func (r Real64) DivFloat(v float64) Real64 { return r / Real64(v) }

// Sqrt returns the square root of r.
func (r Real64) Sqrt() Real64 { return Real64(math.Sqrt(float64(r))) }

// Real returns r as a float64.
func (r Real64) Real() float64 { return float64(r) }

// NewInstance returns v as a Real64.
func (r Real64) NewInstance(v float64) Real64 { return Real64(v) }
