package gauss

import "math"

// HermiteRuleFactory computes Gauss-Hermite quadrature rules, for improper
// integrals of f(x)·e^(-x²) over the whole real line.
//
// The coefficients of the standard Hermite polynomials grow very rapidly,
// so each polynomial is normalized with respect to the underlying scalar
// product to avoid overflow.
type HermiteRuleFactory struct {
	baseFactory
}

// NewHermiteRuleFactory creates a Hermite rule factory.
func NewHermiteRuleFactory() *HermiteRuleFactory {
	f := &HermiteRuleFactory{}
	f.computeRule = f.compute
	return f
}

func (f *HermiteRuleFactory) compute(numberOfPoints int) (Rule, error) {
	sqrtPi := math.Sqrt(math.Pi)

	if numberOfPoints == 1 {
		// break recursion
		return Rule{Nodes: []float64{0}, Weights: []float64{sqrtPi}}, nil
	}

	// nodes are the roots of the degree-n Hermite polynomial
	h := hermite{degree: numberOfPoints}
	points, err := f.findRoots(numberOfPoints, h.ratio)
	if err != nil {
		return Rule{}, err
	}
	enforceSymmetry(points)

	// closed-form weights, computed on one half and mirrored
	weights := make([]float64, numberOfPoints)
	sqrt2n := math.Sqrt(2 * float64(numberOfPoints))
	for i := 0; i <= numberOfPoints/2; i++ {
		c := points[i]
		_, hmc := h.pair(c)
		d := sqrt2n * hmc
		weights[i] = 2 / (d * d)
		weights[numberOfPoints-1-i] = weights[i]
	}

	return Rule{Nodes: points, Weights: weights}, nil
}

// hermite evaluates the normalized Hermite polynomial of a fixed degree.
// The normalization is hₙ(x) = Hₙ(x)/√(2ⁿ n! √π), which turns the usual
// recurrence into
//
//	h₀(x) = π^(-1/4)
//	h₁(x) = √2 π^(-1/4) x
//	hₙ₊₁(x) = [√2 x hₙ(x) - √n hₙ₋₁(x)]/√(n+1)
//
// with derivative hₙ'(x) = √(2n) hₙ₋₁(x).
type hermite struct {
	degree int
}

// pair computes hₙ(x) and hₙ₋₁(x) for n = degree.
func (h hermite) pair(x float64) (hn, hnm1 float64) {
	hm := 1 / math.Sqrt(math.Sqrt(math.Pi))
	ha := math.Sqrt2 * hm * x
	for j := 1; j < h.degree; j++ {
		hp := (math.Sqrt2*x*ha - math.Sqrt(float64(j))*hm) / math.Sqrt(float64(j+1))
		hm = ha
		ha = hp
	}
	return ha, hm
}

// ratio computes Hₙ(x)/Hₙ'(x) through the normalized polynomials.
func (h hermite) ratio(x float64) float64 {
	hn, hnm1 := h.pair(x)
	return hn / (math.Sqrt(2*float64(h.degree)) * hnm1)
}
