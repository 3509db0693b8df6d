package gauss

// LaguerreRuleFactory computes Gauss-Laguerre quadrature rules, for improper
// integrals of f(x)·e^(-x) over [0, +inf).
type LaguerreRuleFactory struct {
	baseFactory
}

// NewLaguerreRuleFactory creates a Laguerre rule factory.
func NewLaguerreRuleFactory() *LaguerreRuleFactory {
	f := &LaguerreRuleFactory{}
	f.computeRule = f.compute
	return f
}

func (f *LaguerreRuleFactory) compute(numberOfPoints int) (Rule, error) {
	if numberOfPoints == 1 {
		// break recursion
		return Rule{Nodes: []float64{1}, Weights: []float64{1}}, nil
	}

	// nodes are the roots of the degree-n Laguerre polynomial; roots of
	// Laguerre polynomials are not symmetric about 0
	points, err := f.findRoots(numberOfPoints, laguerre{degree: numberOfPoints}.ratio)
	if err != nil {
		return Rule{}, err
	}

	// closed-form weights: wᵢ = xᵢ/[(n+1) Lₙ₊₁(xᵢ)]²
	weights := make([]float64, numberOfPoints)
	n1 := float64(numberOfPoints + 1)
	ln1 := laguerre{degree: numberOfPoints + 1}
	for i := 0; i < numberOfPoints; i++ {
		val := n1 * ln1.value(points[i])
		weights[i] = points[i] / (val * val)
	}

	return Rule{Nodes: points, Weights: weights}, nil
}

// laguerre evaluates the Laguerre polynomial of a fixed degree.
type laguerre struct {
	degree int
}

// value computes Lₙ(x) by the recurrence
// (n+1) Lₙ₊₁(x) = (2n+1-x) Lₙ(x) - n Lₙ₋₁(x).
func (l laguerre) value(x float64) float64 {
	lm := 1.0
	la := 1 - x
	for n := 1; n < l.degree; n++ {
		lp := ((float64(2*n+1)-x)*la - float64(n)*lm) / float64(n+1)
		lm = la
		la = lp
	}
	return la
}

// ratio computes Lₙ(x)/Lₙ'(x), using x Lₙ'(x) = n [Lₙ(x) - Lₙ₋₁(x)].
func (l laguerre) ratio(x float64) float64 {
	lm := 1.0
	la := 1 - x
	for n := 1; n < l.degree; n++ {
		lp := ((float64(2*n+1)-x)*la - float64(n)*lm) / float64(n+1)
		lm = la
		la = lp
	}
	d := float64(l.degree) * (la - lm) / x
	return la / d
}
