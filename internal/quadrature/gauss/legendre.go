package gauss

// LegendreRuleFactory computes Gauss-Legendre quadrature rules. An n-point
// rule integrates polynomials of degree up to 2n-1 exactly over [-1, 1].
type LegendreRuleFactory struct {
	baseFactory
}

// NewLegendreRuleFactory creates a Legendre rule factory.
func NewLegendreRuleFactory() *LegendreRuleFactory {
	f := &LegendreRuleFactory{}
	f.computeRule = f.compute
	return f
}

func (f *LegendreRuleFactory) compute(numberOfPoints int) (Rule, error) {
	if numberOfPoints == 1 {
		// break recursion
		return Rule{Nodes: []float64{0}, Weights: []float64{2}}, nil
	}

	// nodes are the roots of the degree-n Legendre polynomial
	p := legendre{degree: numberOfPoints}
	points, err := f.findRoots(numberOfPoints, p.ratio)
	if err != nil {
		return Rule{}, err
	}
	enforceSymmetry(points)

	// closed-form weights, computed on one half and mirrored
	weights := make([]float64, numberOfPoints)
	for i := 0; i <= numberOfPoints/2; i++ {
		c := points[i]
		pc, pmc := p.valueAndPrevious(c)
		d := float64(numberOfPoints) * (pmc - c*pc)
		weights[i] = 2 * (1 - c*c) / (d * d)
		weights[numberOfPoints-1-i] = weights[i]
	}

	return Rule{Nodes: points, Weights: weights}, nil
}

// legendre evaluates the Legendre polynomial of a fixed degree.
type legendre struct {
	degree int
}

// ratio computes Pₙ(x)/Pₙ'(x), using the recurrences
// (n+1) Pₙ₊₁(x) = (2n+1) x Pₙ(x) - n Pₙ₋₁(x) and
// Pₙ₊₁'(x) = (n+1) Pₙ(x) + x Pₙ'(x).
func (p legendre) ratio(x float64) float64 {
	pm := 1.0
	pa := x
	d := 1.0
	for n := 1; n < p.degree; n++ {
		pb := (float64(2*n+1)*x*pa - float64(n)*pm) / float64(n+1)
		db := float64(n+1)*pa + x*d
		pm = pa
		pa = pb
		d = db
	}
	return pa / d
}

// valueAndPrevious computes Pₙ(x) and Pₙ₋₁(x).
func (p legendre) valueAndPrevious(x float64) (pn, pnm1 float64) {
	pnm1 = 1
	pn = x
	for n := 1; n < p.degree; n++ {
		pb := (float64(2*n+1)*x*pn - float64(n)*pnm1) / float64(n+1)
		pnm1 = pn
		pn = pb
	}
	return pn, pnm1
}
