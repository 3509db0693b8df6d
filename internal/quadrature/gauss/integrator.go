package gauss

// Integrand is an integrand evaluator. Evaluations may fail, e.g. when a
// surrounding iterative integrator exhausts its evaluation budget.
type Integrand func(x float64) (float64, error)

// Integrator applies a fixed quadrature rule: it approximates the integral
// of a function by the weighted sum of its values at the rule nodes.
type Integrator struct {
	nodes   []float64
	weights []float64
}

// NewIntegrator creates an integrator from the given rule. The rule nodes
// must be strictly increasing and match the weights in length.
func NewIntegrator(rule Rule) (*Integrator, error) {
	if len(rule.Nodes) != len(rule.Weights) {
		return nil, newError(KindDimensionMismatch, "NewIntegrator",
			"%d nodes but %d weights", len(rule.Nodes), len(rule.Weights))
	}
	for i := 1; i < len(rule.Nodes); i++ {
		if rule.Nodes[i] <= rule.Nodes[i-1] {
			return nil, newError(KindNotSorted, "NewIntegrator",
				"nodes are not strictly increasing at index %d: %v after %v",
				i, rule.Nodes[i], rule.Nodes[i-1])
		}
	}

	rule = rule.clone()
	return &Integrator{nodes: rule.Nodes, weights: rule.Weights}, nil
}

// NumberOfPoints returns the order of the rule.
func (g *Integrator) NumberOfPoints() int {
	return len(g.nodes)
}

// Integrate computes Σ wᵢ·f(xᵢ) using Kahan compensated summation, so that
// rounding errors do not accumulate across rules with many terms.
func (g *Integrator) Integrate(f Integrand) (float64, error) {
	s := 0.0
	c := 0.0
	for i := range g.nodes {
		v, err := f(g.nodes[i])
		if err != nil {
			return 0, err
		}
		y := g.weights[i]*v - c
		t := s + y
		c = (t - s) - y
		s = t
	}
	return s, nil
}
