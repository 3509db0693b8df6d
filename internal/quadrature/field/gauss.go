package field

import (
	"github.com/copyleftdev/QUADRA/internal/quadrature/gauss"
)

// GaussIntegrator applies a fixed quadrature rule over field elements. It
// shares the evaluation logic of the float64 integrator, including the
// compensated summation.
type GaussIntegrator[T Element[T]] struct {
	nodes   []T
	weights []T
}

// NewGaussIntegrator creates an integrator from parallel node and weight
// slices. Nodes must be strictly increasing by real part and match the
// weights in length.
func NewGaussIntegrator[T Element[T]](nodes, weights []T) (*GaussIntegrator[T], error) {
	if len(nodes) == 0 {
		return nil, &gauss.Error{
			Kind:    gauss.KindDimensionMismatch,
			Op:      "NewGaussIntegrator",
			Message: "rule has no nodes",
		}
	}
	if len(nodes) != len(weights) {
		return nil, &gauss.Error{
			Kind:    gauss.KindDimensionMismatch,
			Op:      "NewGaussIntegrator",
			Message: "node and weight lengths differ",
		}
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Real() <= nodes[i-1].Real() {
			return nil, &gauss.Error{
				Kind:    gauss.KindNotSorted,
				Op:      "NewGaussIntegrator",
				Message: "nodes are not strictly increasing",
			}
		}
	}
	return &GaussIntegrator[T]{
		nodes:   append([]T(nil), nodes...),
		weights: append([]T(nil), weights...),
	}, nil
}

// NumberOfPoints returns the order of the rule.
func (g *GaussIntegrator[T]) NumberOfPoints() int {
	return len(g.nodes)
}

// Integrate computes Σ wᵢ·f(xᵢ) using Kahan compensated summation.
func (g *GaussIntegrator[T]) Integrate(f func(T) (T, error)) (T, error) {
	s := g.nodes[0].NewInstance(0)
	c := g.nodes[0].NewInstance(0)
	for i := range g.nodes {
		v, err := f(g.nodes[i])
		if err != nil {
			var zero T
			return zero, err
		}
		y := g.weights[i].Multiply(v).Subtract(c)
		t := s.Add(y)
		c = t.Subtract(s).Subtract(y)
		s = t
	}
	return s, nil
}

// IntegratorFactory lifts cached float64 rules into field elements. Root
// finding always runs in float64; the resulting nodes and weights are
// converted with NewInstance. It is safe for concurrent use.
type IntegratorFactory[T Element[T]] struct {
	proto    T
	legendre *gauss.LegendreRuleFactory
	hermite  *gauss.HermiteRuleFactory
	laguerre *gauss.LaguerreRuleFactory
}

// NewIntegratorFactory creates a factory whose rules belong to the same
// field as proto.
func NewIntegratorFactory[T Element[T]](proto T) *IntegratorFactory[T] {
	return &IntegratorFactory[T]{
		proto:    proto,
		legendre: gauss.NewLegendreRuleFactory(),
		hermite:  gauss.NewHermiteRuleFactory(),
		laguerre: gauss.NewLaguerreRuleFactory(),
	}
}

// Legendre creates a Gauss-Legendre integrator of the given order on the
// natural interval [-1, 1].
func (f *IntegratorFactory[T]) Legendre(numberOfPoints int) (*GaussIntegrator[T], error) {
	rule, err := f.legendre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return f.lift(rule)
}

// LegendreOn creates a Gauss-Legendre integrator of the given order on the
// interval [a, b].
func (f *IntegratorFactory[T]) LegendreOn(numberOfPoints int, a, b T) (*GaussIntegrator[T], error) {
	rule, err := f.legendre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}

	// change of variable mapping [-1, 1] onto [a, b]
	scale := b.Subtract(a).MulFloat(0.5)
	shift := a.Add(scale)

	nodes := make([]T, len(rule.Nodes))
	weights := make([]T, len(rule.Weights))
	for i := range rule.Nodes {
		nodes[i] = scale.MulFloat(rule.Nodes[i]).Add(shift)
		weights[i] = scale.MulFloat(rule.Weights[i])
	}
	return NewGaussIntegrator(nodes, weights)
}

// Hermite creates a Gauss-Hermite integrator of the given order.
func (f *IntegratorFactory[T]) Hermite(numberOfPoints int) (*GaussIntegrator[T], error) {
	rule, err := f.hermite.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return f.lift(rule)
}

// Laguerre creates a Gauss-Laguerre integrator of the given order.
func (f *IntegratorFactory[T]) Laguerre(numberOfPoints int) (*GaussIntegrator[T], error) {
	rule, err := f.laguerre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return f.lift(rule)
}

func (f *IntegratorFactory[T]) lift(rule gauss.Rule) (*GaussIntegrator[T], error) {
	nodes := make([]T, len(rule.Nodes))
	weights := make([]T, len(rule.Weights))
	for i := range rule.Nodes {
		nodes[i] = f.proto.NewInstance(rule.Nodes[i])
		weights[i] = f.proto.NewInstance(rule.Weights[i])
	}
	return NewGaussIntegrator(nodes, weights)
}
