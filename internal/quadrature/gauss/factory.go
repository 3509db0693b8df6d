package gauss

import "gonum.org/v1/gonum/floats"

// IntegratorFactory creates integrators for the supported polynomial
// families, sharing one cached rule factory per family. It is safe for
// concurrent use.
type IntegratorFactory struct {
	legendre *LegendreRuleFactory
	hermite  *HermiteRuleFactory
	laguerre *LaguerreRuleFactory
}

// NewIntegratorFactory creates a factory with empty rule caches.
func NewIntegratorFactory() *IntegratorFactory {
	return &IntegratorFactory{
		legendre: NewLegendreRuleFactory(),
		hermite:  NewHermiteRuleFactory(),
		laguerre: NewLaguerreRuleFactory(),
	}
}

// Legendre creates a Gauss-Legendre integrator of the given order on the
// natural interval [-1, 1].
func (f *IntegratorFactory) Legendre(numberOfPoints int) (*Integrator, error) {
	rule, err := f.legendre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return NewIntegrator(rule)
}

// LegendreOn creates a Gauss-Legendre integrator of the given order on the
// interval [a, b].
func (f *IntegratorFactory) LegendreOn(numberOfPoints int, a, b float64) (*Integrator, error) {
	rule, err := f.legendre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return NewIntegrator(transform(rule, a, b))
}

// Hermite creates a Gauss-Hermite integrator of the given order. The
// computed value is the improper integral of f(x)·e^(-x²) over the whole
// real line.
func (f *IntegratorFactory) Hermite(numberOfPoints int) (*Integrator, error) {
	rule, err := f.hermite.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return NewIntegrator(rule)
}

// Laguerre creates a Gauss-Laguerre integrator of the given order. The
// computed value is the improper integral of f(x)·e^(-x) over [0, +inf).
func (f *IntegratorFactory) Laguerre(numberOfPoints int) (*Integrator, error) {
	rule, err := f.laguerre.GetRule(numberOfPoints)
	if err != nil {
		return nil, err
	}
	return NewIntegrator(rule)
}

// LegendreRule returns the raw Legendre rule of the given order.
func (f *IntegratorFactory) LegendreRule(numberOfPoints int) (Rule, error) {
	return f.legendre.GetRule(numberOfPoints)
}

// HermiteRule returns the raw Hermite rule of the given order.
func (f *IntegratorFactory) HermiteRule(numberOfPoints int) (Rule, error) {
	return f.hermite.GetRule(numberOfPoints)
}

// LaguerreRule returns the raw Laguerre rule of the given order.
func (f *IntegratorFactory) LaguerreRule(numberOfPoints int) (Rule, error) {
	return f.laguerre.GetRule(numberOfPoints)
}

// transform performs the change of variable mapping the natural interval
// [-1, 1] onto [a, b]. The rule is assumed to be a fresh copy and is scaled
// in place.
func transform(rule Rule, a, b float64) Rule {
	scale := 0.5 * (b - a)
	shift := a + scale

	floats.Scale(scale, rule.Nodes)
	floats.AddConst(shift, rule.Nodes)
	floats.Scale(scale, rule.Weights)
	return rule
}
