package quadrature

import (
	"errors"
	"math"
	"testing"
)

// integrators under test, sharing default accuracies. Built fresh per test
// since instances are stateful.
func allIntegrators(t *testing.T) map[string]Integrator {
	t.Helper()

	lg, err := NewIterativeLegendreGaussIntegrator(5)
	if err != nil {
		t.Fatalf("legendre-gauss: %v", err)
	}
	return map[string]Integrator{
		"trapezoid":      NewTrapezoidIntegrator(),
		"midpoint":       NewMidPointIntegrator(),
		"simpson":        NewSimpsonIntegrator(),
		"romberg":        NewRombergIntegrator(),
		"legendre-gauss": lg,
	}
}

func TestIntegrateSine(t *testing.T) {
	// integral of sin over [0, pi] is 2
	tolerances := map[string]float64{
		"trapezoid":      1e-4,
		"midpoint":       1e-4,
		"simpson":        1e-5,
		"romberg":        1e-9,
		"legendre-gauss": 1e-9,
	}

	for name, integrator := range allIntegrators(t) {
		t.Run(name, func(t *testing.T) {
			got, err := integrator.Integrate(100000, math.Sin, 0, math.Pi)
			if err != nil {
				t.Fatalf("Integrate: %v", err)
			}
			if math.Abs(got-2) > tolerances[name] {
				t.Errorf("expected 2 within %v, got %v", tolerances[name], got)
			}
			if integrator.Iterations() == 0 {
				t.Error("iteration count was not recorded")
			}
			if integrator.Evaluations() == 0 || integrator.Evaluations() > 100000 {
				t.Errorf("evaluation count %d outside (0, maxEval]", integrator.Evaluations())
			}
		})
	}
}

func TestRombergQuadratic(t *testing.T) {
	// Richardson extrapolation is exact for polynomials once the tableau is
	// deep enough; integral of x² over [0, 1] is 1/3
	integrator := NewRombergIntegrator()
	got, err := integrator.Integrate(1000, func(x float64) float64 { return x * x }, 0, 1)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(got-1.0/3.0) > 1e-13 {
		t.Errorf("expected 1/3, got %v", got)
	}
}

func TestMidPointArctanDerivative(t *testing.T) {
	// integral of 1/(1+x²) over [0, 1] is pi/4
	integrator := NewMidPointIntegrator()
	got, err := integrator.Integrate(100000, func(x float64) float64 {
		return 1 / (1 + x*x)
	}, 0, 1)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(got-math.Pi/4) > 1e-5 {
		t.Errorf("expected pi/4, got %v", got)
	}
}

func TestSimpsonExactForCubics(t *testing.T) {
	// with a minimal iteration count of 1 Simpson's rule returns the basic
	// two-stage estimate, which is exact for cubics
	integrator, err := NewSimpsonIntegratorWithCounts(1, SimpsonMaxIterationsCount)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	got, err := integrator.Integrate(100, func(x float64) float64 { return x * x * x }, 0, 1)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(got-0.25) > 1e-15 {
		t.Errorf("expected exactly 1/4, got %v", got)
	}
	if integrator.Evaluations() != 3 {
		t.Errorf("basic estimate should cost 3 evaluations, got %d", integrator.Evaluations())
	}
}

func TestIntegrateInvalidArguments(t *testing.T) {
	for name, integrator := range allIntegrators(t) {
		t.Run(name+" reversed interval", func(t *testing.T) {
			_, err := integrator.Integrate(1000, math.Sin, 1, 0)
			if KindOf(err) != KindInvalidInterval {
				t.Errorf("expected invalid interval, got %v", err)
			}
		})
		t.Run(name+" empty interval", func(t *testing.T) {
			_, err := integrator.Integrate(1000, math.Sin, 1, 1)
			if KindOf(err) != KindInvalidInterval {
				t.Errorf("expected invalid interval, got %v", err)
			}
		})
		t.Run(name+" nil integrand", func(t *testing.T) {
			_, err := integrator.Integrate(1000, nil, 0, 1)
			if KindOf(err) != KindNilIntegrand {
				t.Errorf("expected nil integrand, got %v", err)
			}
		})
	}
}

func TestIntegrateEvaluationBudget(t *testing.T) {
	for name, integrator := range allIntegrators(t) {
		t.Run(name, func(t *testing.T) {
			calls := 0
			_, err := integrator.Integrate(4, func(x float64) float64 {
				calls++
				return math.Exp(x)
			}, 0, 5)
			if !errors.Is(err, &Error{Kind: KindTooManyEvaluations}) {
				t.Fatalf("expected evaluation exhaustion, got %v", err)
			}
			if calls > 4 {
				t.Errorf("integrand called %d times with a budget of 4", calls)
			}
		})
	}
}

func TestIterationBudget(t *testing.T) {
	// a discontinuous integrand keeps the trapezoid estimates oscillating, so
	// the iteration cap is hit before convergence
	integrator, err := NewTrapezoidIntegratorWithAccuracy(1e-15, 1e-30, 3, 6)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	step := func(x float64) float64 {
		if x < 1.0/3.0 {
			return 0
		}
		return 1
	}
	_, err = integrator.Integrate(1000000, step, 0, 1)
	if !errors.Is(err, &Error{Kind: KindTooManyIterations}) {
		t.Fatalf("expected iteration exhaustion, got %v", err)
	}
}

func TestConstructorValidation(t *testing.T) {
	t.Run("non-positive minimal count", func(t *testing.T) {
		_, err := NewTrapezoidIntegratorWithCounts(0, 10)
		if KindOf(err) != KindInvalidIterationBounds {
			t.Errorf("expected invalid iteration bounds, got %v", err)
		}
	})
	t.Run("maximal not above minimal", func(t *testing.T) {
		_, err := NewSimpsonIntegratorWithCounts(5, 5)
		if KindOf(err) != KindInvalidIterationBounds {
			t.Errorf("expected invalid iteration bounds, got %v", err)
		}
	})
	t.Run("romberg cap", func(t *testing.T) {
		_, err := NewRombergIntegratorWithCounts(3, RombergMaxIterationsCount+1)
		if KindOf(err) != KindInvalidIterationBounds {
			t.Errorf("expected invalid iteration bounds, got %v", err)
		}
	})
	t.Run("trapezoid cap", func(t *testing.T) {
		_, err := NewTrapezoidIntegratorWithCounts(3, TrapezoidMaxIterationsCount+1)
		if KindOf(err) != KindInvalidIterationBounds {
			t.Errorf("expected invalid iteration bounds, got %v", err)
		}
	})
	t.Run("legendre-gauss order", func(t *testing.T) {
		_, err := NewIterativeLegendreGaussIntegrator(0)
		if KindOf(err) != KindInvalidOrder {
			t.Errorf("expected invalid order, got %v", err)
		}
	})
}

func TestAccessors(t *testing.T) {
	integrator, err := NewRombergIntegratorWithAccuracy(1e-8, 1e-12, 4, 20)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	if integrator.RelativeAccuracy() != 1e-8 {
		t.Errorf("relative accuracy: got %v", integrator.RelativeAccuracy())
	}
	if integrator.AbsoluteAccuracy() != 1e-12 {
		t.Errorf("absolute accuracy: got %v", integrator.AbsoluteAccuracy())
	}
	if integrator.MinimalIterationCount() != 4 {
		t.Errorf("minimal iteration count: got %d", integrator.MinimalIterationCount())
	}
	if integrator.MaximalIterationCount() != 20 {
		t.Errorf("maximal iteration count: got %d", integrator.MaximalIterationCount())
	}
}

func TestIntegratorReuse(t *testing.T) {
	// a second run on the same instance starts from fresh counters
	integrator := NewSimpsonIntegrator()

	first, err := integrator.Integrate(100000, math.Sin, 0, math.Pi)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstEvals := integrator.Evaluations()

	second, err := integrator.Integrate(100000, math.Sin, 0, math.Pi)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Errorf("runs disagree: %v vs %v", first, second)
	}
	if integrator.Evaluations() != firstEvals {
		t.Errorf("evaluation counts disagree: %d vs %d", firstEvals, integrator.Evaluations())
	}
}

func TestLegendreGaussPointCounts(t *testing.T) {
	lg, err := NewIterativeLegendreGaussIntegrator(7)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	if lg.NumberOfPoints() != 7 {
		t.Errorf("NumberOfPoints: got %d, want 7", lg.NumberOfPoints())
	}

	// a constant integrand is integrated exactly by the very first stage
	got, err := lg.Integrate(10000, func(x float64) float64 { return 3 }, -2, 4)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(got-18) > 1e-12 {
		t.Errorf("expected 18, got %v", got)
	}
}
