package gauss

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// monomialIntegralLegendre is the exact value of the integral of x^k over
// [-1, 1].
func monomialIntegralLegendre(k int) float64 {
	if k%2 != 0 {
		return 0
	}
	return 2 / float64(k+1)
}

func TestLegendreRuleKnownNodes(t *testing.T) {
	tests := []struct {
		name    string
		order   int
		nodes   []float64
		weights []float64
	}{
		{
			name:    "order 1",
			order:   1,
			nodes:   []float64{0},
			weights: []float64{2},
		},
		{
			name:    "order 2",
			order:   2,
			nodes:   []float64{-1 / math.Sqrt(3), 1 / math.Sqrt(3)},
			weights: []float64{1, 1},
		},
		{
			name:    "order 3",
			order:   3,
			nodes:   []float64{-math.Sqrt(0.6), 0, math.Sqrt(0.6)},
			weights: []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0},
		},
	}

	factory := NewLegendreRuleFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := factory.GetRule(tt.order)
			if err != nil {
				t.Fatalf("GetRule(%d): %v", tt.order, err)
			}
			if len(rule.Nodes) != tt.order || len(rule.Weights) != tt.order {
				t.Fatalf("rule has %d nodes and %d weights, want %d",
					len(rule.Nodes), len(rule.Weights), tt.order)
			}
			if !floats.EqualApprox(rule.Nodes, tt.nodes, 1e-12) {
				t.Errorf("nodes: expected %v, got %v", tt.nodes, rule.Nodes)
			}
			if !floats.EqualApprox(rule.Weights, tt.weights, 1e-12) {
				t.Errorf("weights: expected %v, got %v", tt.weights, rule.Weights)
			}
		})
	}
}

func TestLegendreRuleExactness(t *testing.T) {
	// an order-n rule integrates polynomials up to degree 2n-1 exactly
	factory := NewLegendreRuleFactory()
	for order := 1; order <= 10; order++ {
		rule, err := factory.GetRule(order)
		if err != nil {
			t.Fatalf("GetRule(%d): %v", order, err)
		}
		for k := 0; k <= 2*order-1; k++ {
			sum := 0.0
			for i := range rule.Nodes {
				sum += rule.Weights[i] * math.Pow(rule.Nodes[i], float64(k))
			}
			if math.Abs(sum-monomialIntegralLegendre(k)) > 1e-12 {
				t.Errorf("order %d, monomial x^%d: expected %v, got %v",
					order, k, monomialIntegralLegendre(k), sum)
			}
		}
	}
}

func TestLegendreRuleSymmetry(t *testing.T) {
	factory := NewLegendreRuleFactory()
	for _, order := range []int{2, 3, 7, 12, 25} {
		rule, err := factory.GetRule(order)
		if err != nil {
			t.Fatalf("GetRule(%d): %v", order, err)
		}
		for i := 0; i < order/2; i++ {
			idx := order - i - 1
			if rule.Nodes[i] != -rule.Nodes[idx] {
				t.Errorf("order %d: node %d (%v) is not the exact negative of node %d (%v)",
					order, i, rule.Nodes[i], idx, rule.Nodes[idx])
			}
			if rule.Weights[i] != rule.Weights[idx] {
				t.Errorf("order %d: weight %d (%v) differs from weight %d (%v)",
					order, i, rule.Weights[i], idx, rule.Weights[idx])
			}
		}
		if order%2 != 0 && rule.Nodes[order/2] != 0 {
			t.Errorf("order %d: center node is %v, want exactly 0", order, rule.Nodes[order/2])
		}
	}
}

func TestHermiteRule(t *testing.T) {
	factory := NewHermiteRuleFactory()

	// order 1 is the hardcoded base case
	rule, err := factory.GetRule(1)
	if err != nil {
		t.Fatalf("GetRule(1): %v", err)
	}
	if rule.Nodes[0] != 0 {
		t.Errorf("order 1 node: expected 0, got %v", rule.Nodes[0])
	}
	if math.Abs(rule.Weights[0]-math.Sqrt(math.Pi)) > 1e-15 {
		t.Errorf("order 1 weight: expected sqrt(pi), got %v", rule.Weights[0])
	}

	// the weights sum to the integral of e^(-x²), i.e. sqrt(pi)
	for _, order := range []int{2, 3, 5, 10} {
		rule, err := factory.GetRule(order)
		if err != nil {
			t.Fatalf("GetRule(%d): %v", order, err)
		}
		for _, w := range rule.Weights {
			if w <= 0 {
				t.Errorf("order %d: non-positive weight %v", order, w)
			}
		}
		if sum := floats.Sum(rule.Weights); math.Abs(sum-math.Sqrt(math.Pi)) > 1e-12 {
			t.Errorf("order %d: weights sum to %v, want sqrt(pi)", order, sum)
		}

		// integral of x²·e^(-x²) is sqrt(pi)/2
		second := 0.0
		for i := range rule.Nodes {
			second += rule.Weights[i] * rule.Nodes[i] * rule.Nodes[i]
		}
		if math.Abs(second-math.Sqrt(math.Pi)/2) > 1e-12 {
			t.Errorf("order %d: second moment %v, want sqrt(pi)/2", order, second)
		}
	}
}

func TestLaguerreRule(t *testing.T) {
	factory := NewLaguerreRuleFactory()

	// order 1 is the hardcoded base case
	rule, err := factory.GetRule(1)
	if err != nil {
		t.Fatalf("GetRule(1): %v", err)
	}
	if rule.Nodes[0] != 1 || rule.Weights[0] != 1 {
		t.Errorf("order 1 rule: expected node 1 weight 1, got node %v weight %v",
			rule.Nodes[0], rule.Weights[0])
	}

	// moments of e^(-x) over [0, inf): integral of x^k·e^(-x) = k!
	for _, order := range []int{2, 3, 5, 8} {
		rule, err := factory.GetRule(order)
		if err != nil {
			t.Fatalf("GetRule(%d): %v", order, err)
		}
		factorial := 1.0
		for k := 0; k <= 2*order-1; k++ {
			if k > 0 {
				factorial *= float64(k)
			}
			sum := 0.0
			for i := range rule.Nodes {
				sum += rule.Weights[i] * math.Pow(rule.Nodes[i], float64(k))
			}
			if math.Abs(sum-factorial) > 1e-9*factorial {
				t.Errorf("order %d, moment %d: expected %v, got %v", order, k, factorial, sum)
			}
		}
		for i, x := range rule.Nodes {
			if x <= 0 {
				t.Errorf("order %d: node %d is %v, want positive", order, i, x)
			}
		}
	}
}

func TestGetRuleReturnsCopies(t *testing.T) {
	factory := NewLegendreRuleFactory()

	first, err := factory.GetRule(4)
	if err != nil {
		t.Fatalf("GetRule(4): %v", err)
	}

	// mutating the returned rule must not corrupt the cache
	first.Nodes[0] = 999
	first.Weights[0] = 999

	second, err := factory.GetRule(4)
	if err != nil {
		t.Fatalf("GetRule(4): %v", err)
	}
	if second.Nodes[0] == 999 || second.Weights[0] == 999 {
		t.Error("cache was corrupted by mutating a returned rule")
	}
}

func TestGetRuleOrderBounds(t *testing.T) {
	factories := map[string]RuleFactory{
		"legendre": NewLegendreRuleFactory(),
		"hermite":  NewHermiteRuleFactory(),
		"laguerre": NewLaguerreRuleFactory(),
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			for _, order := range []int{-1, 0, MaxOrder + 1} {
				_, err := factory.GetRule(order)
				if err == nil {
					t.Errorf("GetRule(%d): expected error, got nil", order)
				}
				if KindOf(err) != KindInvalidOrder {
					t.Errorf("GetRule(%d): expected invalid order kind, got %v", order, err)
				}
			}
		})
	}
}

func TestFindRootsConcurrent(t *testing.T) {
	// hammer one factory from several goroutines; every caller must see the
	// same rule
	factory := NewLegendreRuleFactory()
	reference, err := factory.GetRule(15)
	if err != nil {
		t.Fatalf("GetRule(15): %v", err)
	}

	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func() {
			rule, err := factory.GetRule(15)
			if err != nil {
				done <- err
				return
			}
			for i := range rule.Nodes {
				if rule.Nodes[i] != reference.Nodes[i] || rule.Weights[i] != reference.Weights[i] {
					done <- errMismatch
					return
				}
			}
			done <- nil
		}()
	}
	for g := 0; g < 8; g++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent GetRule: %v", err)
		}
	}
}

var errMismatch = newError(KindNonConvergence, "test", "rules differ between goroutines")
