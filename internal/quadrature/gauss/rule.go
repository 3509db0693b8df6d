package gauss

import (
	"math"
	"sort"
	"sync"
)

// MaxOrder is the largest rule order a factory will compute.
const MaxOrder = 1000

// maxRootFindingIterations bounds the Aberth iteration in findRoots.
const maxRootFindingIterations = 1000

// Rule holds the nodes and weights of a quadrature rule. Nodes are strictly
// increasing and both slices have the same length.
type Rule struct {
	Nodes   []float64
	Weights []float64
}

// clone returns a deep copy of the rule, so cached storage is never handed
// to callers.
func (r Rule) clone() Rule {
	return Rule{
		Nodes:   append([]float64(nil), r.Nodes...),
		Weights: append([]float64(nil), r.Weights...),
	}
}

// RuleFactory computes quadrature rules of a given order.
//
// Factories cache computed rules and are safe for concurrent use.
type RuleFactory interface {
	// GetRule returns the rule of the given order. Callers receive a copy
	// and may mutate it freely.
	GetRule(numberOfPoints int) (Rule, error)
}

// computeFunc computes the rule of a given order from scratch; each
// polynomial family supplies its own.
type computeFunc func(numberOfPoints int) (Rule, error)

// baseFactory provides the cache and root-finding machinery shared by all
// rule factories. The cache is append-only and grows monotonically; a miss
// triggers a potentially recursive computation (order n seeds its root
// guesses from order n-1), so the whole check-compute-store sequence runs
// under the mutex. The mutex is held by a single goroutine across the
// recursion, hence computeRule must call getRuleLocked, never GetRule.
type baseFactory struct {
	mu          sync.Mutex
	rules       map[int]Rule
	computeRule computeFunc
}

// GetRule returns the rule with the given number of points, computing and
// caching it on first request.
func (f *baseFactory) GetRule(numberOfPoints int) (Rule, error) {
	if numberOfPoints <= 0 {
		return Rule{}, newError(KindInvalidOrder, "GetRule",
			"number of points %d is not strictly positive", numberOfPoints)
	}
	if numberOfPoints > MaxOrder {
		return Rule{}, newError(KindInvalidOrder, "GetRule",
			"number of points %d exceeds maximal order %d", numberOfPoints, MaxOrder)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	rule, err := f.getRuleLocked(numberOfPoints)
	if err != nil {
		return Rule{}, err
	}
	return rule.clone(), nil
}

// getRuleLocked returns the cached rule, computing it on a miss. The caller
// must hold f.mu.
func (f *baseFactory) getRuleLocked(numberOfPoints int) (Rule, error) {
	if f.rules == nil {
		f.rules = make(map[int]Rule)
	}
	if rule, ok := f.rules[numberOfPoints]; ok {
		return rule, nil
	}
	rule, err := f.computeRule(numberOfPoints)
	if err != nil {
		return Rule{}, err
	}
	f.rules[numberOfPoints] = rule
	return rule, nil
}

// findRoots computes the n roots of the associated orthogonal polynomial
// using the Aberth method. ratio evaluates Pₙ(x)/Pₙ'(x). Guess points are
// fixed for degrees 1 and 2; for larger degrees they are derived from the
// roots of rule n-1 (the two extreme roots, plus the midpoints between
// consecutive roots). The caller must hold the factory mutex since the
// previous rule may be computed recursively.
func (f *baseFactory) findRoots(n int, ratio func(float64) float64) ([]float64, error) {
	roots := make([]float64, n)

	// set up initial guess
	switch {
	case n == 1:
		roots[0] = 0
	case n == 2:
		roots[0] = -1
		roots[1] = +1
	default:
		// get roots from previous rule; if it has not been computed yet
		// this triggers a recursive call
		previous, err := f.getRuleLocked(n - 1)
		if err != nil {
			return nil, err
		}
		previousPoints := previous.Nodes

		roots[0] = previousPoints[0]
		for i := 1; i < n-1; i++ {
			roots[i] = 0.5 * (previousPoints[i-1] + previousPoints[i])
		}
		roots[n-1] = previousPoints[n-2]
	}

	// refine all roots simultaneously
	ratios := make([]float64, n)
	offsets := make([]float64, n)
	for iter := 0; ; iter++ {
		if iter >= maxRootFindingIterations {
			return nil, newError(KindNonConvergence, "findRoots",
				"root finding did not converge within %d iterations", maxRootFindingIterations)
		}

		for i := 0; i < n; i++ {
			ratios[i] = ratio(roots[i])
		}

		// compute all offsets before applying any of them, to preserve
		// the simultaneity of the Aberth update
		maxOffset := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if j != i {
					sum += 1 / (roots[i] - roots[j])
				}
			}
			offsets[i] = ratios[i] / (1 - ratios[i]*sum)
			maxOffset = math.Max(maxOffset, math.Abs(offsets[i]))
		}
		for i := 0; i < n; i++ {
			roots[i] -= offsets[i]
		}

		// tolerance is 1 ulp of the largest root
		tol := 0.0
		for _, r := range roots {
			tol = math.Max(tol, ulp(r))
		}
		if maxOffset <= tol {
			break
		}
	}

	sort.Float64s(roots)
	return roots, nil
}

// enforceSymmetry forces the numerically computed roots of an even or odd
// polynomial to be exact negatives of each other, and the center root to be
// exactly 0 when n is odd. Roots must already be sorted ascending.
func enforceSymmetry(roots []float64) {
	n := len(roots)

	for i := 0; i < n/2; i++ {
		idx := n - i - 1
		c := 0.5 * (roots[i] - roots[idx])
		roots[i] = +c
		roots[idx] = -c
	}

	// if n is odd, 0 is a root
	if n%2 != 0 {
		roots[n/2] = 0
	}
}

// ulp returns the distance between x and the next representable float64
// away from zero.
func ulp(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.Inf(1)
	}
	ax := math.Abs(x)
	return math.Nextafter(ax, math.Inf(1)) - ax
}
