package quadrature

import "math"

// RombergMaxIterationsCount is the hard cap on Romberg iterations. The
// extrapolation tableau rows are sized to maximalIterationCount+1.
const RombergMaxIterationsCount = 32

// RombergIntegrator accelerates the trapezoid rule by Richardson
// extrapolation: k successive refinements remove error terms below order
// O(N^(-2k)). Simpson's rule is the special case k = 2.
type RombergIntegrator struct {
	baseIntegrator
}

// NewRombergIntegrator creates a Romberg integrator with default settings
// (max iteration count set to RombergMaxIterationsCount).
func NewRombergIntegrator() *RombergIntegrator {
	r, _ := NewRombergIntegratorWithCounts(DefaultMinimalIterationCount, RombergMaxIterationsCount)
	return r
}

// NewRombergIntegratorWithCounts creates a Romberg integrator with default
// accuracies and the given iteration counts.
func NewRombergIntegratorWithCounts(minimalIterationCount, maximalIterationCount int) (*RombergIntegrator, error) {
	return NewRombergIntegratorWithAccuracy(DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
}

// NewRombergIntegratorWithAccuracy creates a Romberg integrator with the
// given accuracies and iteration counts.
func NewRombergIntegratorWithAccuracy(relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*RombergIntegrator, error) {

	base, err := newBaseIntegrator(relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, RombergMaxIterationsCount); err != nil {
		return nil, err
	}
	return &RombergIntegrator{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (r *RombergIntegrator) Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error) {
	if err := r.setup(maxEval, f, lower, upper); err != nil {
		return 0, err
	}
	return r.doIntegrate()
}

func (r *RombergIntegrator) doIntegrate() (float64, error) {
	m := r.iterations.MaximalCount() + 1
	previousRow := make([]float64, m)
	currentRow := make([]float64, m)

	var stages trapezoidStages
	t0, err := stages.stage(&r.baseIntegrator, 0)
	if err != nil {
		return 0, err
	}
	currentRow[0] = t0
	if err := r.iterations.Increment(); err != nil {
		return 0, err
	}
	olds := currentRow[0]

	for {
		i := r.iterations.Count()

		// switch rows
		previousRow, currentRow = currentRow, previousRow

		ti, err := stages.stage(&r.baseIntegrator, i)
		if err != nil {
			return 0, err
		}
		currentRow[0] = ti
		if err := r.iterations.Increment(); err != nil {
			return 0, err
		}
		for j := 1; j <= i; j++ {
			// Richardson extrapolation coefficient
			rc := float64(int64(1)<<(2*uint(j))) - 1
			tIJm1 := currentRow[j-1]
			currentRow[j] = tIJm1 + (tIJm1-previousRow[j-1])/rc
		}
		s := currentRow[i]
		if i >= r.minimalIterationCount {
			delta := math.Abs(s - olds)
			rLimit := r.relativeAccuracy * (math.Abs(olds) + math.Abs(s)) * 0.5
			if delta <= rLimit || delta <= r.absoluteAccuracy {
				return s, nil
			}
		}
		olds = s
	}
}
