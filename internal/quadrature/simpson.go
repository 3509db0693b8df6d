package quadrature

import "math"

// SimpsonMaxIterationsCount is the hard cap on Simpson iterations.
const SimpsonMaxIterationsCount = 64

// SimpsonIntegrator integrates with Simpson's rule, obtained by combining
// two successive trapezoid stages.
type SimpsonIntegrator struct {
	baseIntegrator
}

// NewSimpsonIntegrator creates a Simpson integrator with default settings
// (max iteration count set to SimpsonMaxIterationsCount).
func NewSimpsonIntegrator() *SimpsonIntegrator {
	s, _ := NewSimpsonIntegratorWithCounts(DefaultMinimalIterationCount, SimpsonMaxIterationsCount)
	return s
}

// NewSimpsonIntegratorWithCounts creates a Simpson integrator with default
// accuracies and the given iteration counts.
func NewSimpsonIntegratorWithCounts(minimalIterationCount, maximalIterationCount int) (*SimpsonIntegrator, error) {
	return NewSimpsonIntegratorWithAccuracy(DefaultRelativeAccuracy, DefaultAbsoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
}

// NewSimpsonIntegratorWithAccuracy creates a Simpson integrator with the
// given accuracies and iteration counts.
func NewSimpsonIntegratorWithAccuracy(relativeAccuracy, absoluteAccuracy float64,
	minimalIterationCount, maximalIterationCount int) (*SimpsonIntegrator, error) {

	base, err := newBaseIntegrator(relativeAccuracy, absoluteAccuracy,
		minimalIterationCount, maximalIterationCount)
	if err != nil {
		return nil, err
	}
	if err := checkIterationCap(maximalIterationCount, SimpsonMaxIterationsCount); err != nil {
		return nil, err
	}
	return &SimpsonIntegrator{baseIntegrator: base}, nil
}

// Integrate computes the definite integral of f between lower and upper.
func (s *SimpsonIntegrator) Integrate(maxEval int, f UnivariateFunction, lower, upper float64) (float64, error) {
	if err := s.setup(maxEval, f, lower, upper); err != nil {
		return 0, err
	}
	return s.doIntegrate()
}

func (s *SimpsonIntegrator) doIntegrate() (float64, error) {
	var stages trapezoidStages

	if s.minimalIterationCount == 1 {
		t0, err := stages.stage(&s.baseIntegrator, 0)
		if err != nil {
			return 0, err
		}
		t1, err := stages.stage(&s.baseIntegrator, 1)
		if err != nil {
			return 0, err
		}
		if err := s.iterations.Increment(); err != nil {
			return 0, err
		}
		return (4*t1 - t0) / 3.0, nil
	}

	// Simpson's rule requires at least two trapezoid stages.
	olds := 0.0
	oldt, err := stages.stage(&s.baseIntegrator, 0)
	if err != nil {
		return 0, err
	}
	for {
		if err := s.iterations.Increment(); err != nil {
			return 0, err
		}
		i := s.iterations.Count()
		t, err := stages.stage(&s.baseIntegrator, i)
		if err != nil {
			return 0, err
		}
		sn := (4*t - oldt) / 3.0
		if i >= s.minimalIterationCount {
			delta := math.Abs(sn - olds)
			rLimit := s.relativeAccuracy * (math.Abs(olds) + math.Abs(sn)) * 0.5
			if delta <= rLimit || delta <= s.absoluteAccuracy {
				return sn, nil
			}
		}
		olds = sn
		oldt = t
	}
}
