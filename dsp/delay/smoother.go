package delay

import (
	"fmt"
	"math"
)

// Smoother is a one-pole lowpass that glides a control value toward its
// target, so delay-time changes sweep the read head instead of jumping it.
type Smoother struct {
	current float64
	target  float64
	coeff   float64
	primed  bool
}

// NewSmoother returns a smoother whose time constant is tau seconds.
func NewSmoother(tau, sampleRate float64) (*Smoother, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("smoother sample rate must be > 0: %f", sampleRate)
	}
	if tau < 0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("smoother time constant must be >= 0: %f", tau)
	}
	s := &Smoother{}
	if tau > 0 {
		s.coeff = math.Exp(-1 / (tau * sampleRate))
	}
	return s, nil
}

// Coeff returns the per-sample pole.
func (s *Smoother) Coeff() float64 { return s.coeff }

// Next sets the target and advances one sample. The first call after
// construction or Reset jumps straight to the target.
func (s *Smoother) Next(target float64) float64 {
	s.target = target
	if !s.primed {
		s.current = target
		s.primed = true
		return s.current
	}
	s.current = target + s.coeff*(s.current-target)
	return s.current
}

// Snap jumps the current value to v.
func (s *Smoother) Snap(v float64) {
	s.current = v
	s.target = v
	s.primed = true
}

// Current returns the smoothed value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the most recent target.
func (s *Smoother) Target() float64 { return s.target }

// Reset forgets the current value; the next call to Next snaps.
func (s *Smoother) Reset() {
	s.current = 0
	s.target = 0
	s.primed = false
}
