package zonedelay

import (
	"fmt"
	"math"
)

const (
	defaultMaxDelaySeconds  = 10.0
	defaultSmoothingSeconds = 0.04
	defaultHaloSpread       = 0.0005

	minMaxDelaySeconds  = 0.05
	maxMaxDelaySeconds  = 60.0
	maxSmoothingSeconds = 1.0
	maxHaloSpread       = 0.005
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	maxDelaySeconds  float64
	smoothingSeconds float64
	haloSpread       float64
}

func defaultConfig() config {
	return config{
		maxDelaySeconds:  defaultMaxDelaySeconds,
		smoothingSeconds: defaultSmoothingSeconds,
		haloSpread:       defaultHaloSpread,
	}
}

// WithMaxDelaySeconds sets the per-channel buffer capacity in seconds.
// Times longer than the capacity are clamped to it.
func WithMaxDelaySeconds(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < minMaxDelaySeconds || seconds > maxMaxDelaySeconds ||
			math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("zonedelay max delay must be in [%f, %f]: %f",
				minMaxDelaySeconds, maxMaxDelaySeconds, seconds)
		}
		cfg.maxDelaySeconds = seconds
		return nil
	}
}

// WithSmoothingTime sets the delay-time glide constant in seconds. Zero
// makes time changes immediate.
func WithSmoothingTime(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || seconds > maxSmoothingSeconds ||
			math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("zonedelay smoothing time must be in [0, %f]: %f",
				maxSmoothingSeconds, seconds)
		}
		cfg.smoothingSeconds = seconds
		return nil
	}
}

// WithHaloSpread lengthens the right channel's diffusion stages by the
// given seconds so the two halos decorrelate.
func WithHaloSpread(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || seconds > maxHaloSpread ||
			math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("zonedelay halo spread must be in [0, %f]: %f",
				maxHaloSpread, seconds)
		}
		cfg.haloSpread = seconds
		return nil
	}
}
