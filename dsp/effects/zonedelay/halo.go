package zonedelay

import "math"

const (
	numHaloStages = 4

	// haloBypass is the halo amount below which diffusion is skipped.
	haloBypass  = 0.01
	haloWetBase = 0.5
	haloWetSpan = 0.4
)

var (
	haloStageSeconds = [numHaloStages]float64{0.00477, 0.00359, 0.01273, 0.00930}
	haloStageGains   = [numHaloStages]float64{0.75, 0.70, 0.65, 0.60}
)

type haloStage struct {
	buffer []float64
	index  int
	gain   float64
}

func (s *haloStage) process(x, g float64) float64 {
	delayed := s.buffer[s.index]
	out := -g*x + delayed
	s.buffer[s.index] = x + g*out
	s.index++
	if s.index >= len(s.buffer) {
		s.index = 0
	}
	return out
}

func (s *haloStage) reset() {
	for i := range s.buffer {
		s.buffer[i] = 0
	}
	s.index = 0
}

// diffuser is the four-stage Schroeder allpass chain behind the halo
// control.
type diffuser struct {
	stages [numHaloStages]haloStage
}

// newDiffuser sizes each stage to the next prime sample count at or above
// its base time plus spread seconds.
func newDiffuser(sampleRate, spread float64) diffuser {
	var d diffuser
	used := make(map[int]bool, numHaloStages)
	for i := range d.stages {
		n := nextPrime(int(math.Ceil((haloStageSeconds[i] + spread) * sampleRate)))
		for used[n] {
			n = nextPrime(n + 1)
		}
		used[n] = true
		d.stages[i] = haloStage{
			buffer: make([]float64, n),
			gain:   haloStageGains[i],
		}
	}
	return d
}

// process diffuses x. Below haloBypass it returns x untouched; above it
// the wet share starts at haloWetBase and grows with halo.
func (d *diffuser) process(x, halo float64) float64 {
	if !(halo >= haloBypass) {
		return x
	}
	if halo > 1 {
		halo = 1
	}

	y := x
	for i := range d.stages {
		y = d.stages[i].process(y, d.stages[i].gain*halo)
	}

	wet := haloWetBase + haloWetSpan*halo
	return x*(1-wet) + y*wet
}

func (d *diffuser) reset() {
	for i := range d.stages {
		d.stages[i].reset()
	}
}

func (d *diffuser) lengths() [numHaloStages]int {
	var out [numHaloStages]int
	for i := range d.stages {
		out[i] = len(d.stages[i].buffer)
	}
	return out
}

func nextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
