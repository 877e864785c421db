package testutil

import (
	"math"
	"math/rand"
)

// Sine returns a deterministic float32 sine block.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude] from a fixed
// seed.
func Noise(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Impulse returns a block holding amplitude at pos and zero elsewhere.
func Impulse(length, pos int, amplitude float32) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}
	return out
}

// Step returns a block that is zero before pos and value from pos on.
func Step(length, pos int, value float32) []float32 {
	out := make([]float32, length)
	for i := range out {
		if i >= pos {
			out[i] = value
		}
	}
	return out
}

// Stereo allocates a two-channel block of n samples per channel.
func Stereo(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

// Window returns the [from, to) slice of every channel in block.
func Window(block [][]float32, from, to int) [][]float32 {
	out := make([][]float32, len(block))
	for c := range block {
		out[c] = block[c][from:to]
	}
	return out
}
