package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/filter/biquad"
)

// Errors returned by response measurements.
var (
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidLength     = errors.New("response: length must be positive")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 16")
)

const floorDB = -200.0

func colorCascade(color, sampleRate float64) *biquad.Cascade {
	cs := zonedelay.ColorCoefficients(color, sampleRate)
	return biquad.NewCascade(cs[0], cs[1])
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsNaN(sampleRate) && !math.IsInf(sampleRate, 0)
}

// ColorImpulse returns the first n samples of the color filter's impulse
// response.
func ColorImpulse(color, sampleRate float64, n int) ([]float64, error) {
	if !validSampleRate(sampleRate) {
		return nil, ErrInvalidSampleRate
	}
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	out := make([]float64, n)
	out[0] = 1
	colorCascade(color, sampleRate).ProcessBlock(out)
	return out, nil
}

// ColorCurveDB evaluates the color filter's magnitude in dB at freqs.
func ColorCurveDB(color, sampleRate float64, freqs []float64) ([]float64, error) {
	if !validSampleRate(sampleRate) {
		return nil, ErrInvalidSampleRate
	}

	c := colorCascade(color, sampleRate)
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = math.Max(floorDB, c.MagnitudeDB(f, sampleRate))
	}
	return out, nil
}

// ColorSpectrumDB returns the magnitude in dB of the FFT of the color
// filter's impulse response, for bins 0 through fftSize/2.
func ColorSpectrumDB(color, sampleRate float64, fftSize int) ([]float64, error) {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, ErrInvalidFFTSize
	}

	ir, err := ColorImpulse(color, sampleRate, fftSize)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	spec := make([]complex128, fftSize)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("response: fft forward: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	for i, m := range mag {
		if m <= 0 {
			mag[i] = floorDB
			continue
		}
		mag[i] = math.Max(floorDB, 20*math.Log10(m))
	}
	return mag, nil
}

// BinFrequency returns the centre frequency in Hz of bin for an FFT of
// fftSize points.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(fftSize)
}

// LogFrequencies returns n frequencies spaced logarithmically from lo to
// hi inclusive.
func LogFrequencies(lo, hi float64, n int) []float64 {
	if n <= 0 || lo <= 0 || hi <= lo {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	return out
}
