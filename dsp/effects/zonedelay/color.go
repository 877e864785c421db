package zonedelay

import (
	"math"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/filter/biquad"
	"github.com/cwbudde/algo-zonedelay/dsp/filter/design"
)

const (
	// NumColorBands is the number of tonal regions the color control spans.
	NumColorBands = 5

	colorPeakQ       = 0.8
	presenceBandQ    = 0.9
	presenceBandGain = 0.5
	neutralDipDB     = -6
	airShelfDB       = 6
	maxColorFreq     = 0.45 // fraction of the sample rate
)

// colorBand designs the two cascaded sections of one tonal region at
// position p in [0, 1] inside the region. Each region starts with exactly
// the designs the previous one ends with, so sweeping color never steps
// the coefficients.
type colorBand func(p, sampleRate float64) (a, b biquad.Coefficients)

var colorBands = [NumColorBands]colorBand{
	darkColor,
	warmColor,
	neutralColor,
	presenceColor,
	airColor,
}

func darkColor(p, sr float64) (a, b biquad.Coefficients) {
	return design.Lowpass(colorFreq(250, 1000, p, sr), design.DefaultQ, sr),
		design.Lowpass(colorFreq(500, 2000, p, sr), design.DefaultQ, sr)
}

// warmColor opens section A and dissolves section B's lowpass into the
// flat shelf neutral starts from.
func warmColor(p, sr float64) (a, b biquad.Coefficients) {
	lp := design.Lowpass(colorFreq(2000, 16000, p, sr), design.DefaultQ, sr)
	return design.Lowpass(colorFreq(1000, 6000, p, sr), design.DefaultQ, sr),
		blendCoefficients(lp, neutralShelf(0, sr), p)
}

func neutralColor(p, sr float64) (a, b biquad.Coefficients) {
	return neutralLowpass(p, sr), neutralShelf(p, sr)
}

func neutralLowpass(p, sr float64) biquad.Coefficients {
	return design.Lowpass(colorFreq(6000, 18000, p, sr), design.DefaultQ, sr)
}

// neutralShelf dips to neutralDipDB mid-region and is flat at both edges.
func neutralShelf(p, sr float64) biquad.Coefficients {
	dip := neutralDipDB * (1 - math.Abs(2*p-1))
	return design.HighShelf(colorFreq(4000, 4000, p, sr), dip, design.DefaultQ, sr)
}

// presenceColor morphs the neutral pair into the air peak and a bandpass
// emphasis.
func presenceColor(p, sr float64) (a, b biquad.Coefficients) {
	return blendCoefficients(neutralLowpass(1, sr), airPeak(0, sr), p),
		blendCoefficients(neutralShelf(1, sr), presenceBand(p, sr), p)
}

func presenceBand(p, sr float64) biquad.Coefficients {
	return bandpassBlend(colorFreq(1200, 3200, p, sr), presenceBandQ, presenceBandGain, sr)
}

func airColor(p, sr float64) (a, b biquad.Coefficients) {
	shelf := design.HighShelf(colorFreq(6000, 6000, p, sr), airShelfDB, design.DefaultQ, sr)
	return airPeak(p, sr), blendCoefficients(presenceBand(1, sr), shelf, p)
}

func airPeak(p, sr float64) biquad.Coefficients {
	return design.Peak(colorFreq(2500, 4500, p, sr), core.Lerp(5, 8, p), colorPeakQ, sr)
}

// bandpassBlend returns 1 + gain*H(z) for the bandpass H at freq. It has
// unity DC gain and 20*log10(1+gain) dB at the centre.
func bandpassBlend(freq, q, gain, sampleRate float64) biquad.Coefficients {
	bp := design.Bandpass(freq, q, sampleRate)
	return biquad.Coefficients{
		B0: 1 + gain*bp.B0,
		B1: bp.A1 + gain*bp.B1,
		B2: bp.A2 + gain*bp.B2,
		A1: bp.A1,
		A2: bp.A2,
	}
}

// blendCoefficients interpolates every coefficient from x (t = 0) to y
// (t = 1), returning x and y exactly at the ends. The stable region of a
// second-order denominator is convex, so blending two stable sections
// stays stable; blending two unity-DC sections keeps unity DC.
func blendCoefficients(x, y biquad.Coefficients, t float64) biquad.Coefficients {
	u := 1 - t
	return biquad.Coefficients{
		B0: u*x.B0 + t*y.B0,
		B1: u*x.B1 + t*y.B1,
		B2: u*x.B2 + t*y.B2,
		A1: u*x.A1 + t*y.A1,
		A2: u*x.A2 + t*y.A2,
	}
}

func colorFreq(from, to, p, sampleRate float64) float64 {
	f := core.Lerp(from, to, p)
	if limit := maxColorFreq * sampleRate; f > limit {
		return limit
	}
	return f
}

// ColorBand returns the tonal region index for color and the position
// inside that region.
func ColorBand(color float64) (band int, pos float64) {
	c := core.Clamp(color, 0, 1)
	if math.IsNaN(c) {
		c = 0
	}
	scaled := c * NumColorBands
	band = int(scaled)
	if band >= NumColorBands {
		band = NumColorBands - 1
	}
	return band, scaled - float64(band)
}

// ColorCoefficients designs the two cascaded tone sections for color.
func ColorCoefficients(color, sampleRate float64) [2]biquad.Coefficients {
	band, pos := ColorBand(color)
	a, b := colorBands[band](pos, sampleRate)
	return [2]biquad.Coefficients{a, b}
}

// toneCache holds the coefficients for the most recently seen color so
// block-constant automation designs them once per value, not per sample.
type toneCache struct {
	sampleRate float64
	color      float64
	valid      bool
	coeffs     [2]biquad.Coefficients
}

func (t *toneCache) lookup(color float64) *[2]biquad.Coefficients {
	if !t.valid || color != t.color {
		t.coeffs = ColorCoefficients(color, t.sampleRate)
		t.color = color
		t.valid = true
	}
	return &t.coeffs
}
