package design

import (
	"math"

	"github.com/cwbudde/algo-zonedelay/dsp/filter/biquad"
)

// DefaultQ is the Butterworth quality factor 1/sqrt(2).
const DefaultQ = 1 / math.Sqrt2

// prototype carries the intermediate terms shared by the RBJ cookbook
// formulas for one frequency/Q pair.
type prototype struct {
	cosW  float64
	sinW  float64
	alpha float64
}

func newPrototype(freq, q, sampleRate float64) (prototype, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return prototype{}, false
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return prototype{}, false
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = DefaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	sinW := math.Sin(w0)
	return prototype{
		cosW:  math.Cos(w0),
		sinW:  sinW,
		alpha: sinW / (2 * q),
	}, true
}

// shelfAmplitude returns A = 10^(gainDB/40).
func shelfAmplitude(gainDB float64) float64 {
	return math.Pow(10, gainDB/40)
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
// Invalid frequencies yield zero coefficients.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 - p.cosW
	return normalize(b1/2, b1, b1/2, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := -(1 + p.cosW)
	return normalize(-b1/2, b1, -b1/2, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// Bandpass designs a bandpass biquad with 0 dB gain at the centre.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return normalize(p.alpha, 0, -p.alpha, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// Notch designs a notch biquad centred at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return normalize(1, -2*p.cosW, 1, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// Allpass designs an allpass biquad whose phase turns through -pi at
// freq (Hz). Its magnitude is 1 at every frequency.
func Allpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return normalize(1-p.alpha, -2*p.cosW, 1+p.alpha, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// Peak designs a peaking-EQ biquad with gain in dB at freq (Hz).
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	a := shelfAmplitude(gainDB)
	return normalize(
		1+p.alpha*a, -2*p.cosW, 1-p.alpha*a,
		1+p.alpha/a, -2*p.cosW, 1-p.alpha/a,
	)
}

// LowShelf designs a low-shelf biquad with gain in dB. q sets the shelf
// slope; DefaultQ gives the steepest slope without overshoot.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	a := shelfAmplitude(gainDB)
	beta := 2 * math.Sqrt(a) * p.alpha
	ap1, am1 := a+1, a-1

	return normalize(
		a*(ap1-am1*p.cosW+beta), 2*a*(am1-ap1*p.cosW), a*(ap1-am1*p.cosW-beta),
		ap1+am1*p.cosW+beta, -2*(am1+ap1*p.cosW), ap1+am1*p.cosW-beta,
	)
}

// HighShelf designs a high-shelf biquad with gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newPrototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	a := shelfAmplitude(gainDB)
	beta := 2 * math.Sqrt(a) * p.alpha
	ap1, am1 := a+1, a-1

	return normalize(
		a*(ap1+am1*p.cosW+beta), -2*a*(am1+ap1*p.cosW), a*(ap1+am1*p.cosW-beta),
		ap1-am1*p.cosW+beta, 2*(am1-ap1*p.cosW), ap1-am1*p.cosW-beta,
	)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
