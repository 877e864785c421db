package zonedelay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-zonedelay/dsp/filter/biquad"
)

func TestColorBand(t *testing.T) {
	tests := []struct {
		color    float64
		wantBand int
		wantPos  float64
	}{
		{color: 0, wantBand: 0, wantPos: 0},
		{color: 0.1, wantBand: 0, wantPos: 0.5},
		{color: 0.2, wantBand: 1, wantPos: 0},
		{color: 0.5, wantBand: 2, wantPos: 0.5},
		{color: 0.9, wantBand: 4, wantPos: 0.5},
		{color: 1, wantBand: 4, wantPos: 1},
		{color: -3, wantBand: 0, wantPos: 0},
		{color: math.NaN(), wantBand: 0, wantPos: 0},
	}
	for _, tt := range tests {
		band, pos := ColorBand(tt.color)
		if band != tt.wantBand || math.Abs(pos-tt.wantPos) > 1e-9 {
			t.Errorf("ColorBand(%v) = (%d, %v), want (%d, %v)", tt.color, band, pos, tt.wantBand, tt.wantPos)
		}
	}
}

func TestColorCoefficientsUnityDCAndStable(t *testing.T) {
	for _, sr := range []float64{16000, 44100, 48000, 96000} {
		for i := 0; i <= 200; i++ {
			color := float64(i) / 200
			cs := ColorCoefficients(color, sr)
			dc := 1.0
			for j := range cs {
				if !cs[j].IsStable() {
					t.Fatalf("sr=%v color=%v section %d unstable: %+v", sr, color, j, cs[j])
				}
				dc *= cs[j].DCGain()
			}
			if math.Abs(dc-1) > 1e-9 {
				t.Fatalf("sr=%v color=%v: DC gain %v, want 1", sr, color, dc)
			}
		}
	}
}

func TestColorTonalCharacter(t *testing.T) {
	const sr = 48000.0
	cascade := func(color float64) *biquad.Cascade {
		cs := ColorCoefficients(color, sr)
		return biquad.NewCascade(cs[0], cs[1])
	}

	if got := cascade(0).MagnitudeDB(5000, sr); got > -20 {
		t.Fatalf("dark at 5 kHz = %.2f dB, want < -20", got)
	}
	if got := cascade(1).MagnitudeDB(10000, sr); got < 3 {
		t.Fatalf("air at 10 kHz = %.2f dB, want > +3", got)
	}
	dark := cascade(0.05).MagnitudeDB(3000, sr)
	warm := cascade(0.3).MagnitudeDB(3000, sr)
	if dark >= warm {
		t.Fatalf("warm should pass more 3 kHz than dark: dark=%.2f warm=%.2f", dark, warm)
	}
	if got := cascade(0.5).MagnitudeDB(12000, sr); got > -3 {
		t.Fatalf("neutral mid-band should dip highs: %.2f dB", got)
	}
	if got := cascade(0.8).MagnitudeDB(2500, sr); got < 4 {
		t.Fatalf("presence at 2.5 kHz = %.2f dB, want > +4", got)
	}
}

func TestBandpassBlend(t *testing.T) {
	const sr = 48000.0
	c := bandpassBlend(2000, 0.9, 0.5, sr)
	if got := c.DCGain(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", got)
	}
	if got, want := c.MagnitudeDB(2000, sr), 20*math.Log10(1.5); math.Abs(got-want) > 1e-6 {
		t.Fatalf("centre gain = %.6f dB, want %.6f", got, want)
	}
	if !c.IsStable() {
		t.Fatalf("unstable: %+v", c)
	}

	flat := bandpassBlend(2000, 0.9, 0, sr)
	if got := flat.MagnitudeDB(7000, sr); math.Abs(got) > 1e-9 {
		t.Fatalf("zero gain should be flat, got %.9f dB at 7 kHz", got)
	}
}

func TestBlendCoefficientsHitsEndsExactly(t *testing.T) {
	x := ColorCoefficients(0.1, 48000)[0]
	y := ColorCoefficients(0.9, 48000)[1]
	if got := blendCoefficients(x, y, 0); got != x {
		t.Fatalf("t=0: %+v, want %+v", got, x)
	}
	if got := blendCoefficients(x, y, 1); got != y {
		t.Fatalf("t=1: %+v, want %+v", got, y)
	}
}

var colorBoundaries = []float64{0.2, 0.4, 0.6, 0.8}

func maxCoefficientDiff(x, y [2]biquad.Coefficients) float64 {
	var d float64
	for i := range x {
		d = math.Max(d, math.Abs(x[i].B0-y[i].B0))
		d = math.Max(d, math.Abs(x[i].B1-y[i].B1))
		d = math.Max(d, math.Abs(x[i].B2-y[i].B2))
		d = math.Max(d, math.Abs(x[i].A1-y[i].A1))
		d = math.Max(d, math.Abs(x[i].A2-y[i].A2))
	}
	return d
}

func TestColorCoefficientsContinuousAtBandEdges(t *testing.T) {
	const eps = 1e-9
	for _, sr := range []float64{16000, 44100, 48000, 96000} {
		for _, b := range colorBoundaries {
			below := ColorCoefficients(b-eps, sr)
			above := ColorCoefficients(b+eps, sr)
			if d := maxCoefficientDiff(below, above); d > 1e-6 {
				t.Errorf("sr=%v color=%v: coefficients jump by %g\nbelow %+v\nabove %+v", sr, b, d, below, above)
			}
			if d := maxCoefficientDiff(below, ColorCoefficients(b, sr)); d > 1e-6 {
				t.Errorf("sr=%v color=%v: edge design differs from the limit by %g", sr, b, d)
			}
		}
	}
}

func TestColorEdgeCrossingKeepsSineSmooth(t *testing.T) {
	const (
		sr     = 48000.0
		freq   = 1000.0
		settle = 4800
		window = 240
		delta  = 1e-4
	)

	for _, b := range colorBoundaries {
		c := biquad.NewCascade(biquad.Identity(), biquad.Identity())
		set := func(color float64) {
			cs := ColorCoefficients(color, sr)
			c.Section(0).Coefficients = cs[0]
			c.Section(1).Coefficients = cs[1]
		}

		n := 0
		prev := 0.0
		maxStep := func(count int) float64 {
			var m float64
			for range count {
				y := c.ProcessSample(math.Sin(2 * math.Pi * freq * float64(n) / sr))
				m = math.Max(m, math.Abs(y-prev))
				prev = y
				n++
			}
			return m
		}

		set(b - delta)
		maxStep(settle)
		before := maxStep(window)
		set(b + delta)
		after := maxStep(window)

		if after > before*1.05+1e-3 {
			t.Errorf("color=%v: crossing raised the largest sample step from %.5f to %.5f", b, before, after)
		}
	}
}

func TestColorSweepOverSineStaysBounded(t *testing.T) {
	const (
		sr    = 48000.0
		steps = 96000
	)
	c := biquad.NewCascade(biquad.Identity(), biquad.Identity())
	cache := toneCache{sampleRate: sr}

	prev := 0.0
	for i := 0; i <= steps; i++ {
		cs := cache.lookup(float64(i) / steps)
		c.Section(0).Coefficients = cs[0]
		c.Section(1).Coefficients = cs[1]
		y := c.ProcessSample(math.Sin(2 * math.Pi * 500 * float64(i) / sr))
		if math.IsNaN(y) || math.Abs(y) > 4 {
			t.Fatalf("sample %d: output %v out of range", i, y)
		}
		// A 500 Hz sine moves at most 0.066 per sample; allow the
		// bank's largest mid-band gain on top.
		if d := math.Abs(y - prev); i > 0 && d > 0.2 {
			t.Fatalf("sample %d (color %.4f): step %.4f", i, float64(i)/steps, d)
		}
		prev = y
	}
}

func TestColorFrequenciesStayBelowNyquist(t *testing.T) {
	// At 16 kHz most corner frequencies exceed the cap.
	for i := 0; i <= 100; i++ {
		cs := ColorCoefficients(float64(i)/100, 16000)
		for j := range cs {
			if cs[j] == (biquad.Coefficients{}) {
				t.Fatalf("color=%v section %d collapsed to zero", float64(i)/100, j)
			}
		}
	}
}

func TestColorStepResponseSettles(t *testing.T) {
	cs := ColorCoefficients(0.5, 48000)
	c := biquad.NewCascade(cs[0], cs[1])

	var y float64
	for i := 0; i < 4000; i++ {
		y = c.ProcessSample(1)
		if y > 1.2 || y < -0.2 {
			t.Fatalf("step response out of range at %d: %v", i, y)
		}
	}
	if math.Abs(y-1) > 1e-6 {
		t.Fatalf("step response settled at %v, want 1", y)
	}
}

func TestColorSweepIsContinuousForSteadyInput(t *testing.T) {
	const sr = 48000.0
	c := biquad.NewCascade(biquad.Identity(), biquad.Identity())
	cache := toneCache{sampleRate: sr}

	apply := func(color float64) float64 {
		cs := cache.lookup(color)
		c.Section(0).Coefficients = cs[0]
		c.Section(1).Coefficients = cs[1]
		return c.ProcessSample(1)
	}

	for i := 0; i < 20000; i++ {
		apply(0)
	}

	const steps = 48000
	for i := 0; i <= steps; i++ {
		color := float64(i) / steps
		if y := apply(color); math.Abs(y-1) > 1e-9 {
			t.Fatalf("color=%v: output %v jumped away from 1", color, y)
		}
	}
}

func TestToneCacheRecomputesOnlyOnChange(t *testing.T) {
	cache := toneCache{sampleRate: 48000}
	a := *cache.lookup(0.3)
	cache.coeffs[0].B0 = 42
	if got := cache.lookup(0.3)[0].B0; got != 42 {
		t.Fatalf("cache redesigned an unchanged color: B0=%v", got)
	}
	if got := *cache.lookup(0.31); got == a {
		t.Fatal("cache did not redesign a changed color")
	}
}
