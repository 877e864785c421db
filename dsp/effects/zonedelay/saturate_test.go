package zonedelay

import (
	"math"
	"testing"
)

func TestSaturateBounded(t *testing.T) {
	inputs := []float64{0, 0.3, -0.3, 1, -1, 1.5, -1.5, 4, -4, 100, -100, 1e9, -1e9, math.Inf(1), math.Inf(-1)}
	for _, color := range []float64{0, 0.2, 0.3, 0.7, 1} {
		for _, x := range inputs {
			y := saturate(x, color)
			if math.IsNaN(y) || math.Abs(y) >= 1.2 {
				t.Fatalf("saturate(%v, color=%v) = %v, want |y| < 1.2", x, color, y)
			}
		}
	}
}

func TestSaturateNonFinite(t *testing.T) {
	for _, color := range []float64{0.1, 0.9} {
		for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			if got := saturate(x, color); got != 0 {
				t.Fatalf("color=%v x=%v: got %v, want 0", color, x, got)
			}
		}
	}
}

func TestSaturateSilenceStaysSilent(t *testing.T) {
	for _, color := range []float64{0, 0.1, 0.5, 1} {
		if got := saturate(0, color); got != 0 {
			t.Fatalf("color=%v: saturate(0) = %v", color, got)
		}
	}
}

func TestSaturateSymmetricIsTransparentBelowUnity(t *testing.T) {
	for _, x := range []float64{-1, -0.5, 0.1, 0.99, 1} {
		if got := saturate(x, 0.5); got != x {
			t.Fatalf("saturate(%v) = %v, want identity", x, got)
		}
	}
	above := saturate(1+1e-9, 0.5)
	if math.Abs(above-1) > 1e-8 {
		t.Fatalf("curve is discontinuous at 1: %v", above)
	}
	if s := saturate(-3, 0.5); s != -saturate(3, 0.5) {
		t.Fatalf("symmetric curve is not odd: %v vs %v", s, saturate(3, 0.5))
	}
}

func TestSaturateAsymmetricHalfWaves(t *testing.T) {
	pos := saturate(0.8, 0.1)
	neg := saturate(-0.8, 0.1)
	if math.Abs(pos+neg) < 1e-3 {
		t.Fatalf("asymmetric curve is odd: f(0.8)=%v f(-0.8)=%v", pos, neg)
	}
	prev := math.Inf(-1)
	for i := -400; i <= 400; i++ {
		y := saturate(float64(i)/100, 0.1)
		if y < prev {
			t.Fatalf("asymmetric curve not monotonic at %v", float64(i)/100)
		}
		prev = y
	}
}
