package testutil

import (
	"math"
	"testing"
)

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t *testing.T, data []float32) {
	t.Helper()
	for i, v := range data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireIdentical fails t at the first sample where got and want differ.
func RequireIdentical(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// Peak returns the index and magnitude of the largest absolute sample.
// An empty block returns (-1, 0).
func Peak(data []float32) (int, float64) {
	idx, peak := -1, 0.0
	for i, v := range data {
		if a := math.Abs(float64(v)); idx < 0 || a > peak {
			idx, peak = i, a
		}
	}
	return idx, peak
}

// Energy returns the sum of squares of data.
func Energy(data []float32) float64 {
	sum := 0.0
	for _, v := range data {
		sum += float64(v) * float64(v)
	}
	return sum
}
