package delay

import (
	"math"
	"testing"
)

func TestNewSmootherValidation(t *testing.T) {
	if _, err := NewSmoother(0.01, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewSmoother(-1, 48000); err == nil {
		t.Fatal("expected error for negative tau")
	}
	if _, err := NewSmoother(math.NaN(), 48000); err == nil {
		t.Fatal("expected error for NaN tau")
	}
}

func TestSmootherFirstCallSnaps(t *testing.T) {
	s, err := NewSmoother(0.04, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Next(0.25); got != 0.25 {
		t.Fatalf("first Next: got %v want 0.25", got)
	}
}

// TestSmootherRampsGradually verifies a target change moves the value
// incrementally instead of in a single jump.
func TestSmootherRampsGradually(t *testing.T) {
	const sampleRate = 1000.0

	s, err := NewSmoother(0.01, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	s.Next(0.25)

	var got float64
	for i := 0; i < 3; i++ {
		got = s.Next(0.01)
	}
	if got >= 0.25 || got <= 0.01 {
		t.Fatalf("expected value strictly between target and start, got %v", got)
	}
}

func TestSmootherConverges(t *testing.T) {
	const sampleRate = 1000.0

	s, err := NewSmoother(0.01, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	s.Next(0.25)

	// 20 time constants.
	var got float64
	for i := 0; i < 200; i++ {
		got = s.Next(0.01)
	}
	if math.Abs(got-0.01) > 1e-5 {
		t.Fatalf("did not converge: got %v", got)
	}
}

func TestSmootherMonotonicApproach(t *testing.T) {
	s, err := NewSmoother(0.02, 48000)
	if err != nil {
		t.Fatal(err)
	}
	s.Snap(1)

	prev := 1.0
	for i := 0; i < 2000; i++ {
		got := s.Next(0)
		if got > prev || got < 0 {
			t.Fatalf("sample %d: %v not in [0, %v]", i, got, prev)
		}
		prev = got
	}
}

func TestSmootherZeroTauIsImmediate(t *testing.T) {
	s, err := NewSmoother(0, 48000)
	if err != nil {
		t.Fatal(err)
	}
	s.Next(1)
	if got := s.Next(3); got != 3 {
		t.Fatalf("got %v want 3", got)
	}
}

func TestSmootherReset(t *testing.T) {
	s, err := NewSmoother(0.04, 48000)
	if err != nil {
		t.Fatal(err)
	}
	s.Next(1)
	s.Next(2)
	s.Reset()

	if got := s.Next(5); got != 5 {
		t.Fatalf("Next after Reset: got %v want 5", got)
	}
	if s.Target() != 5 || s.Current() != 5 {
		t.Fatalf("state after snap: current=%v target=%v", s.Current(), s.Target())
	}
}
