package zonedelay

import "math"

const (
	// colorSymmetricFrom is the color at which the saturator switches from
	// the asymmetric to the symmetric curve.
	colorSymmetricFrom = 0.3

	asymDrive = 1.2
	asymBias  = 0.2
	clipKnee  = 0.15
)

// saturate shapes x with the curve selected by color. Output stays below
// 1.2 in magnitude for any input; non-finite input (NaN or ±Inf) yields 0.
func saturate(x, color float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	if color < colorSymmetricFrom {
		return saturateAsymmetric(x)
	}
	return saturateSymmetric(x)
}

// saturateAsymmetric biases a tanh curve and removes the bias again, so
// silence stays silent while the two half-waves clip differently.
func saturateAsymmetric(x float64) float64 {
	return (math.Tanh(asymDrive*(x+asymBias)) - math.Tanh(asymDrive*asymBias)) / asymDrive
}

// saturateSymmetric is transparent up to unity and rolls off exponentially
// above it, approaching 1+clipKnee.
func saturateSymmetric(x float64) float64 {
	a := math.Abs(x)
	if a <= 1 {
		return x
	}
	y := 1 + clipKnee*(1-math.Exp(-(a-1)/clipKnee))
	return math.Copysign(y, x)
}
