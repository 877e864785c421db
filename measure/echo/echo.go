package echo

import (
	"errors"
	"math"
)

// Errors returned by echo analysis functions.
var (
	ErrEmptyResponse     = errors.New("echo: response is empty")
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidSpacing    = errors.New("echo: tap spacing must be positive")
	ErrNoTaps            = errors.New("echo: no tap above the threshold")
)

// DefaultThresholdDB is the level below the first tap at which later taps
// are no longer reported.
const DefaultThresholdDB = -90.0

// Tap describes one repeat of the echo train.
type Tap struct {
	Index   int     // sample index of the tap's absolute maximum
	Time    float64 // Index in seconds
	Peak    float64 // absolute maximum in the window
	Energy  float64 // sum of squares over the window
	LevelDB float64 // energy relative to the first tap in dB
}

// Metrics holds echo-train analysis results.
type Metrics struct {
	Taps          []Tap
	Spacing       float64 // mean distance between taps in seconds
	DecayPerTapDB float64 // fitted level change per repeat, negative when decaying
	RT60          float64 // time for the train to fall 60 dB, 0 if it does not decay
}

// Analyzer computes tap metrics from an impulse response.
type Analyzer struct {
	SampleRate  float64
	ThresholdDB float64
}

// NewAnalyzer creates an analyzer with the given sample rate and
// DefaultThresholdDB.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, ThresholdDB: DefaultThresholdDB}
}

// Analyze splits resp into taps spaced spacing samples apart. Tap k is
// searched in [k*spacing - spacing/2, k*spacing + spacing/2), starting at
// k = 1. Analysis stops at the first window whose level falls below the
// threshold.
func (a *Analyzer) Analyze(resp []float64, spacing int) (Metrics, error) {
	if len(resp) == 0 {
		return Metrics{}, ErrEmptyResponse
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	if spacing <= 0 {
		return Metrics{}, ErrInvalidSpacing
	}

	taps := a.taps(resp, spacing)
	if len(taps) == 0 {
		return Metrics{}, ErrNoTaps
	}

	m := Metrics{Taps: taps}
	if len(taps) > 1 {
		first, last := taps[0], taps[len(taps)-1]
		m.Spacing = (last.Time - first.Time) / float64(len(taps)-1)
		m.DecayPerTapDB = levelSlope(taps)
		if m.DecayPerTapDB < 0 {
			m.RT60 = -60 / m.DecayPerTapDB * float64(spacing) / a.SampleRate
		}
	}

	return m, nil
}

func (a *Analyzer) taps(resp []float64, spacing int) []Tap {
	var (
		taps      []Tap
		reference float64
	)

	for k := 1; ; k++ {
		from := k*spacing - spacing/2
		if from >= len(resp) {
			break
		}
		to := min(from+spacing, len(resp))

		tap := Tap{Index: from}
		for i := from; i < to; i++ {
			v := resp[i]
			tap.Energy += v * v
			if av := math.Abs(v); av > tap.Peak {
				tap.Peak = av
				tap.Index = i
			}
		}

		if tap.Energy <= 0 {
			break
		}
		if len(taps) == 0 {
			reference = tap.Energy
		}
		tap.LevelDB = 10 * math.Log10(tap.Energy/reference)
		if tap.LevelDB < a.ThresholdDB {
			break
		}

		tap.Time = float64(tap.Index) / a.SampleRate
		taps = append(taps, tap)
	}

	return taps
}

// levelSlope fits LevelDB against the tap number by least squares and
// returns the slope in dB per tap.
func levelSlope(taps []Tap) float64 {
	var sumX, sumY, sumXX, sumXY float64

	for i, tap := range taps {
		x := float64(i)
		sumX += x
		sumY += tap.LevelDB
		sumXX += x * x
		sumXY += x * tap.LevelDB
	}

	n := float64(len(taps))

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denom
}

// DecayCurve computes the Schroeder backward integration of the squared
// response in dB, normalized to 0 dB at the first sample.
func (a *Analyzer) DecayCurve(resp []float64) ([]float64, error) {
	if len(resp) == 0 {
		return nil, ErrEmptyResponse
	}

	n := len(resp)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += resp[i] * resp[i]
		result[i] = cumSum
	}

	total := result[0]
	if total <= 0 {
		return result, nil
	}

	for i := range result {
		ratio := result[i] / total
		if ratio <= 0 {
			result[i] = -200
		} else {
			result[i] = 10 * math.Log10(ratio)
		}
	}

	return result, nil
}

// FindOnset returns the index of the first sample whose magnitude reaches
// thresholdDB relative to the response peak. On a fully wet delay render
// this is the arrival of the first tap.
func (a *Analyzer) FindOnset(resp []float64, thresholdDB float64) (int, error) {
	if len(resp) == 0 {
		return 0, ErrEmptyResponse
	}

	peak := 0.0
	for _, v := range resp {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return 0, ErrNoTaps
	}

	threshold := peak * math.Pow(10, thresholdDB/20)
	for i, v := range resp {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, ErrNoTaps
}
