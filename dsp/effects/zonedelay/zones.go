package zonedelay

import (
	"math"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
)

const (
	// NumZones is the number of delay-time zones.
	NumZones = 4

	minDelaySeconds   = 0.001
	microDepthSeconds = 0.015
	skewSpread        = 0.5
)

// Zone is a contiguous delay-time range in seconds.
type Zone struct {
	Min float64
	Max float64
}

var zones = [NumZones]Zone{
	{Min: 0.005, Max: 0.05},
	{Min: 0.05, Max: 0.4},
	{Min: 0.4, Max: 2},
	{Min: 2, Max: 10},
}

// Zones returns the delay-time zones in ascending order.
func Zones() [NumZones]Zone {
	return zones
}

// ZoneIndex floors z and clamps it into [0, NumZones-1]. NaN selects
// zone 0.
func ZoneIndex(z float64) int {
	if math.IsNaN(z) || z < 0 {
		return 0
	}
	if z >= NumZones-1 {
		return NumZones - 1
	}
	return int(z)
}

// BaseTime maps a zone selector and a rate in [0, 1] to a delay time in
// seconds. The mapping is linear in rate across the zone.
func BaseTime(zone, rate float64) float64 {
	z := zones[ZoneIndex(zone)]
	r := core.Clamp(rate, 0, 1)
	if math.IsNaN(r) {
		r = 0
	}
	return z.Min + r*(z.Max-z.Min)
}

// ChannelTimes spreads base apart by skew (left longer for positive skew),
// adds the shared wobble and exchanges the channels when swap is set.
func ChannelTimes(base, skew, wobble float64, swap bool) (left, right float64) {
	offset := core.Clamp(skew, -1, 1) * base * skewSpread
	left = base + offset + wobble
	right = base - offset + wobble
	if swap {
		left, right = right, left
	}
	return left, right
}

// microWobble returns the LFO offset in seconds at host time t.
func microWobble(amount, freqHz, t float64) float64 {
	if amount <= 0 {
		return 0
	}
	return math.Sin(2*math.Pi*freqHz*t) * amount * microDepthSeconds
}
