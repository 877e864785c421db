package param

import "math"

// Lanes carries the automation for one processing block, one lane per
// control. A lane of length 1 holds a block-constant value, a longer lane
// holds one value per sample, and an empty lane falls back to the
// control's default.
type Lanes [Count][]float32

// At returns the value of control id for sample i of the block. Indexes
// past the end of a per-sample lane repeat its last value. Non-finite
// values fall back to the default.
func (l *Lanes) At(id ID, i int) float64 {
	lane := l[id]
	var v float32
	switch n := len(lane); {
	case n == 0:
		return table[id].Default
	case n == 1:
		v = lane[0]
	case i < n:
		v = lane[i]
	default:
		v = lane[n-1]
	}
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return table[id].Default
	}
	return f
}

// Set stores a block-constant value for id, reusing the lane's storage
// when it has any.
func (l *Lanes) Set(id ID, v float64) {
	if cap(l[id]) == 0 {
		l[id] = make([]float32, 1)
	}
	l[id] = l[id][:1]
	l[id][0] = float32(v)
}

// Defaults returns lanes holding every control's default as a block
// constant.
func Defaults() Lanes {
	var l Lanes
	for id := ID(0); id < Count; id++ {
		l.Set(id, table[id].Default)
	}
	return l
}
