package param

import (
	"fmt"
	"math"
	"strings"
)

// ID identifies one control of the delay kernel.
type ID int

// Control identifiers, in table order.
const (
	Zone ID = iota
	Rate
	MicroRate
	MicroRateFreq
	Skew
	Repeats
	Color
	Halo
	Mix
	Hold
	Flip
	PingPong
	Swap

	// Count is the number of controls.
	Count
)

// ToggleThreshold is the value at or above which a switch control reads
// as engaged.
const ToggleThreshold = 0.5

// Descriptor describes one control: its name, default and inclusive range.
type Descriptor struct {
	ID      ID
	Name    string
	Default float64
	Min     float64
	Max     float64
	Unit    string
	Toggle  bool
}

var table = [Count]Descriptor{
	{ID: Zone, Name: "zone", Default: 1, Min: 0, Max: 3},
	{ID: Rate, Name: "rate", Default: 0.5, Min: 0, Max: 1},
	{ID: MicroRate, Name: "microRate", Default: 0, Min: 0, Max: 1},
	{ID: MicroRateFreq, Name: "microRateFreq", Default: 2, Min: 0.1, Max: 8, Unit: "Hz"},
	{ID: Skew, Name: "skew", Default: 0, Min: -1, Max: 1},
	{ID: Repeats, Name: "repeats", Default: 0.3, Min: 0, Max: 1.2},
	{ID: Color, Name: "color", Default: 0.5, Min: 0, Max: 1},
	{ID: Halo, Name: "halo", Default: 0, Min: 0, Max: 1},
	{ID: Mix, Name: "mix", Default: 0, Min: 0, Max: 1},
	{ID: Hold, Name: "hold", Default: 0, Min: 0, Max: 1, Toggle: true},
	{ID: Flip, Name: "flip", Default: 0, Min: 0, Max: 1, Toggle: true},
	{ID: PingPong, Name: "pingPong", Default: 0, Min: 0, Max: 1, Toggle: true},
	{ID: Swap, Name: "swap", Default: 0, Min: 0, Max: 1, Toggle: true},
}

// Descriptors returns a copy of the control table in ID order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, Count)
	copy(out, table[:])
	return out
}

// Describe returns the descriptor for id. Unknown IDs return false.
func Describe(id ID) (Descriptor, bool) {
	if id < 0 || id >= Count {
		return Descriptor{}, false
	}
	return table[id], true
}

// Lookup finds a control by name, ignoring case.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range table {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// String returns the control name.
func (id ID) String() string {
	if d, ok := Describe(id); ok {
		return d.Name
	}
	return fmt.Sprintf("param(%d)", int(id))
}

// Clamp limits v to the control range. NaN maps to the default.
func (d Descriptor) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return d.Default
	case v < d.Min:
		return d.Min
	case v > d.Max:
		return d.Max
	}
	return v
}

// Validate reports whether v is a finite value inside the control range.
func (d Descriptor) Validate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite: %f", d.Name, v)
	}
	if v < d.Min || v > d.Max {
		return fmt.Errorf("%s must be in [%g, %g]: %g", d.Name, d.Min, d.Max, v)
	}
	return nil
}

// Engaged reports whether a switch value is at or above ToggleThreshold.
func Engaged(v float64) bool {
	return v >= ToggleThreshold
}
