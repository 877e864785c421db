package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Store publishes control values from a control goroutine to an audio
// goroutine. Each value is a single atomic word, so readers always see
// either the previous or the new value of a control, never a mix.
type Store struct {
	values [Count]atomic.Uint64
}

// NewStore returns a store holding every control's default.
func NewStore() *Store {
	s := &Store{}
	for id := ID(0); id < Count; id++ {
		s.values[id].Store(math.Float64bits(table[id].Default))
	}
	return s
}

// Set clamps v into the control range and publishes it.
func (s *Store) Set(id ID, v float64) error {
	d, ok := Describe(id)
	if !ok {
		return fmt.Errorf("unknown control id: %d", int(id))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite: %f", d.Name, v)
	}
	s.values[id].Store(math.Float64bits(d.Clamp(v)))
	return nil
}

// SetByName looks up a control by name and publishes v.
func (s *Store) SetByName(name string, v float64) error {
	d, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown control: %q", name)
	}
	return s.Set(d.ID, v)
}

// Get returns the current value of id.
func (s *Store) Get(id ID) float64 {
	if id < 0 || id >= Count {
		return 0
	}
	return math.Float64frombits(s.values[id].Load())
}

// Snapshot writes every control into dst as block constants. It only
// allocates for lanes that have never been set.
func (s *Store) Snapshot(dst *Lanes) {
	for id := ID(0); id < Count; id++ {
		dst.Set(id, s.Get(id))
	}
}
