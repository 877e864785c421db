package delay

// Snapshot is a copy of a Line's history and cursor. It is bound to its
// source when created and always has the source's capacity.
type Snapshot struct {
	Line
	src *Line
}

// NewSnapshot returns an empty snapshot of d. Reads and Advance work on
// the embedded Line; Capture refreshes it from d.
func (d *Line) NewSnapshot() *Snapshot {
	return &Snapshot{
		Line: Line{buffer: make([]float64, len(d.buffer))},
		src:  d,
	}
}

// Capture overwrites the snapshot with the current history and cursor of
// its source. It does not allocate.
func (s *Snapshot) Capture() {
	copy(s.buffer, s.src.buffer)
	s.writePos = s.src.writePos
}
