package zonedelay

import "github.com/cwbudde/algo-zonedelay/dsp/delay"

// FreezeState is the hold state of one channel.
type FreezeState int

const (
	// Live reads and writes the running delay buffer.
	Live FreezeState = iota
	// Frozen reads a snapshot taken when hold engaged and writes nothing.
	Frozen
)

// String returns the state name.
func (s FreezeState) String() string {
	if s == Frozen {
		return "frozen"
	}
	return "live"
}

type freezer struct {
	state    FreezeState
	snapshot *delay.Snapshot
	copies   int
}

// update applies the hold switch. A rising edge captures the live line
// into the snapshot; holding it high does nothing further.
func (f *freezer) update(hold bool) {
	switch {
	case hold && f.state == Live:
		f.snapshot.Capture()
		f.copies++
		f.state = Frozen
	case !hold && f.state == Frozen:
		f.state = Live
	}
}

// source returns the buffer reads come from in the current state.
func (f *freezer) source(live *delay.Line) *delay.Line {
	if f.state == Frozen {
		return &f.snapshot.Line
	}
	return live
}

func (f *freezer) reset() {
	f.state = Live
	f.snapshot.Reset()
	f.copies = 0
}
