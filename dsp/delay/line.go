package delay

import (
	"fmt"
	"math"
)

// Line is a fixed-capacity circular sample history with a write cursor.
//
// Reads address the history relative to the cursor: forward reads look
// back into the past, reverse reads look ahead of the cursor into the
// oldest content, which plays it back time-reversed as the cursor moves.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size < 2 {
		return nil, fmt.Errorf("delay size must be >= 2: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// WritePos returns the index the next Write stores to.
func (d *Line) WritePos() int {
	return d.writePos
}

// MaxDelay returns the largest delay in samples that still interpolates
// between two valid neighbours without touching the write cursor.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 2)
}

// Write stores one sample at the cursor and advances it.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.Advance()
}

// Advance moves the cursor by one sample without storing anything.
func (d *Line) Advance() {
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// ReadForward reads delay samples behind the cursor with linear
// interpolation. Delays are clamped to [0, MaxDelay].
func (d *Line) ReadForward(delay float64) float64 {
	delay = d.clampDelay(delay)
	pos := float64(d.writePos) - delay
	if pos < 0 {
		pos += float64(len(d.buffer))
	}
	return d.interpolate(pos)
}

// ReadReverse reads delay samples ahead of the cursor with linear
// interpolation. Delays are clamped to [0, MaxDelay].
func (d *Line) ReadReverse(delay float64) float64 {
	delay = d.clampDelay(delay)
	pos := float64(d.writePos) + delay
	if size := float64(len(d.buffer)); pos >= size {
		pos -= size
	}
	return d.interpolate(pos)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

func (d *Line) clampDelay(delay float64) float64 {
	if delay < 0 || math.IsNaN(delay) {
		return 0
	}
	if maxDelay := d.MaxDelay(); delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (d *Line) interpolate(pos float64) float64 {
	size := len(d.buffer)
	i0 := int(pos)
	frac := pos - float64(i0)
	if i0 >= size {
		i0 -= size
	}
	i1 := i0 + 1
	if i1 >= size {
		i1 = 0
	}
	return d.buffer[i0] + frac*(d.buffer[i1]-d.buffer[i0])
}
