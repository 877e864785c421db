package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-zonedelay/internal/host"
)

const bytesPerFrame = 2 * 4

// frameSource fills dst with interleaved input frames of Channels()
// samples each and reports how many frames it wrote.
type frameSource interface {
	Channels() int
	Read(dst []float32) int
}

// clipSource plays a decoded clip once and then yields silence.
type clipSource struct {
	c   *clip
	pos int
}

func (s *clipSource) Channels() int { return 2 }

func (s *clipSource) Read(dst []float32) int {
	frames := len(dst) / 2
	for i := range frames {
		var l, r float32
		if s.pos < s.c.frames() {
			l, r = s.c.left[s.pos], s.c.right[s.pos]
			s.pos++
		}
		dst[2*i] = l
		dst[2*i+1] = r
	}
	return frames
}

// pulseSource drives the delay from the step sequencer.
type pulseSource struct {
	seq *host.Sequencer
}

func (s *pulseSource) Channels() int { return 1 }

func (s *pulseSource) Read(dst []float32) int {
	s.seq.Render(dst)
	return len(dst)
}

// stream is an io.Reader of little-endian float32 stereo frames rendered
// by the engine from a frameSource.
type stream struct {
	engine    *host.Engine
	src       frameSource
	remaining int // frames left, negative for an endless stream
	in, out   []float32
}

func newStream(e *host.Engine, src frameSource, frames int) *stream {
	return &stream{
		engine:    e,
		src:       src,
		remaining: frames,
	}
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if s.remaining == 0 {
		return 0, io.EOF
	}
	if s.remaining > 0 {
		frames = min(frames, s.remaining)
	}
	if frames == 0 {
		return 0, nil
	}

	ch := s.src.Channels()
	if cap(s.in) < frames*ch {
		s.in = make([]float32, frames*ch)
	}
	if cap(s.out) < 2*frames {
		s.out = make([]float32, 2*frames)
	}
	in, out := s.in[:frames*ch], s.out[:2*frames]

	s.src.Read(in)
	s.engine.RenderInterleaved(out, in)
	for i, v := range out {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}

	if s.remaining > 0 {
		s.remaining -= frames
	}
	return frames * bytesPerFrame, nil
}
