package host

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
)

const (
	defaultMasterGain = 1.0
	maxMasterGain     = 4.0
)

type automation struct {
	data []float32
	pos  int
}

// Engine owns one kernel and feeds it in blocks.
type Engine struct {
	cfg    core.ProcessorConfig
	kernel *zonedelay.Kernel
	store  *param.Store
	gain   atomic.Uint64
	clock  atomic.Int64

	mu         sync.Mutex
	pending    [param.Count][]float32
	hasPending atomic.Bool

	active [param.Count]automation
	base   param.Lanes
	lanes  param.Lanes

	inL, inR   []float32
	outL, outR []float32
	scratch    []float64
}

// NewEngine creates an engine for cfg. kernelOpts are passed to
// zonedelay.New.
func NewEngine(cfg core.ProcessorConfig, kernelOpts ...zonedelay.Option) (*Engine, error) {
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("host block size must be > 0: %d", cfg.BlockSize)
	}
	k, err := zonedelay.New(cfg.SampleRate, kernelOpts...)
	if err != nil {
		return nil, fmt.Errorf("create kernel: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		kernel:  k,
		store:   param.NewStore(),
		base:    param.Defaults(),
		inL:     make([]float32, cfg.BlockSize),
		inR:     make([]float32, cfg.BlockSize),
		outL:    make([]float32, cfg.BlockSize),
		outR:    make([]float32, cfg.BlockSize),
		scratch: make([]float64, cfg.BlockSize),
	}
	e.gain.Store(math.Float64bits(defaultMasterGain))
	return e, nil
}

// SampleRate returns the processing sample rate.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// BlockSize returns the kernel block size.
func (e *Engine) BlockSize() int { return e.cfg.BlockSize }

// Kernel returns the underlying kernel. It must only be touched from the
// goroutine that renders audio.
func (e *Engine) Kernel() *zonedelay.Kernel { return e.kernel }

// SetParam publishes a control value by name. Values are clamped to the
// control's range. Safe for concurrent use with rendering.
func (e *Engine) SetParam(name string, v float64) error {
	return e.store.SetByName(name, v)
}

// Param returns the published value of a control.
func (e *Engine) Param(name string) (float64, error) {
	d, ok := param.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown control: %q", name)
	}
	return e.store.Get(d.ID), nil
}

// SetAutomation schedules a per-sample lane for id starting with the next
// rendered sample. When the lane runs out its last value stays published.
func (e *Engine) SetAutomation(id param.ID, lane []float32) error {
	d, ok := param.Describe(id)
	if !ok {
		return fmt.Errorf("unknown control id: %d", int(id))
	}
	if len(lane) == 0 {
		return fmt.Errorf("%s automation is empty", d.Name)
	}
	data := make([]float32, len(lane))
	for i, v := range lane {
		if err := d.Validate(float64(v)); err != nil {
			return fmt.Errorf("%s automation sample %d: %w", d.Name, i, err)
		}
		data[i] = v
	}

	e.mu.Lock()
	e.pending[id] = data
	e.mu.Unlock()
	e.hasPending.Store(true)
	return nil
}

// SetMasterGain sets the linear output gain in [0, 4].
func (e *Engine) SetMasterGain(g float64) error {
	if g < 0 || g > maxMasterGain || math.IsNaN(g) {
		return fmt.Errorf("master gain must be in [0, %f]: %f", maxMasterGain, g)
	}
	e.gain.Store(math.Float64bits(g))
	return nil
}

// MasterGain returns the linear output gain.
func (e *Engine) MasterGain() float64 {
	return math.Float64frombits(e.gain.Load())
}

// Time returns the host time in seconds of the next sample to render.
func (e *Engine) Time() float64 {
	return float64(e.clock.Load()) / e.cfg.SampleRate
}

// Reset clears the kernel, the clock and any automation. Published
// control values are kept. Like Kernel, it must only be called from the
// goroutine that renders audio; other goroutines may keep calling
// SetParam and SetAutomation.
func (e *Engine) Reset() {
	e.kernel.Reset()
	e.clock.Store(0)
	e.mu.Lock()
	e.pending = [param.Count][]float32{}
	e.mu.Unlock()
	e.hasPending.Store(false)
	e.active = [param.Count]automation{}
}

// ProcessStereo renders min(len(outL), len(outR), len(inL)) samples. inR
// may be nil for mono input. It returns the number of samples rendered.
func (e *Engine) ProcessStereo(outL, outR, inL, inR []float32) int {
	if inR == nil {
		inR = inL
	}
	n := min(len(outL), len(outR), len(inL), len(inR))
	for start := 0; start < n; start += e.cfg.BlockSize {
		end := min(start+e.cfg.BlockSize, n)
		e.processBlock(outL[start:end], outR[start:end], inL[start:end], inR[start:end])
	}
	return n
}

// RenderInterleaved processes interleaved stereo frames from src into dst.
// src may be mono (len(src) == len(dst)/2) or stereo (len(src) ==
// len(dst)). It returns the number of frames rendered.
func (e *Engine) RenderInterleaved(dst, src []float32) int {
	frames := len(dst) / 2
	mono := len(src) < 2*frames
	if mono {
		frames = min(frames, len(src))
	} else {
		frames = min(frames, len(src)/2)
	}

	bs := e.cfg.BlockSize
	for start := 0; start < frames; start += bs {
		n := min(bs, frames-start)
		inL, inR := e.inL[:n], e.inR[:n]
		for i := range n {
			if mono {
				inL[i] = src[start+i]
				inR[i] = src[start+i]
			} else {
				inL[i] = src[2*(start+i)]
				inR[i] = src[2*(start+i)+1]
			}
		}
		outL, outR := e.outL[:n], e.outR[:n]
		e.processBlock(outL, outR, inL, inR)
		for i := range n {
			dst[2*(start+i)] = outL[i]
			dst[2*(start+i)+1] = outR[i]
		}
	}
	return frames
}

func (e *Engine) processBlock(outL, outR, inL, inR []float32) {
	n := len(outL)
	e.updateLanes(n)
	e.kernel.Process([][]float32{outL, outR}, [][]float32{inL, inR}, &e.lanes, e.Time())
	e.advanceAutomation(n)
	e.clock.Add(int64(n))

	if g := e.MasterGain(); g != 1 {
		e.applyGain(outL, g)
		e.applyGain(outR, g)
	}
}

func (e *Engine) applyGain(buf []float32, g float64) {
	s := e.scratch[:len(buf)]
	for i, v := range buf {
		s[i] = float64(v)
	}
	vecmath.ScaleBlock(s, s, g)
	for i, v := range s {
		buf[i] = float32(v)
	}
}

// updateLanes snapshots the published controls and overlays active
// automation for the next n samples.
func (e *Engine) updateLanes(n int) {
	if e.hasPending.Load() && e.mu.TryLock() {
		for id := range e.pending {
			if e.pending[id] != nil {
				e.active[id] = automation{data: e.pending[id]}
				e.pending[id] = nil
			}
		}
		e.hasPending.Store(false)
		e.mu.Unlock()
	}

	e.store.Snapshot(&e.base)
	e.lanes = e.base
	for id := range e.active {
		a := &e.active[id]
		if a.pos < len(a.data) {
			e.lanes[id] = a.data[a.pos:min(a.pos+n, len(a.data))]
		}
	}
}

func (e *Engine) advanceAutomation(n int) {
	for id := range e.active {
		a := &e.active[id]
		if len(a.data) == 0 {
			continue
		}
		a.pos += n
		if a.pos >= len(a.data) {
			_ = e.store.Set(param.ID(id), float64(a.data[len(a.data)-1]))
			e.active[id] = automation{}
		}
	}
}
