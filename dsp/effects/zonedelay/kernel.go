package zonedelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/delay"
	"github.com/cwbudde/algo-zonedelay/dsp/filter/biquad"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
)

const (
	// NumChannels is the number of audio channels the kernel processes.
	NumChannels = 2

	maxRepeats = 1.2

	// feedbackWriteGain scales the feedback signal before it re-enters
	// the buffer.
	feedbackWriteGain = 0.9
)

type channel struct {
	live     *delay.Line
	hold     freezer
	time     *delay.Smoother
	tone     *biquad.Cascade
	halo     diffuser
	feedback float64
	delay    float64
}

// Kernel is the stereo zoned delay.
type Kernel struct {
	sampleRate float64
	cfg        config
	channels   [NumChannels]channel
	tone       toneCache
	defaults   param.Lanes
}

// New creates a kernel for sampleRate. Both channels start silent with
// every control at its default.
func New(sampleRate float64, opts ...Option) (*Kernel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("zonedelay sample rate must be > 0: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	size := int(math.Ceil(sampleRate * cfg.maxDelaySeconds))
	k := &Kernel{
		sampleRate: sampleRate,
		cfg:        cfg,
		tone:       toneCache{sampleRate: sampleRate},
		defaults:   param.Defaults(),
	}

	for c := range k.channels {
		live, err := delay.New(size)
		if err != nil {
			return nil, err
		}
		smoother, err := delay.NewSmoother(cfg.smoothingSeconds, sampleRate)
		if err != nil {
			return nil, err
		}
		spread := 0.0
		if c == 1 {
			spread = cfg.haloSpread
		}
		k.channels[c] = channel{
			live: live,
			hold: freezer{snapshot: live.NewSnapshot()},
			time: smoother,
			tone: biquad.NewCascade(biquad.Identity(), biquad.Identity()),
			halo: newDiffuser(sampleRate, spread),
		}
	}

	return k, nil
}

// SampleRate returns the sample rate in Hz.
func (k *Kernel) SampleRate() float64 { return k.sampleRate }

// Capacity returns the per-channel buffer length in samples.
func (k *Kernel) Capacity() int { return k.channels[0].live.Len() }

// DelaySamples returns the read distance used for the most recent sample
// of channel c.
func (k *Kernel) DelaySamples(c int) float64 { return k.channels[c].delay }

// FreezeState returns the hold state of channel c.
func (k *Kernel) FreezeState(c int) FreezeState { return k.channels[c].hold.state }

// Reset clears all buffers, filters and control history.
func (k *Kernel) Reset() {
	for c := range k.channels {
		ch := &k.channels[c]
		ch.live.Reset()
		ch.hold.reset()
		ch.time.Reset()
		ch.tone.Reset()
		ch.halo.reset()
		ch.feedback = 0
		ch.delay = 0
	}
	k.tone.valid = false
}

// Process renders one block. in holds one or two input channels; a single
// channel feeds both sides. out receives up to two channels. The block
// length is the shortest of the provided slices. lanes may be nil to use
// the defaults. startTime is the host time in seconds of the first sample
// and drives the wobble LFO.
//
// When no input is connected the outputs are zeroed and the state is left
// untouched. Process returns the number of samples rendered.
func (k *Kernel) Process(out, in [][]float32, lanes *param.Lanes, startTime float64) int {
	var outL, outR []float32
	if len(out) > 0 {
		outL = out[0]
	}
	if len(out) > 1 {
		outR = out[1]
	}

	if len(in) == 0 || len(in[0]) == 0 {
		core.Zero32(outL)
		core.Zero32(outR)
		return 0
	}
	inL, inR := in[0], in[0]
	if len(in) > 1 && len(in[1]) > 0 {
		inR = in[1]
	}

	n := core.MinLen(inL, inR, outL, outR)
	if outL == nil && outR == nil {
		return 0
	}
	if lanes == nil {
		lanes = &k.defaults
	}

	dt := 1 / k.sampleRate
	for i := 0; i < n; i++ {
		f := FrameAt(lanes, i)
		l, r := k.Step(float64(inL[i]), float64(inR[i]), f, startTime+float64(i)*dt)
		if outL != nil {
			outL[i] = float32(l)
		}
		if outR != nil {
			outR[i] = float32(r)
		}
	}
	return n
}

// Step advances the kernel by one stereo sample under the controls in f.
// t is the host time in seconds.
func (k *Kernel) Step(inL, inR float64, f Frame, t float64) (outL, outR float64) {
	base := BaseTime(f.Zone, f.Rate)
	wobble := microWobble(f.MicroRate, f.MicroRateFreq, t)
	targetL, targetR := ChannelTimes(base, f.Skew, wobble, f.Swap)
	targets := [NumChannels]float64{targetL, targetR}

	coeffs := k.tone.lookup(f.Color)
	repeats := core.Clamp(f.Repeats, 0, maxRepeats)
	mix := core.Clamp(f.Mix, 0, 1)
	in := [NumChannels]float64{inL, inR}

	// Ping-pong reads the other side's feedback from the previous sample.
	prev := [NumChannels]float64{k.channels[0].feedback, k.channels[1].feedback}

	var out [NumChannels]float64
	for c := range k.channels {
		ch := &k.channels[c]

		seconds := ch.time.Next(targets[c])
		ch.delay = k.delaySamples(seconds)

		ch.hold.update(f.Hold)
		src := ch.hold.source(ch.live)

		var x float64
		if f.Flip {
			x = src.ReadReverse(ch.delay)
		} else {
			x = src.ReadForward(ch.delay)
		}
		if f.PingPong {
			x = prev[1-c]
		}

		ch.tone.Section(0).Coefficients = coeffs[0]
		ch.tone.Section(1).Coefficients = coeffs[1]
		x = ch.tone.ProcessSample(x)
		x = ch.halo.process(x, f.Halo)
		s := saturate(x, f.Color)

		fb := core.FlushDenormals(s * repeats)
		if ch.hold.state == Frozen {
			ch.live.Advance()
			ch.hold.snapshot.Advance()
		} else {
			ch.live.Write(in[c] + fb*feedbackWriteGain)
		}
		ch.feedback = fb

		out[c] = in[c]*(1-mix) + s*mix
	}

	return out[0], out[1]
}

// delaySamples converts a smoothed time to a read distance, floored at
// minDelaySeconds and capped at the buffer's reach.
func (k *Kernel) delaySamples(seconds float64) float64 {
	if !(seconds >= minDelaySeconds) {
		seconds = minDelaySeconds
	}
	d := seconds * k.sampleRate
	if limit := k.channels[0].live.MaxDelay(); d > limit {
		return limit
	}
	return d
}
