package zonedelay

import "github.com/cwbudde/algo-zonedelay/dsp/param"

// Frame is the control state for a single sample.
type Frame struct {
	Zone          float64
	Rate          float64
	MicroRate     float64
	MicroRateFreq float64
	Skew          float64
	Repeats       float64
	Color         float64
	Halo          float64
	Mix           float64
	Hold          bool
	Flip          bool
	PingPong      bool
	Swap          bool
}

// DefaultFrame returns every control at its default.
func DefaultFrame() Frame {
	l := param.Defaults()
	return FrameAt(&l, 0)
}

// FrameAt resolves the controls for sample i of a block.
func FrameAt(l *param.Lanes, i int) Frame {
	return Frame{
		Zone:          l.At(param.Zone, i),
		Rate:          l.At(param.Rate, i),
		MicroRate:     l.At(param.MicroRate, i),
		MicroRateFreq: l.At(param.MicroRateFreq, i),
		Skew:          l.At(param.Skew, i),
		Repeats:       l.At(param.Repeats, i),
		Color:         l.At(param.Color, i),
		Halo:          l.At(param.Halo, i),
		Mix:           l.At(param.Mix, i),
		Hold:          param.Engaged(l.At(param.Hold, i)),
		Flip:          param.Engaged(l.At(param.Flip, i)),
		PingPong:      param.Engaged(l.At(param.PingPong, i)),
		Swap:          param.Engaged(l.At(param.Swap, i)),
	}
}
