package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-zonedelay/dsp/param"
	"github.com/cwbudde/algo-zonedelay/measure/echo"
)

func runTaps(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("taps", flag.ContinueOnError)
	var ef engineFlags
	ef.register(fs)
	rate := fs.Float64("rate", 48000, "sample rate in Hz")
	length := fs.Float64("length", 4, "seconds of response to analyze")
	channel := fs.String("channel", "left", "channel to analyze: left or right")
	threshold := fs.Float64("threshold", echo.DefaultThresholdDB, "level below the first tap at which analysis stops, in dB")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ch := 0
	switch *channel {
	case "left":
	case "right":
		ch = 1
	default:
		return fmt.Errorf("channel must be left or right: %q", *channel)
	}
	if !(*rate > 0) {
		return fmt.Errorf("rate must be positive: %f", *rate)
	}
	if !(*length > 0) {
		return fmt.Errorf("length must be positive: %f", *length)
	}

	resp, spacing, err := impulseResponse(&ef, *rate, *length, ch)
	if err != nil {
		return err
	}
	logger.Debug("rendered impulse response", "frames", len(resp), "spacing", spacing)

	a := echo.NewAnalyzer(*rate)
	a.ThresholdDB = *threshold
	m, err := a.Analyze(resp, spacing)
	if err != nil {
		return err
	}
	return printTaps(stdout, m)
}

// impulseResponse renders the wet response of one channel to a unit
// impulse and returns it with the channel's delay in samples. The mix is
// forced fully wet unless a -set mix override is given.
func impulseResponse(ef *engineFlags, sampleRate, seconds float64, ch int) ([]float64, int, error) {
	e, err := ef.newEngine(sampleRate)
	if err != nil {
		return nil, 0, err
	}
	if !ef.overrides(param.Mix) {
		if err := e.SetParam("mix", 1); err != nil {
			return nil, 0, err
		}
	}

	n := max(int(math.Round(seconds*sampleRate)), 1)
	in := make([]float32, n)
	in[0] = 1
	outL := make([]float32, n)
	outR := make([]float32, n)
	e.ProcessStereo(outL, outR, in, nil)

	out := outL
	if ch == 1 {
		out = outR
	}
	resp := make([]float64, n)
	for i, v := range out {
		resp[i] = float64(v)
	}
	spacing := int(math.Round(e.Kernel().DelaySamples(ch)))
	return resp, spacing, nil
}

func printTaps(w io.Writer, m echo.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tap\tTime [ms]\tPeak\tLevel [dB]\n")
	fmt.Fprintf(tw, "---\t---------\t----\t----------\n")
	for i, t := range m.Taps {
		fmt.Fprintf(tw, "%d\t%.2f\t%.4f\t%+.2f\n", i+1, t.Time*1000, t.Peak, t.LevelDB)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nspacing %.2f ms, decay %.2f dB/tap", m.Spacing*1000, m.DecayPerTapDB)
	if m.RT60 > 0 {
		fmt.Fprintf(w, ", RT60 %.2f s", m.RT60)
	}
	fmt.Fprintln(w)
	return nil
}
