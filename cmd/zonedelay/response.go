package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
	"github.com/cwbudde/algo-zonedelay/measure/response"
)

func runResponse(args []string, stdout io.Writer, logger *slog.Logger) error {
	def, _ := param.Describe(param.Color)
	fs := flag.NewFlagSet("response", flag.ContinueOnError)
	color := fs.Float64("color", def.Default, "color control value [0, 1]")
	rate := fs.Float64("rate", 48000, "sample rate in Hz")
	points := fs.Int("points", 24, "number of log-spaced frequencies")
	lo := fs.Float64("lo", 20, "lowest frequency in Hz")
	hi := fs.Float64("hi", 20000, "highest frequency in Hz")
	fftSize := fs.Int("fft", 0, "also measure the impulse response with an FFT of this size (power of two, 0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := def.Validate(*color); err != nil {
		return err
	}
	if *points < 2 {
		return fmt.Errorf("points must be >= 2: %d", *points)
	}
	if !(*lo > 0 && *hi > *lo) {
		return fmt.Errorf("frequency range must satisfy 0 < lo < hi: %g, %g", *lo, *hi)
	}

	freqs := response.LogFrequencies(*lo, math.Min(*hi, *rate/2), *points)
	curve, err := response.ColorCurveDB(*color, *rate, freqs)
	if err != nil {
		return err
	}

	var spectrum []float64
	if *fftSize > 0 {
		spectrum, err = response.ColorSpectrumDB(*color, *rate, *fftSize)
		if err != nil {
			return err
		}
	}

	band, pos := zonedelay.ColorBand(*color)
	logger.Debug("color band", "band", band, "position", pos)

	fmt.Fprintf(stdout, "color %.3f: band %d at %.2f, %.0f Hz\n\n", *color, band, pos, *rate)
	return printResponse(stdout, freqs, curve, spectrum, *fftSize, *rate)
}

func printResponse(w io.Writer, freqs, curve, spectrum []float64, fftSize int, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if spectrum == nil {
		fmt.Fprintf(tw, "Freq [Hz]\tGain [dB]\n")
		fmt.Fprintf(tw, "---------\t---------\n")
	} else {
		fmt.Fprintf(tw, "Freq [Hz]\tGain [dB]\tFFT [dB]\n")
		fmt.Fprintf(tw, "---------\t---------\t--------\n")
	}

	binWidth := sampleRate / float64(max(fftSize, 1))
	for i, f := range freqs {
		if spectrum == nil {
			fmt.Fprintf(tw, "%.1f\t%+.2f\n", f, curve[i])
			continue
		}
		bin := min(int(math.Round(f/binWidth)), len(spectrum)-1)
		fmt.Fprintf(tw, "%.1f\t%+.2f\t%+.2f\n", f, curve[i], spectrum[bin])
	}
	return tw.Flush()
}
