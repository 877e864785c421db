package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"
)

func runRender(args []string, _ io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var ef engineFlags
	ef.register(fs)
	tail := fs.Float64("tail", 2, "seconds of silence appended so the echoes can ring out")
	bits := fs.Int("bits", 0, "output bit depth: 16, 24 or 32 (default: input bit depth)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: zonedelay render [flags] <in.wav> <out.wav>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("render needs an input and an output path")
	}
	if *tail < 0 || math.IsNaN(*tail) {
		return fmt.Errorf("tail must be >= 0: %f", *tail)
	}

	in, err := readWAV(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Debug("decoded input",
		"path", fs.Arg(0),
		"frames", in.frames(),
		"sample_rate", in.sampleRate,
		"bit_depth", in.bitDepth)

	out, err := renderClip(in, &ef, *tail)
	if err != nil {
		return err
	}
	if *bits != 0 {
		out.bitDepth = *bits
	}
	if err := writeWAV(fs.Arg(1), out); err != nil {
		return err
	}

	peak := math.Max(peakLevel(out.left), peakLevel(out.right))
	duration := time.Duration(float64(out.frames()) / float64(out.sampleRate) * float64(time.Second))
	logger.Info("rendered",
		"path", fs.Arg(1),
		"frames", out.frames(),
		"duration", duration.Round(time.Millisecond),
		"peak_db", fmt.Sprintf("%.1f", 20*math.Log10(math.Max(peak, 1e-12))))
	if peak > 1 {
		logger.Warn("output clipped", "peak", peak)
	}
	return nil
}

// renderClip runs the delay over in followed by tail seconds of silence.
func renderClip(in *clip, ef *engineFlags, tail float64) (*clip, error) {
	e, err := ef.newEngine(float64(in.sampleRate))
	if err != nil {
		return nil, err
	}

	frames := in.frames() + int(math.Round(tail*float64(in.sampleRate)))
	inL := make([]float32, frames)
	inR := make([]float32, frames)
	copy(inL, in.left)
	copy(inR, in.right)

	out := &clip{
		left:       make([]float32, frames),
		right:      make([]float32, frames),
		sampleRate: in.sampleRate,
		bitDepth:   in.bitDepth,
	}
	e.ProcessStereo(out.left, out.right, inL, inR)
	return out, nil
}

func peakLevel(buf []float32) float64 {
	var peak float64
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	return peak
}
