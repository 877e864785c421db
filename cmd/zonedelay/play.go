package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-zonedelay/internal/host"
)

func runPlay(args []string, _ io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	var ef engineFlags
	ef.register(fs)
	tail := fs.Float64("tail", 3, "seconds of silence after a file so the echoes can ring out")
	rate := fs.Int("rate", 48000, "output sample rate for the pulse source")
	duration := fs.Float64("duration", 0, "stop the pulse source after this many seconds (0 plays until interrupted)")
	tempo := fs.Float64("tempo", 110, "pulse tempo in BPM")
	decay := fs.Float64("decay", 0.2, "pulse decay in seconds")
	shuffle := fs.Float64("shuffle", 0, "pulse shuffle amount [0, 1]")
	waveform := fs.String("wave", "sine", "pulse waveform: sine, triangle, saw, square")
	steps := fs.String("steps", "", "comma separated step frequencies in Hz, 0 disables a step (default: built-in pattern)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: zonedelay play [flags] [in.wav]\n\n")
		fmt.Fprintf(fs.Output(), "Without a file the built-in pulse sequencer feeds the delay.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		src        frameSource
		sampleRate int
		frames     = -1
	)
	switch fs.NArg() {
	case 0:
		seq, err := host.NewSequencer(float64(*rate))
		if err != nil {
			return err
		}
		w, err := host.ParseWaveform(*waveform)
		if err != nil {
			return err
		}
		seq.SetTransport(*tempo, *decay, *shuffle)
		seq.SetWaveform(w)
		if *steps != "" {
			pattern, err := parseSteps(*steps)
			if err != nil {
				return err
			}
			seq.SetSteps(pattern)
		}
		seq.SetRunning(true)
		src = &pulseSource{seq: seq}
		sampleRate = *rate
		if *duration > 0 {
			frames = int(math.Round(*duration * float64(sampleRate)))
		}
		logger.Info("playing pulse sequencer", "tempo", *tempo, "wave", *waveform)
	case 1:
		c, err := readWAV(fs.Arg(0))
		if err != nil {
			return err
		}
		src = &clipSource{c: c}
		sampleRate = c.sampleRate
		frames = c.frames() + int(math.Round(*tail*float64(sampleRate)))
		logger.Info("playing file", "path", fs.Arg(0), "frames", c.frames())
	default:
		fs.Usage()
		return errors.New("play takes at most one input file")
	}

	e, err := ef.newEngine(float64(sampleRate))
	if err != nil {
		return err
	}
	return playStream(context.Background(), sampleRate, newStream(e, src, frames))
}

func parseSteps(s string) ([]host.Step, error) {
	fields := strings.Split(s, ",")
	if len(fields) > host.StepCount {
		return nil, fmt.Errorf("at most %d steps: got %d", host.StepCount, len(fields))
	}
	steps := make([]host.Step, len(fields))
	for i, f := range fields {
		hz, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if hz < 0 || math.IsInf(hz, 0) {
			return nil, fmt.Errorf("step %d frequency must be >= 0: %g", i+1, hz)
		}
		steps[i] = host.Step{Enabled: hz > 0, FreqHz: hz}
	}
	return steps, nil
}
