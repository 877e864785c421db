package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// clip is a decoded stereo recording with samples in [-1, 1].
type clip struct {
	left, right []float32
	sampleRate  int
	bitDepth    int
}

func (c *clip) frames() int { return len(c.left) }

func readWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%s: unsupported WAV format %d, want integer PCM", path, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	channels := int(d.NumChans)
	bitDepth := int(d.BitDepth)
	if channels < 1 {
		return nil, fmt.Errorf("%s: no channels", path)
	}
	if bitDepth < 16 || bitDepth > 32 {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, bitDepth)
	}

	frames := len(buf.Data) / channels
	scale := 1 / float32(int64(1)<<(bitDepth-1))
	c := &clip{
		left:       make([]float32, frames),
		right:      make([]float32, frames),
		sampleRate: int(d.SampleRate),
		bitDepth:   bitDepth,
	}
	for i := range frames {
		l := float32(buf.Data[i*channels]) * scale
		r := l
		if channels > 1 {
			r = float32(buf.Data[i*channels+1]) * scale
		}
		c.left[i] = l
		c.right[i] = r
	}
	return c, nil
}

func writeWAV(path string, c *clip) (err error) {
	switch c.bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("bit depth must be 16, 24 or 32: %d", c.bitDepth)
	}
	if c.sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %d", c.sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	full := float64(int64(1)<<(c.bitDepth-1) - 1)
	data := make([]int, 2*c.frames())
	for i := range c.frames() {
		data[2*i] = quantize(c.left[i], full)
		data[2*i+1] = quantize(c.right[i], full)
	}

	enc := wav.NewEncoder(f, c.sampleRate, c.bitDepth, 2, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: c.sampleRate},
		Data:           data,
		SourceBitDepth: c.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func quantize(x float32, full float64) int {
	v := float64(x)
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-1, math.Min(1, v))
	return int(math.Round(v * full))
}
