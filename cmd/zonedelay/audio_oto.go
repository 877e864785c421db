//go:build !headless

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"
)

func playStream(ctx context.Context, sampleRate int, r *stream) error {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready

	player := otoCtx.NewPlayer(r)
	defer player.Close()
	player.Play()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return nil
		case <-ticker.C:
		}
	}
	return player.Err()
}
