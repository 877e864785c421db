//go:build headless

package main

import (
	"context"
	"errors"
)

func playStream(context.Context, int, *stream) error {
	return errors.New("audio playback is not available in headless builds")
}
