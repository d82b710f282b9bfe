package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	tickRate     = beep.SampleRate(44100)
	tickFreq     = 880
	tickDuration = 30 * time.Millisecond
)

// edgeTicker plays a short tone when scrolling reaches either end of the
// data. A nil ticker is silent.
type edgeTicker struct {
	last time.Time
}

func newEdgeTicker() (*edgeTicker, error) {
	if err := speaker.Init(tickRate, tickRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &edgeTicker{}, nil
}

// Tick plays the tone, at most once per tone duration.
func (t *edgeTicker) Tick() {
	if t == nil || time.Since(t.last) < tickDuration {
		return
	}
	sine, err := generators.SineTone(tickRate, tickFreq)
	if err != nil {
		return
	}
	t.last = time.Now()
	speaker.Play(beep.Take(tickRate.N(tickDuration), sine))
}

// Close releases the audio device.
func (t *edgeTicker) Close() {
	if t == nil {
		return
	}
	speaker.Close()
}
