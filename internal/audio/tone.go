// Package audio plays the telegraph side-tone heard while the key is down.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// ToneFrequency is the side-tone pitch in Hz
	ToneFrequency = 600.0
)

// Tone is a continuous sound switched on and off by the signal key
type Tone interface {
	SetPlaying(on bool)
	SetVolume(percent float64)
	Playing() bool
	Close()
}

// BeepTone drives the speaker through beep
type BeepTone struct {
	mu      sync.Mutex
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	playing bool
	closed  bool
}

// NewBeepTone initialises the speaker and queues a paused sine tone.
// volume is a 0-100 percentage.
func NewBeepTone(volume float64) (*BeepTone, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	sine, err := generators.SineTone(sampleRate, ToneFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create tone: %w", err)
	}

	t := &BeepTone{}
	t.ctrl = &beep.Ctrl{Streamer: sine, Paused: true}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	applyVolume(t.volume, volume)

	speaker.Play(t.volume)
	return t, nil
}

// SetPlaying starts or pauses the tone
func (t *BeepTone) SetPlaying(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.playing == on {
		return
	}
	t.playing = on

	speaker.Lock()
	t.ctrl.Paused = !on
	speaker.Unlock()
}

// SetVolume changes the tone volume, 0-100
func (t *BeepTone) SetVolume(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	speaker.Lock()
	applyVolume(t.volume, percent)
	speaker.Unlock()
}

// Playing reports whether the tone is sounding
func (t *BeepTone) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Close silences the tone and releases the speaker
func (t *BeepTone) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.playing = false
	speaker.Clear()
}

func applyVolume(v *effects.Volume, percent float64) {
	v.Volume, v.Silent = volumeLevel(percent)
}

// volumeLevel maps a 0-100 percentage onto beep's base-2 volume scale.
// 100 is unity gain; 0 is silent.
func volumeLevel(percent float64) (level float64, silent bool) {
	if percent <= 0 {
		return 0, true
	}
	if percent > 100 {
		percent = 100
	}
	return math.Log2(percent / 100), false
}

// Silent is a Tone that makes no sound. It is used when no audio device
// is available and in tests.
type Silent struct {
	playing bool
	volume  float64
}

func (s *Silent) SetPlaying(on bool)        { s.playing = on }
func (s *Silent) SetVolume(percent float64) { s.volume = percent }
func (s *Silent) Playing() bool             { return s.playing }
func (s *Silent) Close()                    { s.playing = false }

// Volume returns the last volume set
func (s *Silent) Volume() float64 { return s.volume }
