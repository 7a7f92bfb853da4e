// Package audio plays the short click heard when the selected inventory
// slot changes.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"chosenoffset.com/runebound/internal/config"
)

const sampleRate = beep.SampleRate(48000)

// Cue owns the speaker mixer. A disabled Cue does nothing.
type Cue struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	mixer       *beep.Mixer
	initialized bool
}

// New returns a cue for cfg. The speaker is opened only when audio is
// enabled.
func New(cfg config.AudioConfig) (*Cue, error) {
	c := &Cue{cfg: cfg, mixer: &beep.Mixer{}}
	if !cfg.Enabled {
		return c, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return c, fmt.Errorf("failed to initialise speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return c, nil
}

// Enabled reports whether clicks are audible.
func (c *Cue) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// SlotChanged plays one click. It has the signature of a slot listener.
func (c *Cue) SlotChanged(int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(Click(sampleRate, c.cfg.Frequency, c.cfg.Duration))
	speaker.Unlock()
}

// Close silences pending clicks and releases the speaker.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// Click returns a finite sine burst of freq Hz lasting d.
func Click(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	return beep.Take(n, &ToneGenerator{sr: sr, freq: freq, length: n})
}

// ToneGenerator streams a sine wave with a linear fade-out over length
// samples.
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	length int
	pos    int
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := 1.0
		if g.length > 0 {
			envelope = math.Max(0, 1-float64(g.pos)/float64(g.length))
		}
		s := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
