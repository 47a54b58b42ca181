// Package audio plays short synthesized cues for card interactions.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/tabletop"
)

const sampleRate = beep.SampleRate(48000)

// Cue frequencies in Hz.
const (
	enterFreq   = 880
	exitFreq    = 660
	pressFreq   = 440
	releaseFreq = 330
)

// Tone generates a sine tone with an attack ramp and exponential decay.
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	pos   int
}

// NewTone creates a tone at freq Hz. decay is the envelope time constant in
// seconds.
func NewTone(sr beep.SampleRate, freq, decay float64) *Tone {
	return &Tone{sr: sr, freq: freq, decay: decay}
}

// Stream implements beep.Streamer. A tone never ends; wrap it in beep.Take.
func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t/g.decay)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer. A tone never fails.
func (g *Tone) Err() error {
	return nil
}

// cue returns a finite streamer for one interaction sound.
func cue(freq float64, d time.Duration) beep.Streamer {
	return beep.Take(sampleRate.N(d), NewTone(sampleRate, freq, d.Seconds()/3))
}

// Cues mixes interaction sounds into the speaker.
type Cues struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
	played  int
}

// NewCues creates a silent cue player. Call Init to start audio output.
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts the mixer.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.enabled = true
	return nil
}

// Close silences all playing cues.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.enabled = false
}

// Played returns how many cues have been started.
func (c *Cues) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

func (c *Cues) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.played++
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Enter plays the hover cue.
func (c *Cues) Enter() { c.play(cue(enterFreq, 40*time.Millisecond)) }

// Exit plays the leave cue.
func (c *Cues) Exit() { c.play(cue(exitFreq, 30*time.Millisecond)) }

// Press plays the pick-up cue.
func (c *Cues) Press() { c.play(cue(pressFreq, 80*time.Millisecond)) }

// Release plays the put-down cue.
func (c *Cues) Release() { c.play(cue(releaseFreq, 100*time.Millisecond)) }

// Attach plays cues for card's enter, exit, press and release notifications.
// The returned handles detach them.
func (c *Cues) Attach(card *tabletop.Card) []tabletop.CallbackHandle {
	return []tabletop.CallbackHandle{
		card.OnEnter(c.Enter),
		card.OnExit(c.Exit),
		card.OnPress(c.Press),
		card.OnRelease(c.Release),
	}
}
