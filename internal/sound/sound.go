// Package sound plays short synthesized cues for game events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a game sound.
type Cue int

const (
	CuePaddle Cue = iota + 1
	CueBrick
	CueWall
	CueLifeLost
	CueWin
	CueLose
)

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(c Cue)
}

// Manager plays cues through the default audio device. Until Initialize
// succeeds, and after Close, every Play is a no-op.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a silent manager.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. An error means no device is
// available and the manager stays silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops all cues.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Enabled reports whether cues reach a device.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Play queues the cue on the mixer.
func (m *Manager) Play(c Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s := Stream(c)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Stream builds the finite streamer for a cue, or nil for an unknown cue.
func Stream(c Cue) beep.Streamer {
	switch c {
	case CuePaddle:
		return tone(440, 60*time.Millisecond, 0.25)
	case CueBrick:
		return tone(880, 50*time.Millisecond, 0.2)
	case CueWall:
		return tone(330, 30*time.Millisecond, 0.1)
	case CueLifeLost:
		return sweep(400, 120, 400*time.Millisecond)
	case CueWin:
		return beep.Seq(
			tone(523, 120*time.Millisecond, 0.25),
			tone(659, 120*time.Millisecond, 0.25),
			tone(784, 240*time.Millisecond, 0.25),
		)
	case CueLose:
		return beep.Seq(
			tone(392, 200*time.Millisecond, 0.25),
			tone(262, 400*time.Millisecond, 0.25),
		)
	}
	return nil
}

func tone(freq float64, d time.Duration, amp float64) beep.Streamer {
	return beep.Take(sampleRate.N(d), &ToneGenerator{sr: sampleRate, freq: freq, amp: amp, decay: 1 / d.Seconds()})
}

func sweep(from, to float64, d time.Duration) beep.Streamer {
	return beep.Take(sampleRate.N(d), &SweepGenerator{sr: sampleRate, from: from, to: to, n: sampleRate.N(d)})
}

// ToneGenerator is a sine tone with an exponential decay envelope.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	amp   float64
	decay float64
	pos   int
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		s := g.amp * math.Exp(-t*g.decay*3) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// SweepGenerator glides linearly from one frequency to another over n
// samples.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	n        int
	pos      int
	phase    float64
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		frac := math.Min(float64(g.pos)/float64(g.n), 1)
		freq := g.from + (g.to-g.from)*frac
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		s := 0.25 * (1 - frac) * math.Sin(g.phase)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
