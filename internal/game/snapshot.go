package game

import (
	"slices"

	"github.com/ayusman/handbreaker/internal/gesture"
)

// Snapshot is a read-only copy of everything the renderer and the status
// feed need. It is safe to hand to other goroutines.
type Snapshot struct {
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	State     State            `json:"state"`
	Waiting   bool             `json:"waiting"`
	Countdown int              `json:"countdown"`
	Session   Session          `json:"session"`
	Ball      Ball             `json:"ball"`
	Platform  Platform         `json:"platform"`
	Bricks    []Brick          `json:"bricks"`
	Fingers   int              `json:"fingers"`
	Gesture   string           `json:"gesture"`
	Pointer   *gesture.Point   `json:"pointer,omitempty"`
	Hovered   string           `json:"hovered,omitempty"`
	Regions   []gesture.Region `json:"regions"`
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Width:     g.params.Width,
		Height:    g.params.Height,
		State:     g.state,
		Waiting:   g.waitingForRestart,
		Countdown: g.countdown,
		Session:   g.session.clone(),
		Ball:      g.world.Ball,
		Platform:  g.world.Platform,
		Bricks:    slices.Clone(g.world.Bricks),
		Fingers:   g.facts.Fingers,
		Gesture:   g.facts.Label,
		Hovered:   g.hovered,
		Regions:   g.Regions(),
	}
	if g.facts.Present {
		p := g.facts.IndexTip
		s.Pointer = &p
	}
	if s.Session.Completed == nil {
		s.Session.Completed = []int{}
	}
	if s.Gesture == "" {
		s.Gesture = "No hand"
	}
	return s
}
