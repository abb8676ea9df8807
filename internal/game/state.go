// Package game implements the breakout session: screens and their
// transitions, ball/platform/brick physics, and the gesture bindings that
// drive them. A Game is owned by a single goroutine; nothing here locks.
package game

import "fmt"

// State is the active screen. Exactly one is active at a time.
type State int

const (
	StateIntro State = iota
	StateMenu
	StateLevels
	StatePlaying
	StatePaused
	StateWin
	StateLose
	StateComplete
)

var stateNames = [...]string{
	StateIntro:    "intro",
	StateMenu:     "menu",
	StateLevels:   "levels",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateWin:      "win",
	StateLose:     "lose",
	StateComplete: "complete",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name for the status feed.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
