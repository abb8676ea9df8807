package game

import (
	"fmt"
	"time"

	"github.com/ayusman/handbreaker/internal/gesture"
)

// EventKind classifies what a listener is told about.
type EventKind int

const (
	EventTransition EventKind = iota + 1
	EventWallHit
	EventPaddleHit
	EventBrickHit
	EventLifeLost
	EventCountdown
)

// Event is emitted synchronously from the game goroutine.
type Event struct {
	Kind    EventKind
	From    State
	To      State
	Session Session
	// Countdown is the remaining seconds for EventCountdown.
	Countdown int
}

// Game is one player's session: the state machine, the world it
// simulates, and the gesture bindings.
type Game struct {
	params  Params
	state   State
	session Session
	world   World
	sched   Scheduler

	// waitingForRestart freezes physics and gesture movement after a
	// floor miss until the countdown ends.
	waitingForRestart bool
	countdown         int
	// restartSeq identifies the current countdown so ticks queued for an
	// earlier one are ignored.
	restartSeq int

	facts    gesture.Facts
	hovered  string
	fistHold gesture.HoldTimer
	vHold    gesture.HoldTimer
	vLevel   int

	listeners []func(Event)
}

// New returns a game on the intro screen.
func New(p Params) *Game {
	g := &Game{
		params:   p,
		state:    StateIntro,
		fistHold: gesture.HoldTimer{Hold: p.FistHold},
		vHold:    gesture.HoldTimer{Hold: p.VHold},
	}
	g.world.Platform = centeredPlatform(p)
	return g
}

// OnEvent registers a listener. Listeners run on the game goroutine and
// must not call back into the game.
func (g *Game) OnEvent(fn func(Event)) {
	g.listeners = append(g.listeners, fn)
}

func (g *Game) emit(ev Event) {
	ev.Session = g.session.clone()
	for _, fn := range g.listeners {
		fn(ev)
	}
}

// State returns the active screen.
func (g *Game) State() State { return g.state }

// Session returns a copy of the session counters.
func (g *Game) Session() Session { return g.session.clone() }

// Params returns the parameter set.
func (g *Game) Params() Params { return g.params }

// WaitingForRestart reports whether the post-miss countdown is running.
func (g *Game) WaitingForRestart() bool { return g.waitingForRestart }

// Dispatch applies a UI action. Actions that mean nothing in the current
// state return ErrInvalidTransition and change nothing.
func (g *Game) Dispatch(a Action, now time.Time) error {
	switch g.state {
	case StateIntro:
		if a.Kind == ActionStart {
			g.enter(StateMenu)
			return nil
		}

	case StateMenu:
		switch a.Kind {
		case ActionLevels:
			g.enter(StateLevels)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StateLevels:
		switch a.Kind {
		case ActionSelectLevel:
			if a.Level >= 1 && a.Level <= MaxLevel {
				g.startLevel(a.Level)
				return nil
			}
		case ActionBack:
			g.enter(StateMenu)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StatePlaying:
		switch a.Kind {
		case ActionPause:
			if !g.waitingForRestart {
				g.enter(StatePaused)
				return nil
			}
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StatePaused:
		switch a.Kind {
		case ActionResume:
			g.enter(StatePlaying)
			return nil
		case ActionMenu:
			g.enter(StateMenu)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StateWin:
		switch a.Kind {
		case ActionNextLevel:
			if g.session.Level < MaxLevel {
				g.startLevel(g.session.Level + 1)
				return nil
			}
		case ActionLevels:
			g.enter(StateLevels)
			return nil
		case ActionMenu:
			g.enter(StateMenu)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StateLose:
		switch a.Kind {
		case ActionRetry:
			g.startLevel(g.session.Level)
			return nil
		case ActionMenu:
			g.enter(StateMenu)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}

	case StateComplete:
		switch a.Kind {
		case ActionMenu:
			g.enter(StateMenu)
			return nil
		case ActionExit:
			g.enter(StateIntro)
			return nil
		}
	}

	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, a, g.state)
}

// enter switches screens and notifies listeners.
func (g *Game) enter(to State) {
	from := g.state
	g.state = to

	// A finished campaign starts over once the player moves on from it.
	if to == StateIntro || from == StateComplete {
		g.session.Completed = nil
	}
	g.vHold.Reset()
	g.vLevel = 0
	g.hovered = ""

	g.emit(Event{Kind: EventTransition, From: from, To: to})
}

// startLevel resets the session and rebuilds the world for level n.
func (g *Game) startLevel(n int) {
	g.session.reset(n, g.params.Lives)
	g.world = World{
		Ball:     servedBall(g.params, n),
		Platform: centeredPlatform(g.params),
		Bricks:   buildBricks(g.params),
	}
	g.waitingForRestart = false
	g.countdown = 0
	g.restartSeq++
	g.fistHold.Reset()
	g.enter(StatePlaying)
}

// Tick runs one display frame: due timers first, then physics.
func (g *Game) Tick(now time.Time) {
	g.sched.RunDue(now)

	if g.state != StatePlaying || g.waitingForRestart {
		return
	}

	res := g.world.Step(g.params)
	if res.WallHit {
		g.emit(Event{Kind: EventWallHit})
	}
	if res.FloorMiss {
		g.missed(now)
		return
	}
	if res.PaddleHit {
		g.emit(Event{Kind: EventPaddleHit})
	}
	if res.BricksHit > 0 {
		g.session.Score += res.BricksHit * g.params.BrickScore
		g.emit(Event{Kind: EventBrickHit})
	}
	if res.Cleared {
		g.levelWon()
	}
}

// missed handles the ball reaching the floor.
func (g *Game) missed(now time.Time) {
	g.session.Lives--
	if g.session.Lives <= 0 {
		g.session.Lives = 0
		g.emit(Event{Kind: EventLifeLost})
		g.enter(StateLose)
		return
	}

	g.world.Ball.Active = false
	g.waitingForRestart = true
	g.countdown = g.params.CountdownSteps
	g.restartSeq++
	g.fistHold.Reset()
	g.emit(Event{Kind: EventLifeLost})

	seq := g.restartSeq
	for i := 1; i <= g.params.CountdownSteps; i++ {
		remaining := g.params.CountdownSteps - i
		g.sched.At(now.Add(time.Duration(i)*g.params.CountdownStep), func(time.Time) {
			g.countdownTick(seq, remaining)
		})
	}
}

// countdownTick is a queued resumption. It only acts if the countdown it
// belongs to is still the one in progress.
func (g *Game) countdownTick(seq, remaining int) {
	if g.state != StatePlaying || !g.waitingForRestart || g.restartSeq != seq {
		return
	}
	g.countdown = remaining
	g.emit(Event{Kind: EventCountdown, Countdown: remaining})
	if remaining > 0 {
		return
	}
	g.world.Ball = servedBall(g.params, g.session.Level)
	g.waitingForRestart = false
}

// levelWon records the level and ends the campaign once every level has
// been won at least once, in any order.
func (g *Game) levelWon() {
	g.session.markCompleted(g.session.Level)
	if len(g.session.Completed) >= MaxLevel {
		g.enter(StateComplete)
		return
	}
	g.enter(StateWin)
}
