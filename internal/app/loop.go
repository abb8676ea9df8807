package app

import (
	"log"
	"time"

	"github.com/ayusman/handbreaker/internal/game"
	"github.com/ayusman/handbreaker/internal/sound"
	"github.com/ayusman/handbreaker/internal/store"
)

// runLoop is the single writer of the game. Display ticks, gesture facts
// and input commands are applied in arrival order.
func (a *App) runLoop(stop <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / time.Duration(a.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.game.Tick(a.config.Clock())
		case f := <-a.facts:
			a.game.ApplyGesture(f, a.config.Clock())
		case c := <-a.cmds:
			c.reply <- c.fn(a.game, a.config.Clock())
		}
		a.publish()
	}
}

// onEvent reacts to game events on the loop goroutine. It must not block.
func (a *App) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventTransition:
		a.onTransition(ev)
	case game.EventPaddleHit:
		a.play(sound.CuePaddle)
	case game.EventBrickHit:
		a.play(sound.CueBrick)
	case game.EventWallHit:
		a.play(sound.CueWall)
	case game.EventLifeLost:
		a.play(sound.CueLifeLost)
	}
}

func (a *App) onTransition(ev game.Event) {
	log.Printf("State %s -> %s", ev.From, ev.To)

	switch {
	case ev.To == game.StateIntro:
		a.requestCamera(false)
	case ev.From == game.StateIntro:
		a.requestCamera(true)
	}

	switch ev.To {
	case game.StatePlaying:
		if ev.From != game.StatePaused {
			a.runStart = a.config.Clock()
		}
	case game.StateWin:
		a.play(sound.CueWin)
		a.recordRun(ev.Session, store.OutcomeWin)
	case game.StateLose:
		a.play(sound.CueLose)
		a.recordRun(ev.Session, store.OutcomeLose)
	case game.StateComplete:
		a.play(sound.CueWin)
		a.recordRun(ev.Session, store.OutcomeComplete)
	}
}

// recordRun stores the finished level in the background.
func (a *App) recordRun(s game.Session, outcome store.Outcome) {
	if a.config.Store == nil {
		return
	}
	run := &store.Run{
		Level:      s.Level,
		Score:      s.Score,
		Lives:      s.Lives,
		Outcome:    outcome,
		Completed:  s.Completed,
		StartedAt:  a.runStart,
		FinishedAt: a.config.Clock(),
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.config.Store.Runs().Create(run); err != nil {
			log.Printf("Error recording run: %v", err)
		}
	}()
}

// requestCamera asks the camera producer to acquire or release the device.
func (a *App) requestCamera(want bool) {
	a.wantCamera.Store(want)
	select {
	case a.camWake <- struct{}{}:
	default:
	}
}
