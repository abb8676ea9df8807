package game

import (
	"strconv"
	"time"

	"github.com/ayusman/handbreaker/internal/gesture"
)

// ApplyGesture feeds the facts from one processed camera frame. The
// facts may be a frame or two behind the display; that is expected.
func (g *Game) ApplyGesture(f gesture.Facts, now time.Time) {
	g.facts = f

	g.hovered = ""
	if f.Present {
		if r, ok := gesture.Hover(g.Regions(), f.IndexTip); ok {
			g.hovered = r.Name
		}
	}

	if !f.Present || !f.Fist {
		g.fistHold.Reset()
	}

	switch g.state {
	case StatePlaying:
		if g.waitingForRestart {
			g.fistHold.Reset()
			return
		}
		if f.Present {
			g.world.MovePlatform(f.PalmBase.X, g.params.Width)
		}
		if g.fistHold.Update(f.Present && f.Fist, now) {
			g.Dispatch(Pause, now)
			return
		}

	case StateLevels:
		g.trackVHold(f, now)
	}

	if f.Click && g.hovered != "" {
		g.Click(g.hovered, now)
	}
}

// trackVHold queues a level start when the V gesture is held over a level
// option. The queued start re-checks the gesture when it fires.
func (g *Game) trackVHold(f gesture.Facts, now time.Time) {
	level, err := strconv.Atoi(g.hovered)
	if !f.Present || !f.V || err != nil {
		g.vHold.Reset()
		g.vLevel = 0
		return
	}

	if g.vHold.Active() && g.vLevel == level {
		g.vHold.Update(true, now)
		return
	}

	g.vHold.Reset()
	g.vHold.Update(true, now)
	g.vLevel = level
	g.sched.At(now.Add(g.params.VHold), func(at time.Time) {
		g.confirmLevel(level, at)
	})
}

func (g *Game) confirmLevel(level int, now time.Time) {
	if g.state != StateLevels || !g.facts.V || g.vLevel != level {
		return
	}
	if g.vHold.Held(now) < g.params.VHold {
		return
	}
	g.Dispatch(SelectLevel(level), now)
}

// Click dispatches the action of the named region. Pointer clicks,
// gesture clicks and the Enter key all come through here.
func (g *Game) Click(name string, now time.Time) error {
	a, err := ParseAction(name)
	if err != nil {
		return err
	}
	return g.Dispatch(a, now)
}

// PointerClick dispatches whichever visible region contains p.
func (g *Game) PointerClick(p gesture.Point, now time.Time) error {
	r, ok := gesture.Hover(g.Regions(), p)
	if !ok {
		return nil
	}
	return g.Click(r.Name, now)
}

// Key handles a keyboard key using browser key names.
func (g *Game) Key(key string, now time.Time) error {
	switch key {
	case "ArrowLeft", "ArrowRight":
		if g.state != StatePlaying || g.waitingForRestart {
			return nil
		}
		step := g.params.KeyStep
		if key == "ArrowLeft" {
			step = -step
		}
		pl := g.world.Platform
		g.world.MovePlatform(pl.X+pl.W/2+step, g.params.Width)
		return nil
	case "Escape":
		return g.Dispatch(Exit, now)
	case " ", "p", "P":
		if g.state == StatePaused {
			return g.Dispatch(Resume, now)
		}
		return g.Dispatch(Pause, now)
	case "Enter":
		if g.hovered == "" {
			return nil
		}
		return g.Click(g.hovered, now)
	}
	return nil
}
