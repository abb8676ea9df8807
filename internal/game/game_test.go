package game

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func mustDispatch(t *testing.T, g *Game, a Action) {
	t.Helper()
	if err := g.Dispatch(a, t0); err != nil {
		t.Fatalf("Dispatch(%s) in %s: %v", a, g.State(), err)
	}
}

// playing returns a game that has just started the given level.
func playing(t *testing.T, level int) *Game {
	t.Helper()
	g := New(DefaultParams())
	mustDispatch(t, g, Start)
	mustDispatch(t, g, Levels)
	mustDispatch(t, g, SelectLevel(level))
	return g
}

// clearOnNextTick leaves a single brick directly in the ball's path.
func clearOnNextTick(g *Game) {
	b := g.world.Ball
	g.world.Bricks = []Brick{{
		X: b.X + b.SpeedX - 40, Y: b.Y + b.SpeedY - 14, W: 80, H: 28, Active: true,
	}}
}

func TestDispatch_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    State
	}{
		{"start opens menu", []Action{Start}, StateMenu},
		{"menu to levels", []Action{Start, Levels}, StateLevels},
		{"menu exit returns to intro", []Action{Start, Exit}, StateIntro},
		{"levels back to menu", []Action{Start, Levels, Back}, StateMenu},
		{"levels exit", []Action{Start, Levels, Exit}, StateIntro},
		{"select level plays", []Action{Start, Levels, SelectLevel(2)}, StatePlaying},
		{"pause", []Action{Start, Levels, SelectLevel(1), Pause}, StatePaused},
		{"resume", []Action{Start, Levels, SelectLevel(1), Pause, Resume}, StatePlaying},
		{"paused to menu", []Action{Start, Levels, SelectLevel(1), Pause, Menu}, StateMenu},
		{"playing exit", []Action{Start, Levels, SelectLevel(1), Exit}, StateIntro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultParams())
			for _, a := range tt.actions {
				mustDispatch(t, g, a)
			}
			if g.State() != tt.want {
				t.Errorf("state = %s, want %s", g.State(), tt.want)
			}
		})
	}
}

func TestDispatch_InvalidLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		setup []Action
		bad   Action
	}{
		{"resume on intro", nil, Resume},
		{"levels on intro", nil, Levels},
		{"retry on menu", []Action{Start}, Retry},
		{"level out of range", []Action{Start, Levels}, SelectLevel(4)},
		{"next level while playing", []Action{Start, Levels, SelectLevel(1)}, NextLevel},
		{"pause while paused", []Action{Start, Levels, SelectLevel(1), Pause}, Pause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultParams())
			for _, a := range tt.setup {
				mustDispatch(t, g, a)
			}
			before := g.State()

			err := g.Dispatch(tt.bad, t0)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Dispatch(%s) error = %v, want ErrInvalidTransition", tt.bad, err)
			}
			if g.State() != before {
				t.Errorf("state changed from %s to %s", before, g.State())
			}
		})
	}
}

func TestStartLevel(t *testing.T) {
	for level, speed := range LevelSpeeds {
		g := playing(t, level)
		s := g.Session()
		p := g.Params()

		if s.Lives != 3 || s.Score != 0 || s.Level != level {
			t.Errorf("level %d: session = %+v, want lives 3 score 0", level, s)
		}
		b := g.world.Ball
		if b.SpeedX != speed.X || b.SpeedY != speed.Y {
			t.Errorf("level %d: ball speed = (%v, %v), want (%v, %v)", level, b.SpeedX, b.SpeedY, speed.X, speed.Y)
		}
		if b.X != p.Width/2 || b.Y != p.Height/2 || b.R <= 0 {
			t.Errorf("level %d: ball = %+v, want centered with positive radius", level, b)
		}
		if n := g.world.ActiveBricks(); n != p.BrickRows*p.BrickCols {
			t.Errorf("level %d: active bricks = %d, want %d", level, n, p.BrickRows*p.BrickCols)
		}
	}
}

func TestFloorMiss_CountdownRestart(t *testing.T) {
	g := playing(t, 1)
	p := g.Params()
	g.world.Ball = Ball{X: 100, Y: p.Height - p.BallRadius - 4, R: p.BallRadius, SpeedY: 8, Active: true}

	g.Tick(at(0))

	if g.Session().Lives != 2 {
		t.Fatalf("lives = %d, want 2", g.Session().Lives)
	}
	if !g.WaitingForRestart() || g.State() != StatePlaying {
		t.Fatalf("waiting = %v state = %s, want waiting while playing", g.WaitingForRestart(), g.State())
	}

	frozen := g.world.Ball
	g.Tick(at(500))
	if g.world.Ball != frozen {
		t.Error("ball moved during countdown")
	}

	wantCountdown := []int{2, 1, 0}
	for i, want := range wantCountdown {
		g.Tick(at((i + 1) * 1000))
		if g.countdown != want {
			t.Errorf("after %ds countdown = %d, want %d", i+1, g.countdown, want)
		}
	}

	if g.WaitingForRestart() {
		t.Fatal("still waiting after countdown")
	}
	b := g.world.Ball
	if b.X != p.Width/2 || b.Y != p.Height/2 || b.SpeedX != 8 || b.SpeedY != -8 {
		t.Errorf("ball after restart = %+v, want centered with speed (8,-8)", b)
	}
	if g.State() != StatePlaying {
		t.Errorf("state = %s, want playing", g.State())
	}
}

func TestFloorMiss_LastLifeLoses(t *testing.T) {
	g := playing(t, 2)
	p := g.Params()
	g.session.Lives = 1
	g.world.Ball = Ball{X: 100, Y: p.Height - p.BallRadius - 4, R: p.BallRadius, SpeedY: 12, Active: true}

	g.Tick(at(0))

	if g.State() != StateLose {
		t.Errorf("state = %s, want lose", g.State())
	}
	if g.Session().Lives != 0 {
		t.Errorf("lives = %d, want 0", g.Session().Lives)
	}
	if g.WaitingForRestart() {
		t.Error("no countdown should run after the last life")
	}

	mustDispatch(t, g, Retry)
	if s := g.Session(); g.State() != StatePlaying || s.Lives != 3 || s.Level != 2 {
		t.Errorf("after retry state = %s session = %+v", g.State(), s)
	}
}

func TestFloorMiss_StaleCountdownIgnored(t *testing.T) {
	g := playing(t, 1)
	p := g.Params()
	nearFloor := Ball{X: 100, Y: p.Height - p.BallRadius - 4, R: p.BallRadius, SpeedY: 8, Active: true}

	g.world.Ball = nearFloor
	g.Tick(at(0))

	// Leave and come back before the first countdown finishes.
	mustDispatch(t, g, Exit)
	mustDispatch(t, g, Start)
	mustDispatch(t, g, Levels)
	mustDispatch(t, g, SelectLevel(1))

	g.world.Ball = nearFloor
	g.Tick(at(700))
	if !g.WaitingForRestart() || g.countdown != 3 {
		t.Fatalf("waiting = %v countdown = %d after second miss", g.WaitingForRestart(), g.countdown)
	}

	g.Tick(at(1000))
	if g.countdown != 3 {
		t.Errorf("countdown = %d after stale tick, want 3", g.countdown)
	}
	g.Tick(at(3000))
	if !g.WaitingForRestart() {
		t.Error("stale final tick restarted the ball")
	}
	g.Tick(at(3700))
	if g.WaitingForRestart() {
		t.Error("current countdown did not finish")
	}
}

func TestPlatformBounce_Angles(t *testing.T) {
	tests := []struct {
		name  string
		frac  float64
		wantX float64
	}{
		{"left edge", 0, -7.5},
		{"center", 0.5, 0},
		{"right edge", 1, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := playing(t, 1)
			pl := g.world.Platform
			r := g.Params().BallRadius
			// After one frame the ball's bottom edge touches the platform top.
			g.world.Ball = Ball{X: pl.X + tt.frac*pl.W, Y: pl.Y - r - 8, R: r, SpeedY: 8, Active: true}

			g.Tick(at(0))

			b := g.world.Ball
			if b.SpeedX != tt.wantX {
				t.Errorf("speedX = %v, want %v", b.SpeedX, tt.wantX)
			}
			if b.SpeedY >= 0 {
				t.Errorf("speedY = %v, want upward", b.SpeedY)
			}
		})
	}
}

func TestPlatformBounce_NeverDownward(t *testing.T) {
	g := playing(t, 1)
	pl := g.world.Platform
	r := g.Params().BallRadius
	// Moving up while still inside the platform band keeps moving up.
	g.world.Ball = Ball{X: pl.X + pl.W/2, Y: pl.Y - r + 14, R: r, SpeedY: -8, Active: true}

	g.Tick(at(0))

	if g.world.Ball.SpeedY >= 0 {
		t.Errorf("speedY = %v, want negative", g.world.Ball.SpeedY)
	}
}

func TestBrickCollision_SingleReflection(t *testing.T) {
	g := playing(t, 1)
	g.world.Bricks = []Brick{
		{X: 100, Y: 100, W: 80, H: 28, Active: true},
		{X: 190, Y: 100, W: 80, H: 28, Active: true},
		{X: 600, Y: 60, W: 80, H: 28, Active: true},
	}
	// Straddles the gap between the first two bricks.
	g.world.Ball = Ball{X: 185, Y: 150, R: 22, SpeedY: -8, Active: true}

	g.Tick(at(0))

	if g.world.Bricks[0].Active || g.world.Bricks[1].Active {
		t.Error("both overlapped bricks should be destroyed")
	}
	if !g.world.Bricks[2].Active {
		t.Error("distant brick should remain")
	}
	if g.world.Ball.SpeedY != 8 {
		t.Errorf("speedY = %v, want 8 (reflected once)", g.world.Ball.SpeedY)
	}
	if g.Session().Score != 20 {
		t.Errorf("score = %d, want 20", g.Session().Score)
	}
	if g.State() != StatePlaying {
		t.Errorf("state = %s, want playing", g.State())
	}
}

func TestBricks_StayInactiveUntilRestart(t *testing.T) {
	g := playing(t, 1)
	g.world.Bricks[0].Active = false
	g.world.Bricks[5].Active = false

	for i := 0; i < 200 && g.State() == StatePlaying; i++ {
		g.Tick(at(i * 16))
		if g.world.Bricks[0].Active || g.world.Bricks[5].Active {
			t.Fatalf("brick reactivated at frame %d", i)
		}
	}

	mustDispatch(t, g, Exit)
	mustDispatch(t, g, Start)
	mustDispatch(t, g, Levels)
	mustDispatch(t, g, SelectLevel(1))
	if n := g.world.ActiveBricks(); n != len(g.world.Bricks) {
		t.Errorf("active bricks after restart = %d, want %d", n, len(g.world.Bricks))
	}
}

func TestWalls_Reflect(t *testing.T) {
	g := playing(t, 1)
	g.world.Bricks = []Brick{{X: 0, Y: 0, W: 1, H: 1, Active: true}}

	g.world.Ball = Ball{X: 30, Y: 300, R: 22, SpeedX: -10, SpeedY: 0, Active: true}
	g.Tick(at(0))
	if g.world.Ball.SpeedX != 10 {
		t.Errorf("left wall speedX = %v, want 10", g.world.Ball.SpeedX)
	}

	g.world.Ball = Ball{X: 770, Y: 300, R: 22, SpeedX: 10, SpeedY: 0, Active: true}
	g.Tick(at(16))
	if g.world.Ball.SpeedX != -10 {
		t.Errorf("right wall speedX = %v, want -10", g.world.Ball.SpeedX)
	}

	g.world.Ball = Ball{X: 400, Y: 30, R: 22, SpeedX: 0, SpeedY: -10, Active: true}
	g.Tick(at(32))
	if g.world.Ball.SpeedY != 10 {
		t.Errorf("top wall speedY = %v, want 10", g.world.Ball.SpeedY)
	}
}

func TestCompletedLevels_AnyOrder(t *testing.T) {
	g := playing(t, 2)

	clearOnNextTick(g)
	g.Tick(at(0))
	if g.State() != StateWin {
		t.Fatalf("state = %s, want win", g.State())
	}

	mustDispatch(t, g, Levels)
	mustDispatch(t, g, SelectLevel(1))
	clearOnNextTick(g)
	g.Tick(at(16))

	// Winning level 2 again must not count twice.
	mustDispatch(t, g, NextLevel)
	clearOnNextTick(g)
	g.Tick(at(32))
	if g.State() != StateWin {
		t.Fatalf("state = %s after repeating level 2, want win", g.State())
	}
	if got := g.Session().Completed; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("completed = %v, want [1 2]", got)
	}

	mustDispatch(t, g, NextLevel)
	clearOnNextTick(g)
	g.Tick(at(48))
	if g.State() != StateComplete {
		t.Errorf("state = %s, want complete", g.State())
	}
}

func TestLastBrickOnLevel3_Completes(t *testing.T) {
	g := playing(t, 3)
	g.session.Completed = []int{1, 2}

	clearOnNextTick(g)
	g.Tick(at(0))

	if g.State() != StateComplete {
		t.Errorf("state = %s, want complete", g.State())
	}
	if got := g.Session().Completed; len(got) != 3 {
		t.Errorf("completed = %v, want [1 2 3]", got)
	}

	// Leaving the completion screen starts a fresh campaign.
	mustDispatch(t, g, Menu)
	if got := g.Session().Completed; len(got) != 0 {
		t.Errorf("completed after leaving = %v, want empty", got)
	}
}

func TestNextLevel_OnLastLevelIsInvalid(t *testing.T) {
	g := playing(t, 3)

	clearOnNextTick(g)
	g.Tick(at(0))
	if g.State() != StateWin {
		t.Fatalf("state = %s, want win", g.State())
	}
	if err := g.Dispatch(NextLevel, t0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("NextLevel on level 3 error = %v, want ErrInvalidTransition", err)
	}
}

func TestEvents(t *testing.T) {
	g := New(DefaultParams())
	var transitions []State
	g.OnEvent(func(ev Event) {
		if ev.Kind == EventTransition {
			transitions = append(transitions, ev.To)
		}
	})

	mustDispatch(t, g, Start)
	mustDispatch(t, g, Levels)
	mustDispatch(t, g, SelectLevel(1))

	want := []State{StateMenu, StateLevels, StatePlaying}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}
