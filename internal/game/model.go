package game

import (
	"slices"
	"time"
)

// MaxLevel is the number of levels; completing all of them ends the game.
const MaxLevel = 3

// Velocity is a per-frame displacement in canvas pixels.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LevelSpeeds seeds the ball velocity when a level starts or the ball is
// reset after a miss.
var LevelSpeeds = map[int]Velocity{
	1: {X: 8, Y: -8},
	2: {X: 12, Y: -12},
	3: {X: 16, Y: -16},
}

// Params is the canonical parameter set of the game.
type Params struct {
	Width  float64
	Height float64

	BallRadius float64

	PlatformWidth  float64
	PlatformHeight float64
	// PlatformOffset is the distance from the canvas bottom to the
	// platform's top edge.
	PlatformOffset float64

	BrickRows    int
	BrickCols    int
	BrickWidth   float64
	BrickHeight  float64
	BrickPadding float64
	BrickTop     float64

	Lives      int
	BrickScore int
	// BounceK scales the horizontal speed off the platform by hit offset.
	BounceK float64

	FistHold       time.Duration
	VHold          time.Duration
	CountdownSteps int
	CountdownStep  time.Duration

	// KeyStep is how far one arrow key press moves the platform.
	KeyStep float64
}

// DefaultParams returns the parameter set the game ships with.
func DefaultParams() Params {
	return Params{
		Width:          800,
		Height:         600,
		BallRadius:     22,
		PlatformWidth:  150,
		PlatformHeight: 20,
		PlatformOffset: 40,
		BrickRows:      3,
		BrickCols:      8,
		BrickWidth:     80,
		BrickHeight:    28,
		BrickPadding:   10,
		BrickTop:       60,
		Lives:          3,
		BrickScore:     10,
		BounceK:        15,
		FistHold:       600 * time.Millisecond,
		VHold:          800 * time.Millisecond,
		CountdownSteps: 3,
		CountdownStep:  time.Second,
		KeyStep:        30,
	}
}

// Ball is the moving ball. X and Y are its center.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	SpeedX float64 `json:"speedX"`
	SpeedY float64 `json:"speedY"`
	Active bool    `json:"active"`
}

// Platform is the player paddle. X and Y are its top-left corner.
type Platform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Brick is one target. Once inactive it stays inactive for the rest of
// the level.
type Brick struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Active bool    `json:"active"`
}

// Session is the per-player bookkeeping.
type Session struct {
	Lives     int   `json:"lives"`
	Score     int   `json:"score"`
	Level     int   `json:"level"`
	Completed []int `json:"completed"`
}

// markCompleted records level n as won. Returns false if it already was.
func (s *Session) markCompleted(n int) bool {
	i, found := slices.BinarySearch(s.Completed, n)
	if found {
		return false
	}
	s.Completed = slices.Insert(s.Completed, i, n)
	return true
}

// reset prepares the session for a fresh attempt at level n. Completed
// levels carry over.
func (s *Session) reset(n, lives int) {
	s.Level = n
	s.Lives = lives
	s.Score = 0
}

func (s Session) clone() Session {
	s.Completed = slices.Clone(s.Completed)
	return s
}

// buildBricks lays out the brick grid horizontally centered.
func buildBricks(p Params) []Brick {
	rowWidth := float64(p.BrickCols)*p.BrickWidth + float64(p.BrickCols-1)*p.BrickPadding
	left := (p.Width - rowWidth) / 2

	bricks := make([]Brick, 0, p.BrickRows*p.BrickCols)
	for r := 0; r < p.BrickRows; r++ {
		for c := 0; c < p.BrickCols; c++ {
			bricks = append(bricks, Brick{
				X:      left + float64(c)*(p.BrickWidth+p.BrickPadding),
				Y:      p.BrickTop + float64(r)*(p.BrickHeight+p.BrickPadding),
				W:      p.BrickWidth,
				H:      p.BrickHeight,
				Active: true,
			})
		}
	}
	return bricks
}

// centeredPlatform returns the platform at the middle of the canvas.
func centeredPlatform(p Params) Platform {
	return Platform{
		X: (p.Width - p.PlatformWidth) / 2,
		Y: p.Height - p.PlatformOffset,
		W: p.PlatformWidth,
		H: p.PlatformHeight,
	}
}

// servedBall returns a ball at the canvas center moving at the level's
// base speed.
func servedBall(p Params, level int) Ball {
	v := LevelSpeeds[level]
	return Ball{
		X:      p.Width / 2,
		Y:      p.Height / 2,
		R:      p.BallRadius,
		SpeedX: v.X,
		SpeedY: v.Y,
		Active: true,
	}
}
