package game

import "math"

// World is the simulated geometry of one level.
type World struct {
	Ball     Ball
	Platform Platform
	Bricks   []Brick
}

// StepResult reports what happened during one physics frame.
type StepResult struct {
	FloorMiss bool
	WallHit   bool
	PaddleHit bool
	BricksHit int
	Cleared   bool
}

// Step advances the world by one frame. Collision is discrete: at high
// speed the ball can pass through geometry thinner than its per-frame
// displacement.
func (w *World) Step(p Params) StepResult {
	var res StepResult
	b := &w.Ball

	b.X += b.SpeedX
	b.Y += b.SpeedY

	// Reflect toward the inside so a ball that overshoots a wall cannot
	// flip back and forth on consecutive frames.
	if b.X-b.R <= 0 {
		b.SpeedX = math.Abs(b.SpeedX)
		res.WallHit = true
	} else if b.X+b.R >= p.Width {
		b.SpeedX = -math.Abs(b.SpeedX)
		res.WallHit = true
	}
	if b.Y-b.R <= 0 {
		b.SpeedY = math.Abs(b.SpeedY)
		res.WallHit = true
	}

	if b.Y+b.R >= p.Height {
		res.FloorMiss = true
		return res
	}

	if w.hitsPlatform() {
		pl := w.Platform
		hit := (b.X - pl.X) / pl.W
		b.SpeedY = -math.Abs(b.SpeedY)
		b.SpeedX = p.BounceK * (hit - 0.5)
		res.PaddleHit = true
	}

	for i := range w.Bricks {
		br := &w.Bricks[i]
		if !br.Active || !overlaps(b, br) {
			continue
		}
		br.Active = false
		res.BricksHit++
	}
	// One reflection per frame even when the ball clips two bricks, so
	// the hits do not cancel out.
	if res.BricksHit > 0 {
		b.SpeedY = -b.SpeedY
	}

	res.Cleared = w.ActiveBricks() == 0
	return res
}

// hitsPlatform reports whether the ball's lower edge is inside the
// platform's vertical band with its center over the platform.
func (w *World) hitsPlatform() bool {
	b, pl := w.Ball, w.Platform
	bottom := b.Y + b.R
	return bottom >= pl.Y && bottom <= pl.Y+pl.H && b.X >= pl.X && b.X <= pl.X+pl.W
}

func overlaps(b *Ball, br *Brick) bool {
	return b.X+b.R > br.X && b.X-b.R < br.X+br.W &&
		b.Y+b.R > br.Y && b.Y-b.R < br.Y+br.H
}

// ActiveBricks counts bricks still standing.
func (w *World) ActiveBricks() int {
	n := 0
	for _, br := range w.Bricks {
		if br.Active {
			n++
		}
	}
	return n
}

// MovePlatform centers the platform on x, kept inside the canvas.
func (w *World) MovePlatform(x, width float64) {
	pl := &w.Platform
	pl.X = math.Max(0, math.Min(x-pl.W/2, width-pl.W))
}
