package game

import (
	"strconv"

	"github.com/ayusman/handbreaker/internal/gesture"
)

// Button geometry for the menu screens.
const (
	buttonW   = 240
	buttonH   = 60
	buttonY   = 220
	buttonGap = 80
)

// Regions returns the clickable controls visible on the current screen.
func (g *Game) Regions() []gesture.Region {
	switch g.state {
	case StateIntro:
		return g.column("start")
	case StateMenu:
		return g.column("levels", "exit")
	case StateLevels:
		return g.levelOptions()
	case StatePlaying:
		return []gesture.Region{{Name: "pause", X: g.params.Width - 110, Y: 10, W: 100, H: 40, Z: 1}}
	case StatePaused:
		return g.column("resume", "menu", "exit")
	case StateWin:
		if g.session.Level < MaxLevel {
			return g.column("nextLevel", "levels", "menu")
		}
		return g.column("levels", "menu")
	case StateLose:
		return g.column("retry", "menu")
	case StateComplete:
		return g.column("menu", "exit")
	}
	return nil
}

// column stacks buttons centered on the canvas.
func (g *Game) column(names ...string) []gesture.Region {
	x := (g.params.Width - buttonW) / 2
	regions := make([]gesture.Region, len(names))
	for i, name := range names {
		regions[i] = gesture.Region{
			Name: name,
			X:    x,
			Y:    buttonY + float64(i)*buttonGap,
			W:    buttonW,
			H:    buttonH,
		}
	}
	return regions
}

// levelOptions lays out one tile per level plus a back button.
func (g *Game) levelOptions() []gesture.Region {
	const tileW, tileH, gap = 160.0, 120.0, 40.0
	left := (g.params.Width - (MaxLevel*tileW + (MaxLevel-1)*gap)) / 2

	regions := make([]gesture.Region, 0, MaxLevel+1)
	for n := 1; n <= MaxLevel; n++ {
		regions = append(regions, gesture.Region{
			Name: strconv.Itoa(n),
			X:    left + float64(n-1)*(tileW+gap),
			Y:    200,
			W:    tileW,
			H:    tileH,
		})
	}
	regions = append(regions, gesture.Region{
		Name: "back",
		X:    (g.params.Width - buttonW) / 2,
		Y:    420,
		W:    buttonW,
		H:    buttonH,
	})
	return regions
}
