package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"github.com/ayusman/handbreaker/internal/game"
	"github.com/ayusman/handbreaker/internal/gesture"
	"gocv.io/x/gocv"
)

// Palette used for the procedural sprites and the interface.
var (
	ColorBackground = color.RGBA{R: 18, G: 22, B: 38, A: 255}
	ColorPlatform   = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	ColorBall       = color.RGBA{R: 250, G: 210, B: 70, A: 255}
	ColorBrick      = color.RGBA{R: 210, G: 80, B: 70, A: 255}
	ColorButton     = color.RGBA{R: 50, G: 70, B: 120, A: 255}
	ColorHover      = color.RGBA{R: 90, G: 130, B: 220, A: 255}
	ColorText       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	ColorPointer    = color.RGBA{R: 0, G: 220, B: 255, A: 255}
	ColorDone       = color.RGBA{R: 90, G: 200, B: 120, A: 255}
)

const font = gocv.FontHersheySimplex

var buttonLabels = map[string]string{
	"start":     "Start",
	"levels":    "Levels",
	"exit":      "Exit",
	"back":      "Back",
	"resume":    "Resume",
	"pause":     "Pause",
	"menu":      "Menu",
	"nextLevel": "Next level",
	"retry":     "Retry",
}

// Renderer draws snapshots onto a canvas-sized frame. Sprites are scaled
// once to their on-screen size.
type Renderer struct {
	mu     sync.Mutex
	width  int
	height int

	background gocv.Mat
	platform   gocv.Mat
	ball       gocv.Mat
	ballMask   gocv.Mat
	brick      gocv.Mat
}

// New scales the assets for the given parameters. The renderer does not
// keep a reference to assets.
func New(assets *Assets, p game.Params) *Renderer {
	r := &Renderer{
		width:  int(p.Width),
		height: int(p.Height),
	}
	d := int(2 * p.BallRadius)
	r.background = scaled(assets.Background, r.width, r.height)
	r.platform = scaled(assets.Platform, int(p.PlatformWidth), int(p.PlatformHeight))
	r.ball = scaled(assets.Ball, d, d)
	r.brick = scaled(assets.Brick, int(p.BrickWidth), int(p.BrickHeight))

	r.ballMask = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), d, d, gocv.MatTypeCV8UC1)
	gocv.Circle(&r.ballMask, image.Pt(d/2, d/2), d/2, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	return r
}

func scaled(src gocv.Mat, w, h int) gocv.Mat {
	dst := gocv.NewMat()
	if src.Empty() || w <= 0 || h <= 0 {
		return dst
	}
	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
	return dst
}

// Close releases the scaled sprites.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.background.Close()
	r.platform.Close()
	r.ball.Close()
	r.ballMask.Close()
	r.brick.Close()
}

// Draw renders s into a new BGR Mat. The caller must Close it.
func (r *Renderer) Draw(s game.Snapshot) gocv.Mat {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := gocv.NewMatWithSizeFromScalar(scalar(ColorBackground), r.height, r.width, gocv.MatTypeCV8UC3)
	if !r.background.Empty() {
		r.background.CopyTo(&img)
	}

	switch s.State {
	case game.StatePlaying, game.StatePaused, game.StateWin, game.StateLose:
		r.drawWorld(&img, s)
		r.drawHUD(&img, s)
	}

	switch s.State {
	case game.StateIntro:
		r.title(&img, "HAND BREAKER", 140)
		r.caption(&img, "Pinch index and middle fingers to click", 180)
	case game.StateMenu:
		r.title(&img, "Menu", 160)
	case game.StateLevels:
		r.title(&img, "Select a level", 140)
		r.caption(&img, "Hold a V sign over a level, or pinch to click", 175)
	case game.StatePaused:
		r.panel(&img, "Paused")
	case game.StateWin:
		r.panel(&img, fmt.Sprintf("Level %d cleared!", s.Session.Level))
	case game.StateLose:
		r.panel(&img, "Game over")
	case game.StateComplete:
		r.title(&img, "All levels complete!", 150)
		r.caption(&img, fmt.Sprintf("Final score %d", s.Session.Score), 185)
	}

	if s.State == game.StatePlaying && s.Waiting && s.Countdown > 0 {
		r.centered(&img, strconv.Itoa(s.Countdown), r.height/2+30, 3, 6)
	}

	r.drawRegions(&img, s)
	if s.Pointer != nil {
		p := pt(*s.Pointer)
		gocv.Circle(&img, p, 10, ColorPointer, 2)
		gocv.Circle(&img, p, 3, ColorPointer, -1)
	}
	return img
}

func (r *Renderer) drawWorld(img *gocv.Mat, s game.Snapshot) {
	for _, b := range s.Bricks {
		if !b.Active {
			continue
		}
		rect := image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
		if !paste(img, r.brick, nil, rect.Min) {
			gocv.Rectangle(img, rect, ColorBrick, -1)
			gocv.Rectangle(img, rect, ColorText, 1)
		}
	}

	pl := s.Platform
	rect := image.Rect(int(pl.X), int(pl.Y), int(pl.X+pl.W), int(pl.Y+pl.H))
	if !paste(img, r.platform, nil, rect.Min) {
		gocv.Rectangle(img, rect, ColorPlatform, -1)
	}

	b := s.Ball
	if !b.Active {
		return
	}
	if !paste(img, r.ball, &r.ballMask, image.Pt(int(b.X-b.R), int(b.Y-b.R))) {
		gocv.Circle(img, image.Pt(int(b.X), int(b.Y)), int(b.R), ColorBall, -1)
	}
}

func (r *Renderer) drawHUD(img *gocv.Mat, s game.Snapshot) {
	hud := fmt.Sprintf("Score %d   Lives %d   Level %d", s.Session.Score, s.Session.Lives, s.Session.Level)
	gocv.PutText(img, hud, image.Pt(12, 36), font, 0.8, ColorText, 2)
	status := fmt.Sprintf("%s (%d)", s.Gesture, s.Fingers)
	gocv.PutText(img, status, image.Pt(12, r.height-12), font, 0.6, ColorText, 1)
}

func (r *Renderer) drawRegions(img *gocv.Mat, s game.Snapshot) {
	for _, reg := range s.Regions {
		rect := regionRect(reg)
		fill := ColorButton
		if reg.Name == s.Hovered {
			fill = ColorHover
		}
		gocv.Rectangle(img, rect, fill, -1)
		gocv.Rectangle(img, rect, ColorText, 2)

		label, ok := buttonLabels[reg.Name]
		if !ok {
			label = "Level " + reg.Name
		}
		scale := 0.8
		if reg.H < 50 {
			scale = 0.6
		}
		size := gocv.GetTextSize(label, font, scale, 2)
		org := image.Pt(rect.Min.X+(rect.Dx()-size.X)/2, rect.Min.Y+(rect.Dy()+size.Y)/2)
		gocv.PutText(img, label, org, font, scale, ColorText, 2)

		if n, err := strconv.Atoi(reg.Name); err == nil && completed(s.Session.Completed, n) {
			gocv.PutText(img, "done", image.Pt(rect.Min.X+8, rect.Max.Y-10), font, 0.5, ColorDone, 1)
		}
	}
}

func completed(levels []int, n int) bool {
	for _, l := range levels {
		if l == n {
			return true
		}
	}
	return false
}

// panel draws a centered banner over the playfield.
func (r *Renderer) panel(img *gocv.Mat, text string) {
	gocv.Rectangle(img, image.Rect(0, 110, r.width, 190), ColorBackground, -1)
	r.title(img, text, 165)
}

func (r *Renderer) title(img *gocv.Mat, text string, y int) {
	r.centered(img, text, y, 1.6, 3)
}

func (r *Renderer) caption(img *gocv.Mat, text string, y int) {
	r.centered(img, text, y, 0.6, 1)
}

func (r *Renderer) centered(img *gocv.Mat, text string, y int, scale float64, thickness int) {
	size := gocv.GetTextSize(text, font, scale, thickness)
	gocv.PutText(img, text, image.Pt((r.width-size.X)/2, y), font, scale, ColorText, thickness)
}

// paste copies src onto dst with its top-left corner at at, clipped to dst.
// Reports false when src is empty and nothing was drawn.
func paste(dst *gocv.Mat, src gocv.Mat, mask *gocv.Mat, at image.Point) bool {
	if src.Empty() {
		return false
	}
	target := image.Rect(at.X, at.Y, at.X+src.Cols(), at.Y+src.Rows()).
		Intersect(image.Rect(0, 0, dst.Cols(), dst.Rows()))
	if target.Empty() {
		return true
	}
	srcRect := target.Sub(at)

	roi := dst.Region(target)
	defer roi.Close()
	part := src.Region(srcRect)
	defer part.Close()

	if mask == nil {
		part.CopyTo(&roi)
		return true
	}
	maskPart := mask.Region(srcRect)
	defer maskPart.Close()
	part.CopyToWithMask(&roi, maskPart)
	return true
}

func regionRect(r gesture.Region) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}

func pt(p gesture.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

func scalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}
