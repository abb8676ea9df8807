package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Frame differencing parameters.
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21).
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection.
	DiffThreshold = 25
)

// Frame rates and hold time for the motion gate.
const (
	IdleFPS     = 5
	ActiveFPS   = 30
	IdleTimeout = 2 * time.Second
)

// MotionGate decides whether the camera should run at the active or idle
// frame rate. Any motion switches to active; IdleTimeout without motion
// switches back.
type MotionGate struct {
	mu          sync.Mutex
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	active      bool
	lastMotion  time.Time
}

// NewMotionGate creates a gate that treats more than threshold percent of
// changed pixels as motion. A non-positive threshold uses 1%.
func NewMotionGate(threshold float64) *MotionGate {
	if threshold <= 0 {
		threshold = 1.0
	}
	return &MotionGate{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe feeds one frame into the gate and returns the current mode and
// whether it just changed.
func (g *MotionGate) Observe(frame *gocv.Mat, now time.Time) (active, changed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	moved, _ := g.diff(frame)
	if moved {
		g.lastMotion = now
		if !g.active {
			g.active = true
			return true, true
		}
		return true, false
	}

	if g.active && now.Sub(g.lastMotion) > IdleTimeout {
		g.active = false
		return false, true
	}
	return g.active, false
}

// FPS returns the camera rate for the current mode.
func (g *MotionGate) FPS() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active {
		return ActiveFPS
	}
	return IdleFPS
}

// diff compares frame against the previous one. The first frame only sets
// the baseline. Returns whether motion exceeded the threshold and the
// percentage of changed pixels.
func (g *MotionGate) diff(frame *gocv.Mat) (bool, float64) {
	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return false, 0
	}

	delta := gocv.NewMat()
	defer delta.Close()
	gocv.AbsDiff(blurred, g.prevGray, &delta)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(delta, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0
	blurred.CopyTo(&g.prevGray)

	return changed > g.threshold, changed
}

// Reset forgets the baseline frame and returns to idle. Called when the
// camera is released so a re-acquired device starts fresh.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prevGray.Close()
	g.prevGray = gocv.NewMat()
	g.initialized = false
	g.active = false
}

// Close releases the baseline frame.
func (g *MotionGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prevGray.Close()
	g.initialized = false
}
