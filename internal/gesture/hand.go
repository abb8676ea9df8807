// Package gesture turns raw hand landmarks into the discrete facts the game
// reacts to: where the hand points, how many fingers are up, fist, V, and
// pinch clicks.
package gesture

import (
	"math"

	"github.com/ayusman/handbreaker/internal/detector"
)

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Location holds the three projected keypoints the game uses.
type Location struct {
	IndexTip  Point `json:"indexTip"`
	MiddleTip Point `json:"middleTip"`
	PalmBase  Point `json:"palmBase"`
}

// Locate projects the index tip, middle tip and palm base (middle MCP)
// onto a width x height canvas. X is mirrored so that moving the hand
// right in front of a front-facing camera moves right on screen.
func Locate(h *detector.HandLandmarks, width, height float64) Location {
	project := func(i int) Point {
		p := h.Points[i]
		return Point{X: (1 - p.X) * width, Y: p.Y * height}
	}
	return Location{
		IndexTip:  project(detector.IndexTip),
		MiddleTip: project(detector.MiddleTip),
		PalmBase:  project(detector.MiddleMCP),
	}
}

// fingerUp reports whether a non-thumb finger is extended: its tip sits
// above (smaller Y than) its proximal joint.
func fingerUp(h *detector.HandLandmarks, finger int) bool {
	f := detector.Fingers[finger]
	return h.Points[f.Tip].Y < h.Points[f.PIP].Y
}

// thumbUp compares on X only: the thumb is out when its tip is farther
// from the pinky side of the palm than its IP joint. This holds for both
// hands without consulting handedness.
func thumbUp(h *detector.HandLandmarks) bool {
	base := h.Points[detector.PinkyMCP].X
	tip := math.Abs(h.Points[detector.ThumbTip].X - base)
	ip := math.Abs(h.Points[detector.ThumbIP].X - base)
	return tip > ip
}

// CountFingersUp returns the number of extended fingers, 0 to 5.
func CountFingersUp(h *detector.HandLandmarks) int {
	n := 0
	for i := range detector.Fingers {
		if fingerUp(h, i) {
			n++
		}
	}
	if thumbUp(h) {
		n++
	}
	return n
}

// IsFist reports whether at least three of the four non-thumb fingers are
// bent.
func IsFist(h *detector.HandLandmarks) bool {
	bent := 0
	for i := range detector.Fingers {
		if !fingerUp(h, i) {
			bent++
		}
	}
	return bent >= 3
}

// IsVGesture reports index and middle extended with ring and pinky bent.
func IsVGesture(h *detector.HandLandmarks) bool {
	return fingerUp(h, 0) && fingerUp(h, 1) && !fingerUp(h, 2) && !fingerUp(h, 3)
}

// isPointing reports the index finger alone extended.
func isPointing(h *detector.HandLandmarks) bool {
	return fingerUp(h, 0) && !fingerUp(h, 1) && !fingerUp(h, 2) && !fingerUp(h, 3)
}
