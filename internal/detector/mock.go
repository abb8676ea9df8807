package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset hands are a right hand, palm toward the camera, in unmirrored
// camera space: wrist at the bottom, fingers pointing up (smaller Y).

func presetHand(thumbOut, index, middle, ring, pinky bool) HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	if thumbOut {
		h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
		h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
		h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}
	} else {
		// Tucked across the palm.
		h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: -0.02}
		h.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.68, Z: -0.04}
		h.Points[ThumbTip] = Point3D{X: 0.56, Y: 0.66, Z: -0.05}
	}

	setFinger(&h, IndexMCP, Point3D{X: 0.55, Y: 0.68}, index)
	setFinger(&h, MiddleMCP, Point3D{X: 0.50, Y: 0.66}, middle)
	setFinger(&h, RingMCP, Point3D{X: 0.45, Y: 0.68}, ring)
	setFinger(&h, PinkyMCP, Point3D{X: 0.40, Y: 0.70}, pinky)

	return h
}

// setFinger fills the MCP, PIP, DIP and tip landmarks of one finger.
// A curled finger folds its tip back below the PIP joint.
func setFinger(h *HandLandmarks, mcpIdx int, mcp Point3D, extended bool) {
	h.Points[mcpIdx] = mcp
	if extended {
		h.Points[mcpIdx+1] = Point3D{X: mcp.X, Y: mcp.Y - 0.13}
		h.Points[mcpIdx+2] = Point3D{X: mcp.X, Y: mcp.Y - 0.23}
		h.Points[mcpIdx+3] = Point3D{X: mcp.X, Y: mcp.Y - 0.33}
		return
	}
	h.Points[mcpIdx+1] = Point3D{X: mcp.X, Y: mcp.Y - 0.02, Z: -0.05}
	h.Points[mcpIdx+2] = Point3D{X: mcp.X - 0.02, Y: mcp.Y, Z: -0.04}
	h.Points[mcpIdx+3] = Point3D{X: mcp.X - 0.03, Y: mcp.Y + 0.02, Z: -0.02}
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := presetHand(true, true, true, true, true)
	h.Points[IndexTip].X += 0.03
	h.Points[IndexDIP].X += 0.02
	return h
}

// FistLandmarks returns a closed hand: every finger curled, thumb tucked.
func FistLandmarks() HandLandmarks {
	return presetHand(false, false, false, false, false)
}

// PointingLandmarks returns a hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	return presetHand(false, true, false, false, false)
}

// VLandmarks returns the level confirmation gesture: index and middle
// extended and spread apart, ring and pinky curled.
func VLandmarks() HandLandmarks {
	h := presetHand(false, true, true, false, false)
	h.Points[IndexTip].X += 0.06
	h.Points[IndexDIP].X += 0.04
	h.Points[MiddleTip].X -= 0.06
	h.Points[MiddleDIP].X -= 0.04
	return h
}

// PinchLandmarks returns index and middle extended with their tips
// touching, which registers as a click.
func PinchLandmarks() HandLandmarks {
	h := presetHand(false, true, true, false, false)
	tip := Point3D{X: 0.525, Y: h.Points[IndexTip].Y}
	h.Points[IndexTip] = tip
	h.Points[MiddleTip] = Point3D{X: 0.525, Y: tip.Y + 0.01}
	return h
}

// Translate returns a copy of h shifted by (dx, dy) in normalized space.
func Translate(h HandLandmarks, dx, dy float64) HandLandmarks {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}
