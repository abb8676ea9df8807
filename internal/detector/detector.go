package detector

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrUnavailable is returned when no hand detection backend can be started.
// Gesture control is disabled for the session; the game itself keeps running.
var ErrUnavailable = errors.New("hand detection unavailable")

// Detector is the Landmark Source: given a video frame it yields zero or
// more hands, each with 21 normalized landmarks.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect. The game only
	// tracks the first one.
	MaxHands int

	// ModelComplexity selects the landmark model (0 lite, 1 full).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns the detection settings used by the game.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		ModelComplexity: 1,
		MinConfidence:   0.6,
		MinTrackingConf: 0.6,
	}
}
