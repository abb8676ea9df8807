package gesture

import (
	"fmt"
	"time"

	"github.com/ayusman/handbreaker/internal/detector"
)

// Facts is everything the game learns from one processed camera frame.
type Facts struct {
	Present bool `json:"present"`
	Location
	Fingers int    `json:"fingers"`
	Fist    bool   `json:"fist"`
	V       bool   `json:"v"`
	Click   bool   `json:"click"`
	Label   string `json:"label"`
}

// Interpreter converts landmark frames into Facts for a canvas of the
// given size. It keeps the click debounce across frames.
type Interpreter struct {
	width  float64
	height float64
	click  *ClickDetector
}

// NewInterpreter creates an interpreter projecting onto width x height.
func NewInterpreter(width, height float64) *Interpreter {
	return &Interpreter{
		width:  width,
		height: height,
		click:  NewClickDetector(),
	}
}

// Interpret reads the first hand, if any. Additional hands are ignored.
func (in *Interpreter) Interpret(hands []detector.HandLandmarks, now time.Time) Facts {
	if len(hands) == 0 {
		return Facts{Label: "No hand"}
	}
	h := &hands[0]

	f := Facts{
		Present:  true,
		Location: Locate(h, in.width, in.height),
		Fingers:  CountFingersUp(h),
		Fist:     IsFist(h),
		V:        IsVGesture(h),
	}
	f.Click = in.click.Detect(f.IndexTip, f.MiddleTip, now)
	f.Label = label(h, f)
	return f
}

func label(h *detector.HandLandmarks, f Facts) string {
	switch {
	case f.Click:
		return "Click"
	case f.V:
		return "V"
	case isPointing(h):
		return "Pointing"
	case f.Fist:
		return "Fist"
	case f.Fingers == 5:
		return "Open hand"
	case f.Fingers == 1:
		return "1 finger"
	default:
		return fmt.Sprintf("%d fingers", f.Fingers)
	}
}
