package gesture

import "time"

// Click defaults.
const (
	DefaultClickDistance = 40.0
	DefaultClickDebounce = 500 * time.Millisecond
)

// ClickDetector registers a click when the index and middle fingertips
// come together. After a click, further clicks are ignored for Debounce so
// a held pinch does not repeat-fire.
type ClickDetector struct {
	Distance float64
	Debounce time.Duration
	last     time.Time
}

// NewClickDetector returns a detector with the default distance and debounce.
func NewClickDetector() *ClickDetector {
	return &ClickDetector{
		Distance: DefaultClickDistance,
		Debounce: DefaultClickDebounce,
	}
}

// Detect reports whether this sample is a new click.
func (c *ClickDetector) Detect(indexTip, middleTip Point, now time.Time) bool {
	if indexTip.Dist(middleTip) >= c.Distance {
		return false
	}
	if !c.last.IsZero() && now.Sub(c.last) < c.Debounce {
		return false
	}
	c.last = now
	return true
}

// HoldTimer tracks how long a condition has been continuously true.
// It fires once per hold; releasing the condition resets it.
type HoldTimer struct {
	Hold  time.Duration
	start time.Time
	fired bool
}

// Update records whether the condition holds at now and reports whether
// the hold duration was just reached.
func (h *HoldTimer) Update(holding bool, now time.Time) bool {
	if !holding {
		h.Reset()
		return false
	}
	if h.start.IsZero() {
		h.start = now
	}
	if h.fired || now.Sub(h.start) < h.Hold {
		return false
	}
	h.fired = true
	return true
}

// Held returns how long the condition has been held, or zero.
func (h *HoldTimer) Held(now time.Time) time.Duration {
	if h.start.IsZero() {
		return 0
	}
	return now.Sub(h.start)
}

// Active reports whether a hold is in progress.
func (h *HoldTimer) Active() bool {
	return !h.start.IsZero()
}

// Reset clears the timer.
func (h *HoldTimer) Reset() {
	h.start = time.Time{}
	h.fired = false
}
