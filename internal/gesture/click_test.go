package gesture

import (
	"testing"
	"time"
)

func TestClickDetector(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	near := Point{X: 100, Y: 100}
	touching := Point{X: 110, Y: 120}
	apart := Point{X: 200, Y: 100}

	t.Run("far apart never clicks", func(t *testing.T) {
		c := NewClickDetector()
		if c.Detect(near, apart, start) {
			t.Error("expected no click for distant fingertips")
		}
	})

	t.Run("exact threshold does not click", func(t *testing.T) {
		c := NewClickDetector()
		if c.Detect(Point{0, 0}, Point{40, 0}, start) {
			t.Error("distance equal to threshold should not click")
		}
	})

	t.Run("debounces repeat clicks", func(t *testing.T) {
		c := NewClickDetector()
		if !c.Detect(near, touching, start) {
			t.Fatal("expected first click")
		}
		if c.Detect(near, touching, start.Add(100*time.Millisecond)) {
			t.Error("click within debounce window should be ignored")
		}
		if c.Detect(near, touching, start.Add(499*time.Millisecond)) {
			t.Error("click just before debounce expiry should be ignored")
		}
		if !c.Detect(near, touching, start.Add(500*time.Millisecond)) {
			t.Error("click after debounce should register")
		}
	})
}

func TestHoldTimer(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fires once after hold", func(t *testing.T) {
		h := HoldTimer{Hold: 600 * time.Millisecond}
		fires := 0
		for ms := 0; ms <= 1500; ms += 50 {
			if h.Update(true, start.Add(time.Duration(ms)*time.Millisecond)) {
				fires++
				if ms != 600 {
					t.Errorf("fired at %dms, want 600ms", ms)
				}
			}
		}
		if fires != 1 {
			t.Errorf("fired %d times, want 1", fires)
		}
	})

	t.Run("release resets", func(t *testing.T) {
		h := HoldTimer{Hold: 600 * time.Millisecond}
		h.Update(true, start)
		h.Update(true, start.Add(500*time.Millisecond))
		h.Update(false, start.Add(550*time.Millisecond))

		if h.Active() {
			t.Error("timer should be inactive after release")
		}
		if h.Update(true, start.Add(700*time.Millisecond)) {
			t.Error("hold restarted at 700ms must not fire immediately")
		}
		if got := h.Held(start.Add(900 * time.Millisecond)); got != 200*time.Millisecond {
			t.Errorf("Held() = %v, want 200ms", got)
		}
		if !h.Update(true, start.Add(1300*time.Millisecond)) {
			t.Error("expected fire 600ms after restart")
		}
	})
}
