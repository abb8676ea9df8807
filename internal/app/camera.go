package app

import (
	"errors"
	"log"
	"time"

	"github.com/ayusman/handbreaker/internal/capture"
	"github.com/ayusman/handbreaker/internal/gesture"
	"github.com/ayusman/handbreaker/internal/render"
)

// runCamera owns the camera device. It acquires and releases it on
// request and, while acquired, turns each frame into gesture facts.
//
// The frame rate follows the motion gate: IdleFPS until motion is seen,
// ActiveFPS until IdleTimeout passes without motion.
func (a *App) runCamera(stop <-chan struct{}) {
	defer a.wg.Done()

	open := false
	ticker := time.NewTicker(time.Second / time.Duration(capture.IdleFPS))
	defer ticker.Stop()

	// A request may have arrived before the goroutine started.
	a.requestCamera(a.wantCamera.Load())

	for {
		select {
		case <-stop:
			if open {
				a.releaseCamera()
			}
			return

		case <-a.camWake:
			want := a.wantCamera.Load()
			switch {
			case want && !open:
				if err := a.camera.Open(); err != nil {
					log.Printf("Camera unavailable, continuing without gestures: %v", err)
					continue
				}
				open = true
				a.camera.SetFPS(capture.IdleFPS)
				ticker.Reset(time.Second / time.Duration(capture.IdleFPS))
				log.Println("Camera acquired")
			case !want && open:
				a.releaseCamera()
				open = false
			}

		case <-ticker.C:
			if !open {
				continue
			}
			if fps, changed := a.processFrame(a.config.Clock()); changed {
				a.camera.SetFPS(fps)
				ticker.Reset(time.Second / time.Duration(fps))
			}
		}
	}
}

func (a *App) releaseCamera() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Reset()
	a.sendFacts(gesture.Facts{Label: "No hand"})
	a.setCameraFrame(nil)
	log.Println("Camera released")
}

// processFrame reads, gates and interprets one frame. Returns the new
// camera frame rate when the motion mode changed.
func (a *App) processFrame(now time.Time) (fps int, changed bool) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		if !errors.Is(err, capture.ErrEmptyFrame) {
			log.Printf("Error reading frame: %v", err)
		}
		return 0, false
	}
	defer frame.Close()

	active, changed := a.motion.Observe(frame, now)
	if changed {
		if active {
			log.Println("Switched to active mode")
		} else {
			log.Println("Switched to idle mode")
		}
	}

	if !a.IsEnabled() {
		a.sendFacts(gesture.Facts{Label: "No hand"})
		return a.motion.FPS(), changed
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}
	a.sendFacts(a.interp.Interpret(hands, now))

	render.DrawHands(frame, hands)
	if data, err := render.EncodeJPEG(*frame); err == nil {
		a.setCameraFrame(data)
	}
	return a.motion.FPS(), changed
}

// sendFacts hands the newest facts to the loop, replacing any the loop
// has not picked up yet.
func (a *App) sendFacts(f gesture.Facts) {
	select {
	case a.facts <- f:
		return
	default:
	}
	select {
	case <-a.facts:
	default:
	}
	select {
	case a.facts <- f:
	default:
	}
}
