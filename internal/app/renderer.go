package app

import (
	"log"
	"time"

	"github.com/ayusman/handbreaker/internal/render"
)

// runRenderer draws the latest snapshot at StreamFPS whenever it changed.
func (a *App) runRenderer(stop <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / time.Duration(a.config.StreamFPS))
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		snap, ver := a.Snapshot()
		if ver == last {
			continue
		}
		last = ver

		img := a.renderer.Draw(snap)
		data, err := render.EncodeJPEG(img)
		img.Close()
		if err != nil {
			log.Printf("Error encoding game frame: %v", err)
			continue
		}
		a.setGameFrame(data)
	}
}
