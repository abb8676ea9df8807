// Package render draws game snapshots and camera overlays into gocv Mats.
package render

import (
	"log"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Asset file names looked up in the asset directory.
const (
	BackgroundFile = "background.png"
	PlatformFile   = "platform.png"
	BallFile       = "ball.png"
	BrickFile      = "brick.png"
)

// Assets holds the decoded sprite images. A sprite that failed to load is
// an empty Mat and is drawn procedurally instead.
type Assets struct {
	Background gocv.Mat
	Platform   gocv.Mat
	Ball       gocv.Mat
	Brick      gocv.Mat
}

// LoadAssets reads the sprites from dir. Missing or unreadable files are
// logged and left empty; loading never fails.
func LoadAssets(dir string) *Assets {
	return &Assets{
		Background: loadImage(dir, BackgroundFile),
		Platform:   loadImage(dir, PlatformFile),
		Ball:       loadImage(dir, BallFile),
		Brick:      loadImage(dir, BrickFile),
	}
}

// NoAssets returns an asset set that draws everything procedurally.
func NoAssets() *Assets {
	return &Assets{
		Background: gocv.NewMat(),
		Platform:   gocv.NewMat(),
		Ball:       gocv.NewMat(),
		Brick:      gocv.NewMat(),
	}
}

func loadImage(dir, name string) gocv.Mat {
	if dir == "" {
		return gocv.NewMat()
	}
	path := filepath.Join(dir, name)
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		log.Printf("Asset %s unavailable, using fallback", path)
	}
	return img
}

// Loaded reports how many sprites were decoded.
func (a *Assets) Loaded() int {
	n := 0
	for _, m := range []*gocv.Mat{&a.Background, &a.Platform, &a.Ball, &a.Brick} {
		if !m.Empty() {
			n++
		}
	}
	return n
}

// Close releases the decoded images.
func (a *Assets) Close() {
	a.Background.Close()
	a.Platform.Close()
	a.Ball.Close()
	a.Brick.Close()
}
