package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/handbreaker/internal/detector"
	"gocv.io/x/gocv"
)

var (
	colorBone  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorJoint = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// DrawHands draws the landmark skeleton of each hand onto a camera frame.
// Landmarks are normalized to the frame size.
func DrawHands(frame *gocv.Mat, hands []detector.HandLandmarks) {
	w, h := float64(frame.Cols()), float64(frame.Rows())
	for i := range hands {
		pts := hands[i].Points
		px := func(idx int) image.Point {
			return image.Pt(int(pts[idx].X*w), int(pts[idx].Y*h))
		}
		for _, c := range detector.Connections {
			gocv.Line(frame, px(c[0]), px(c[1]), colorBone, 2)
		}
		for idx := range pts {
			gocv.Circle(frame, px(idx), 4, colorJoint, -1)
		}
	}
}

// EncodeJPEG encodes img for the MJPEG streams.
func EncodeJPEG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory that Close frees.
	data := buf.GetBytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
