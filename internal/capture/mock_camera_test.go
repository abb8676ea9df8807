package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		f.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("ReadFrame() after last frame error = %v, want %v", err, ErrEmptyFrame)
	}
}

func TestMockCamera_Loop(t *testing.T) {
	cam := NewBlankMockCamera(64, 48)
	defer cam.Release()

	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		if f.Cols() != 64 || f.Rows() != 48 {
			t.Errorf("frame size = %dx%d, want 64x48", f.Cols(), f.Rows())
		}
		f.Close()
	}
}

func TestMockCamera_ReacquireDoesNotLeak(t *testing.T) {
	cam := NewBlankMockCamera(32, 24)
	defer cam.Release()

	for i := 0; i < 3; i++ {
		if err := cam.Open(); err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		// A second Open while acquired must not create another track.
		if err := cam.Open(); err != nil {
			t.Fatalf("repeated Open() error = %v", err)
		}
		if err := cam.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	opens, closes := cam.Acquisitions()
	if opens != 3 || closes != 3 {
		t.Errorf("acquisitions = %d opens / %d closes, want 3 / 3", opens, closes)
	}
	if cam.IsOpen() {
		t.Error("camera should be released")
	}
}

func TestMockCamera_OpenError(t *testing.T) {
	cam := NewBlankMockCamera(32, 24)
	defer cam.Release()

	denied := errors.New("permission denied")
	cam.SetOpenError(denied)

	if err := cam.Open(); !errors.Is(err, denied) {
		t.Errorf("Open() error = %v, want %v", err, denied)
	}
	if cam.IsOpen() {
		t.Error("camera should not be open after failed Open")
	}
}
