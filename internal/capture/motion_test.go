package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionDetector_FirstFrameSeedsBaseline(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	detected, percent := m.Detect(&frame)
	if detected {
		t.Error("first frame reported motion")
	}
	if percent != 0 {
		t.Errorf("first frame change percent = %v, want 0", percent)
	}
}

func TestMotionDetector_DetectsChange(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	black := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer white.Close()

	m.Detect(&black)

	// Identical frame: no motion.
	if detected, _ := m.Detect(&black); detected {
		t.Error("identical frame reported motion")
	}

	// Full-frame change: motion.
	detected, percent := m.Detect(&white)
	if !detected {
		t.Errorf("full-frame change not detected (%.1f%% changed)", percent)
	}
}

func TestMotionDetector_NilAndEmptyFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	if detected, _ := m.Detect(nil); detected {
		t.Error("nil frame reported motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if detected, _ := m.Detect(&empty); detected {
		t.Error("empty frame reported motion")
	}
}

func TestMockCamera_Playback(t *testing.T) {
	f1 := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer f1.Close()
	f2 := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1, &f2}, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() on closed camera error = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrPlaybackExhausted) {
		t.Errorf("ReadFrame() after exhaustion error = %v, want ErrPlaybackExhausted", err)
	}

	cam.Reset()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after reset error = %v", err)
	}
	frame.Close()
}
