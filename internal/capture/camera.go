// Package capture provides camera capture for the air guitar pipeline using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings. The pipeline plays at 30 FPS; the app layer
// drops the rate to idle when no motion is seen.
const (
	DefaultFPS    = 30
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Sentinel capture errors.
var (
	ErrCameraNotOpen = errors.New("camera is not open")
	ErrEmptyFrame    = errors.New("captured frame is empty")
)

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// deviceCamera captures from a physical device. Every frame is mirrored
// horizontally before it leaves this package: the player faces the camera,
// and an unmirrored preview makes strumming feel backwards.
type deviceCamera struct {
	id     int
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	fps    int
	width  int
	height int
}

// NewCamera creates a Camera for the given device ID at the default
// resolution.
func NewCamera(deviceID int) Camera {
	return &deviceCamera{
		id:     deviceID,
		fps:    DefaultFPS,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Open acquires the device. Opening an already-open camera is a no-op.
func (c *deviceCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap != nil {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.id)
	if err != nil {
		return err
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	cap.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.cap = cap
	return nil
}

// Close releases the device.
func (c *deviceCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return nil
	}

	err := c.cap.Close()
	c.cap = nil
	return err
}

// ReadFrame grabs the next frame, mirrored. The caller owns the returned
// Mat and must Close it.
func (c *deviceCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if !c.cap.Read(&mat) || mat.Empty() {
		mat.Close()
		if c.cap == nil {
			return nil, ErrCameraNotOpen
		}
		return nil, ErrEmptyFrame
	}

	gocv.Flip(mat, &mat, 1)
	return &mat, nil
}

// SetFPS adjusts the capture rate. Non-positive values are ignored.
func (c *deviceCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.cap != nil {
		c.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current capture rate setting.
func (c *deviceCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether the device is currently acquired.
func (c *deviceCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cap != nil
}
