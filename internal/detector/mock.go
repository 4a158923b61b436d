package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// QueueFrames sets a per-frame sequence of detection results. Each Detect
// call consumes one entry; once the queue is drained, Detect falls back to
// the hands set via SetHands.
func (m *MockDetector) QueueFrames(frames [][]HandLandmarks) {
	m.queue = frames
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger layout constants for synthetic poses. Knuckle columns run from
// index to pinky, right to left in frame space.
var (
	poseKnuckleX = [4]float64{0.55, 0.50, 0.45, 0.40}
	poseMCPY     = [4]float64{0.68, 0.66, 0.68, 0.70}
)

// PoseLandmarks builds a synthetic HandLandmarks for the given handedness
// with the requested fingers extended (thumb, index, middle, ring, pinky).
// Extended non-thumb fingers place the tip well above the PIP joint;
// curled fingers place it below. The thumb extends laterally.
func PoseLandmarks(handedness string, fingers [5]bool) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb chain
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.70, Z: 0.0}
	if fingers[0] {
		lm.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.68, Z: 0.0}
	} else {
		lm.Points[ThumbTip] = Point3D{X: 0.61, Y: 0.70, Z: 0.0}
	}

	// Non-thumb fingers: MCP, PIP, DIP, Tip per finger starting at IndexMCP.
	for f := 0; f < 4; f++ {
		base := IndexMCP + f*4
		x := poseKnuckleX[f]
		mcpY := poseMCPY[f]
		pipY := mcpY - 0.08

		lm.Points[base] = Point3D{X: x, Y: mcpY, Z: 0.0}
		lm.Points[base+1] = Point3D{X: x, Y: pipY, Z: 0.0}
		if fingers[f+1] {
			lm.Points[base+2] = Point3D{X: x, Y: pipY - 0.10, Z: 0.0}
			lm.Points[base+3] = Point3D{X: x, Y: pipY - 0.20, Z: 0.0}
		} else {
			lm.Points[base+2] = Point3D{X: x - 0.02, Y: pipY + 0.03, Z: -0.03}
			lm.Points[base+3] = Point3D{X: x - 0.04, Y: pipY + 0.06, Z: -0.02}
		}
	}

	return lm
}

// FistLandmarks returns a left-hand fist (no fingers extended).
func FistLandmarks() HandLandmarks {
	return PoseLandmarks(HandednessLeft, [5]bool{})
}

// OpenPalmLandmarks returns a left-hand open palm (all fingers extended).
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks(HandednessLeft, [5]bool{true, true, true, true, true})
}

// RockSignLandmarks returns a left-hand rock sign: index and pinky
// extended, middle and ring curled, thumb curled.
func RockSignLandmarks() HandLandmarks {
	return PoseLandmarks(HandednessLeft, [5]bool{false, true, false, false, true})
}

// SideRockLandmarks returns a left-hand side rock: thumb, index and pinky
// extended, middle and ring curled.
func SideRockLandmarks() HandLandmarks {
	return PoseLandmarks(HandednessLeft, [5]bool{true, true, false, false, true})
}

// StrumHandLandmarks returns a right-hand record with the wrist at the
// given normalized vertical position. The rest of the hand trails the
// wrist with fixed offsets.
func StrumHandLandmarks(wristY float64) HandLandmarks {
	lm := PoseLandmarks(HandednessRight, [5]bool{})
	dy := wristY - lm.Points[Wrist].Y
	for i := 0; i < NumLandmarks; i++ {
		lm.Points[i].Y += dy
	}
	return lm
}
