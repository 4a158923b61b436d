// Package detector provides hand landmark detection for the air guitar pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by MediaPipe. The pipeline assigns roles by
// label only: the left hand selects chords, the right hand strums. There is
// no cross-frame hand identity beyond the label.
const (
	HandednessLeft  = "Left"
	HandednessRight = "Right"
)

// Point3D represents a 3D point with x, y in normalized [0,1] frame space
// and z as relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// WristY returns the normalized vertical position of the wrist landmark.
// Y increases downward in image coordinates.
func (h *HandLandmarks) WristY() float64 {
	return h.Points[Wrist].Y
}

// Hands holds the per-frame left/right hand assignment. A nil entry means
// the hand was not detected this frame (or fell below the confidence floor).
type Hands struct {
	Left  *HandLandmarks
	Right *HandLandmarks
}

// SplitHands assigns detected hands to left/right slots by handedness label.
// When MediaPipe reports two hands with the same label, the higher-scoring
// one wins.
func SplitHands(hands []HandLandmarks) Hands {
	var out Hands
	for i := range hands {
		h := &hands[i]
		switch h.Handedness {
		case HandednessLeft:
			if out.Left == nil || h.Score > out.Left.Score {
				out.Left = h
			}
		case HandednessRight:
			if out.Right == nil || h.Score > out.Right.Score {
				out.Right = h
			}
		}
	}
	return out
}
