// Package gesture derives finger states and chord identities from hand landmarks.
package gesture

import "github.com/ayusman/airguitar/internal/detector"

// Finger indices into a FingerStates vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// Default extraction margins in normalized frame units. The margin keeps
// partially-bent fingers from oscillating between extended and curled,
// which would make the chord classifier flicker.
const (
	DefaultFingerMargin = 0.02
	DefaultThumbMargin  = 0.04
)

// FingerStates records which fingers are extended, thumb through pinky.
type FingerStates [NumFingers]bool

// Count returns the number of extended fingers.
func (f FingerStates) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// fingerTips and fingerPIPs are the landmark indices compared during
// extraction, thumb through pinky. The thumb compares tip against IP.
var (
	fingerTips = [NumFingers]int{detector.ThumbTip, detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	fingerPIPs = [NumFingers]int{detector.ThumbIP, detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}
)

// ExtractFingerStates computes the extended/curled state for each finger
// of one hand. A non-thumb finger is extended when its tip sits above the
// PIP joint by more than margin (y decreases upward in image coordinates).
// The thumb extends sideways, so it compares tip and IP laterally against
// thumbMargin instead.
//
// Pure function of the hand record: identical input yields identical output.
func ExtractFingerStates(h *detector.HandLandmarks, margin, thumbMargin float64) FingerStates {
	var states FingerStates
	if h == nil {
		return states
	}

	thumbTip := h.Points[fingerTips[Thumb]]
	thumbIP := h.Points[fingerPIPs[Thumb]]
	dx := thumbTip.X - thumbIP.X
	if dx < 0 {
		dx = -dx
	}
	states[Thumb] = dx > thumbMargin

	for f := Index; f < NumFingers; f++ {
		tip := h.Points[fingerTips[f]]
		pip := h.Points[fingerPIPs[f]]
		states[f] = tip.Y < pip.Y-margin
	}

	return states
}
