package gesture

import (
	"testing"

	"github.com/ayusman/airguitar/internal/detector"
)

func TestExtractFingerStates_Fist(t *testing.T) {
	fist := detector.FistLandmarks()
	states := ExtractFingerStates(&fist, DefaultFingerMargin, DefaultThumbMargin)

	for f := 0; f < NumFingers; f++ {
		if states[f] {
			t.Errorf("finger %d reported extended on a fist", f)
		}
	}
	if states.Count() != 0 {
		t.Errorf("Count() = %d, want 0", states.Count())
	}
}

func TestExtractFingerStates_OpenPalm(t *testing.T) {
	palm := detector.OpenPalmLandmarks()
	states := ExtractFingerStates(&palm, DefaultFingerMargin, DefaultThumbMargin)

	if states.Count() != NumFingers {
		t.Errorf("Count() = %d, want %d (states: %v)", states.Count(), NumFingers, states)
	}
}

func TestExtractFingerStates_RockSign(t *testing.T) {
	rock := detector.RockSignLandmarks()
	states := ExtractFingerStates(&rock, DefaultFingerMargin, DefaultThumbMargin)

	want := FingerStates{false, true, false, false, true}
	if states != want {
		t.Errorf("states = %v, want %v", states, want)
	}
}

func TestExtractFingerStates_Idempotent(t *testing.T) {
	hand := detector.SideRockLandmarks()

	first := ExtractFingerStates(&hand, DefaultFingerMargin, DefaultThumbMargin)
	second := ExtractFingerStates(&hand, DefaultFingerMargin, DefaultThumbMargin)

	if first != second {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
}

func TestExtractFingerStates_MarginSuppressesPartialBend(t *testing.T) {
	// Index tip barely above the PIP joint: inside the margin, so the
	// finger must read as curled rather than oscillating.
	hand := detector.FistLandmarks()
	pip := hand.Points[detector.IndexPIP]
	hand.Points[detector.IndexTip] = detector.Point3D{X: pip.X, Y: pip.Y - 0.01, Z: pip.Z}

	states := ExtractFingerStates(&hand, 0.02, DefaultThumbMargin)
	if states[Index] {
		t.Error("index within margin reported extended")
	}

	// Clearly past the margin it must read extended.
	hand.Points[detector.IndexTip] = detector.Point3D{X: pip.X, Y: pip.Y - 0.05, Z: pip.Z}
	states = ExtractFingerStates(&hand, 0.02, DefaultThumbMargin)
	if !states[Index] {
		t.Error("index past margin reported curled")
	}
}

func TestExtractFingerStates_NilHand(t *testing.T) {
	states := ExtractFingerStates(nil, DefaultFingerMargin, DefaultThumbMargin)
	if states.Count() != 0 {
		t.Errorf("nil hand produced extended fingers: %v", states)
	}
}
