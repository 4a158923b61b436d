package gesture

import (
	"sync"
	"testing"
)

func TestClassifier_FingerCounts(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name   string
		states FingerStates
		want   Chord
	}{
		{"fist", FingerStates{}, ChordAm},
		{"one finger (index)", FingerStates{false, true, false, false, false}, ChordC},
		{"one finger (thumb)", FingerStates{true, false, false, false, false}, ChordC},
		{"two fingers", FingerStates{false, true, true, false, false}, ChordG},
		{"three fingers", FingerStates{false, true, true, true, false}, ChordD},
		{"four fingers", FingerStates{false, true, true, true, true}, ChordE},
		{"five fingers", FingerStates{true, true, true, true, true}, ChordA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.states); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.states, got, tt.want)
			}
		})
	}
}

func TestClassifier_RockSignBeatsCount(t *testing.T) {
	c := NewClassifier()

	// Index + pinky has two extended fingers; by count alone it would map
	// to G, but the rock pattern must win.
	rock := FingerStates{false, true, false, false, true}
	if got := c.Classify(rock); got != ChordF {
		t.Errorf("Classify(rock sign) = %q, want F", got)
	}

	// Thumb state is irrelevant to the rock sign only when the side-rock
	// pattern does not apply; thumb down still reads rock.
	rockThumbDown := FingerStates{false, true, false, false, true}
	if got := c.Classify(rockThumbDown); got != ChordF {
		t.Errorf("Classify(rock, thumb down) = %q, want F", got)
	}
}

func TestClassifier_SideRockBeatsRock(t *testing.T) {
	c := NewClassifier()

	// Thumb+index+pinky satisfies both the side-rock and rock bit tests;
	// ordering must resolve it to Em.
	sideRock := FingerStates{true, true, false, false, true}
	if got := c.Classify(sideRock); got != ChordEm {
		t.Errorf("Classify(side rock) = %q, want Em", got)
	}
}

func TestClassifier_MiddleOrRingBreaksRockPattern(t *testing.T) {
	c := NewClassifier()

	// Index+pinky+middle is not a rock sign; three fingers map to D.
	states := FingerStates{false, true, true, false, true}
	if got := c.Classify(states); got != ChordD {
		t.Errorf("Classify(index+middle+pinky) = %q, want D", got)
	}
}

func TestClassifier_SetMapping(t *testing.T) {
	c := NewClassifier()

	if err := c.SetMapping(PatternRock, ChordD); err != nil {
		t.Fatalf("SetMapping() error = %v", err)
	}

	rock := FingerStates{false, true, false, false, true}
	if got := c.Classify(rock); got != ChordD {
		t.Errorf("Classify(rock) after remap = %q, want D", got)
	}

	if err := c.SetMapping("no-such-pattern", ChordC); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestParseChord(t *testing.T) {
	if _, err := ParseChord("Am"); err != nil {
		t.Errorf("ParseChord(Am) error = %v", err)
	}
	if _, err := ParseChord("B7"); err == nil {
		t.Error("expected error for unrecognized chord")
	}
}

func TestClassifier_ConcurrentRemapDuringClassify(t *testing.T) {
	c := NewClassifier()
	rock := FingerStates{false, true, false, false, true}

	var wg sync.WaitGroup
	wg.Add(2)

	// Remapping from the settings API while the pipeline classifies must
	// never fault or produce a chord outside the two mapped values.
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				c.SetMapping(PatternRock, ChordG)
			} else {
				c.SetMapping(PatternRock, ChordF)
			}
			c.Table()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if got := c.Classify(rock); got != ChordF && got != ChordG {
				t.Errorf("Classify(rock) = %q during remap, want F or G", got)
				return
			}
		}
	}()

	wg.Wait()
}

func TestClassifier_TableIsCopy(t *testing.T) {
	c := NewClassifier()
	table := c.Table()
	table[PatternRock] = ChordC

	rock := FingerStates{false, true, false, false, true}
	if got := c.Classify(rock); got != ChordF {
		t.Error("mutating the returned table changed classification")
	}
}
