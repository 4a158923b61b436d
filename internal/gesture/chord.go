package gesture

import (
	"fmt"
	"strconv"
	"sync"
)

// Chord identifies one of the eight recognized chords. ChordNone means no
// gesture was recognized this frame; the trigger composer, not the
// classifier, decides what that means for the currently held chord.
type Chord string

const (
	ChordNone Chord = ""
	ChordC    Chord = "C"
	ChordG    Chord = "G"
	ChordD    Chord = "D"
	ChordE    Chord = "E"
	ChordA    Chord = "A"
	ChordF    Chord = "F"
	ChordAm   Chord = "Am"
	ChordEm   Chord = "Em"
)

// Chords lists every playable chord identity.
var Chords = []Chord{ChordC, ChordG, ChordD, ChordE, ChordA, ChordF, ChordAm, ChordEm}

// ParseChord validates a chord name from an external boundary (API, store).
func ParseChord(s string) (Chord, error) {
	for _, c := range Chords {
		if string(c) == s {
			return c, nil
		}
	}
	return ChordNone, fmt.Errorf("unknown chord %q", s)
}

// Pattern keys for the remappable gesture-to-chord table. Count patterns
// are the digits "0" through "5".
const (
	PatternSideRock = "side_rock"
	PatternRock     = "rock"
)

// DefaultChordTable mirrors the stock gesture mapping: fist through open
// hand select Am, C, G, D, E, A; the rock and side-rock signs select F
// and Em.
func DefaultChordTable() map[string]Chord {
	return map[string]Chord{
		"0":             ChordAm,
		"1":             ChordC,
		"2":             ChordG,
		"3":             ChordD,
		"4":             ChordE,
		"5":             ChordA,
		PatternRock:     ChordF,
		PatternSideRock: ChordEm,
	}
}

// Classifier maps a finger-state vector to a chord identity using
// priority-ordered pattern matching. It is stateless per frame: there is
// no debounce here, and it never remembers a previous result. The table
// lock exists because the settings API remaps entries while the pipeline
// goroutine classifies.
type Classifier struct {
	mu    sync.RWMutex
	table map[string]Chord
}

// NewClassifier creates a Classifier with the default chord table.
func NewClassifier() *Classifier {
	return &Classifier{table: DefaultChordTable()}
}

// SetMapping remaps one gesture pattern to a chord. Unknown patterns are
// rejected so a bad table row cannot silently disable a gesture.
func (c *Classifier) SetMapping(pattern string, chord Chord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.table[pattern]; !ok {
		return fmt.Errorf("unknown gesture pattern %q", pattern)
	}
	c.table[pattern] = chord
	return nil
}

// Table returns a copy of the active chord table.
func (c *Classifier) Table() map[string]Chord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Chord, len(c.table))
	for k, v := range c.table {
		out[k] = v
	}
	return out
}

// Classify resolves a finger-state vector to a chord. Patterns are checked
// top to bottom, first match wins. The ordering is load-bearing: side rock
// and rock sign share finger-count bit patterns with the count rules (and
// with each other) and must win by priority, not by count.
//
//  1. side rock: thumb+index+pinky extended, middle+ring curled
//  2. rock sign: index+pinky extended, middle+ring curled, thumb free
//  3. extended-finger count 0..5
//
// Returns ChordNone when nothing matches (including a remapped-away row).
func (c *Classifier) Classify(fs FingerStates) Chord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if fs[Thumb] && fs[Index] && fs[Pinky] && !fs[Middle] && !fs[Ring] {
		return c.table[PatternSideRock]
	}

	if fs[Index] && fs[Pinky] && !fs[Middle] && !fs[Ring] {
		return c.table[PatternRock]
	}

	if chord, ok := c.table[strconv.Itoa(fs.Count())]; ok {
		return chord
	}

	return ChordNone
}
