// Package trigger composes chord classifications and strum events into
// audio trigger requests.
package trigger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airguitar/internal/audio"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/strum"
)

// Request is a single audio trigger. Chord is never ChordNone. Requests
// are not retried and not queued: at most one per strum.
type Request struct {
	ID    string        `json:"id"`
	Chord gesture.Chord `json:"chord"`
	Time  time.Time     `json:"time"`
}

// Composer is the single point where the two classifiers meet. It holds
// the last non-None chord the player showed, so a strum plays whatever
// chord is being held even when classification flickers for a frame. It
// has no thresholds of its own.
type Composer struct {
	sink audio.Sink

	mu             sync.RWMutex
	held           gesture.Chord
	listeners      []func(Request)
	chordListeners []func(gesture.Chord)
}

// NewComposer creates a Composer that forwards trigger requests to the sink.
func NewComposer(sink audio.Sink) *Composer {
	return &Composer{
		sink: sink,
		held: gesture.ChordNone,
	}
}

// ObserveChord feeds this frame's classification result. ChordNone is an
// abstention and leaves the held chord untouched.
func (c *Composer) ObserveChord(chord gesture.Chord) {
	if chord == gesture.ChordNone {
		return
	}

	c.mu.Lock()
	changed := c.held != chord
	c.held = chord
	chordListeners := c.chordListeners
	c.mu.Unlock()

	if changed {
		for _, fn := range chordListeners {
			fn(chord)
		}
	}
}

// OnStrum turns a strum event into a trigger request for the held chord.
// If no chord has ever been recognized, the event is dropped silently:
// there is nothing meaningful to play. Returns the emitted request, or nil.
func (c *Composer) OnStrum(ev *strum.Event) *Request {
	if ev == nil {
		return nil
	}

	c.mu.RLock()
	held := c.held
	listeners := c.listeners
	c.mu.RUnlock()

	if held == gesture.ChordNone {
		return nil
	}

	req := Request{
		ID:    uuid.NewString(),
		Chord: held,
		Time:  ev.Time,
	}

	// Fire and forget: playback neither blocks nor reports failure.
	c.sink.Play(held)

	for _, fn := range listeners {
		fn(req)
	}

	return &req
}

// HeldChord returns the currently held chord, ChordNone before the first
// recognition.
func (c *Composer) HeldChord() gesture.Chord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.held
}

// OnTrigger registers a callback invoked for every emitted request.
func (c *Composer) OnTrigger(fn func(Request)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// OnChordChange registers a callback invoked whenever the held chord
// changes to a different identity.
func (c *Composer) OnChordChange(fn func(gesture.Chord)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chordListeners = append(c.chordListeners, fn)
}
