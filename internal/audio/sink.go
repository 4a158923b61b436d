// Package audio plays chord samples in response to trigger requests.
package audio

import (
	"sync"

	"github.com/ayusman/airguitar/internal/gesture"
)

// Sink accepts play requests for chord identities. Play is fire-and-forget:
// it returns immediately, surfaces no failure to the caller, and overlapping
// plays are the implementation's concern.
type Sink interface {
	Play(chord gesture.Chord)
	Close() error
}

// NopSink discards all play requests.
type NopSink struct{}

func (NopSink) Play(gesture.Chord) {}
func (NopSink) Close() error       { return nil }

// MockSink records play requests for tests.
type MockSink struct {
	mu     sync.Mutex
	played []gesture.Chord
}

// NewMockSink creates a new MockSink instance.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Play records the chord.
func (m *MockSink) Play(chord gesture.Chord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played = append(m.played, chord)
}

// Close is a no-op for the mock sink.
func (m *MockSink) Close() error { return nil }

// Played returns the chords played so far, in order.
func (m *MockSink) Played() []gesture.Chord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]gesture.Chord, len(m.played))
	copy(out, m.played)
	return out
}
