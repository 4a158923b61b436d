// Package strum detects up/down strumming motion from wrist velocity.
package strum

import (
	"sync"
	"time"
)

// Direction of a strum stroke. Down means the wrist moved toward the
// bottom of the frame (y increasing in image coordinates).
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Default tuning values. The threshold is in normalized units per second;
// the cooldown suppresses double-triggering when one continuous stroke
// produces several above-threshold velocity samples.
const (
	DefaultThreshold = 0.15
	DefaultCooldown  = 100 * time.Millisecond
)

// Event is a single strum edge-event. It is consumed immediately by the
// trigger composer and never stored.
type Event struct {
	Direction Direction
	Time      time.Time
}

// Detector tracks right-hand wrist motion across frames and emits at most
// one Event per cooldown window. It is the only component in the pipeline
// that threads state across frames, and it does so by side label only:
// whenever the right hand is absent the velocity baseline is cleared, so
// reacquired hands never produce a spurious velocity reading against a
// stale position.
type Detector struct {
	threshold float64
	cooldown  time.Duration

	// mu guards the fields below: the pipeline goroutine feeds Observe
	// while the state endpoint reads LastDirection.
	mu            sync.Mutex
	prevY         *float64
	prevTime      time.Time
	lastTrigger   time.Time
	lastDirection Direction
}

// NewDetector creates a Detector with the given velocity threshold
// (normalized units/second) and post-trigger cooldown.
func NewDetector(threshold float64, cooldown time.Duration) *Detector {
	return &Detector{
		threshold: threshold,
		cooldown:  cooldown,
	}
}

// Observe feeds the current wrist position and timestamp into the
// detector. It returns a strum Event when the vertical velocity crosses
// the threshold and the cooldown has elapsed, nil otherwise. The wrist
// position becomes the new velocity baseline regardless of the outcome.
func (d *Detector) Observe(wristY float64, now time.Time) *Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	// First sample after startup or a hand-lost gap only seeds the baseline.
	if d.prevY == nil {
		y := wristY
		d.prevY = &y
		d.prevTime = now
		return nil
	}

	dt := now.Sub(d.prevTime).Seconds()
	prev := *d.prevY
	*d.prevY = wristY
	d.prevTime = now

	if dt <= 0 {
		return nil
	}

	velocity := (wristY - prev) / dt
	speed := velocity
	if speed < 0 {
		speed = -speed
	}
	if speed < d.threshold {
		return nil
	}

	if !d.lastTrigger.IsZero() && now.Sub(d.lastTrigger) < d.cooldown {
		return nil
	}

	direction := DirectionUp
	if velocity > 0 {
		direction = DirectionDown
	}

	d.lastTrigger = now
	d.lastDirection = direction

	return &Event{Direction: direction, Time: now}
}

// HandLost clears the velocity baseline for a frame with no right hand.
// The cooldown timestamp is kept so reacquisition cannot burst-trigger.
func (d *Detector) HandLost() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prevY = nil
}

// LastDirection returns the direction of the most recent strum, or
// DirectionNone if nothing has triggered yet.
func (d *Detector) LastDirection() Direction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastDirection
}

// Reset returns the detector to its initial state.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prevY = nil
	d.prevTime = time.Time{}
	d.lastTrigger = time.Time{}
	d.lastDirection = DirectionNone
}
