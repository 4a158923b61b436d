package app

import (
	"log"
	"time"

	"github.com/ayusman/airguitar/internal/detector"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/strum"
	"github.com/ayusman/airguitar/internal/trigger"
)

// runPipeline is the main loop: one tick per captured frame, strictly
// sequential within a tick. Motion detection gates the expensive landmark
// detector behind an idle/active FPS switch.
//
// Tick order:
//  1. Read the newest frame (older frames are dropped by reading on the tick)
//  2. Motion gate: idle(5fps) <-> active(30fps)
//  3. Hand detection, split by handedness label
//  4. Left hand -> finger states -> chord classification
//     Right hand -> wrist velocity -> strum detection
//  5. Compose: strum event + held chord -> trigger request
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					// Going idle means the right hand left the frame too.
					a.strummer.HandLost()
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close() // done with the frame

			if err != nil {
				// Contract violations and detector hiccups cost one frame;
				// the next tick is independent.
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if req := a.processTick(detector.SplitHands(hands), time.Now()); req != nil {
				log.Printf("Strum %s -> playing %s", a.strummer.LastDirection(), req.Chord)
			}
		}
	}
}

// processTick runs one frame of classification and composition. The chord
// side and the strum side share no state, so their order within the tick
// does not matter; the composer runs after both.
func (a *App) processTick(hands detector.Hands, now time.Time) *trigger.Request {
	settings := a.config.Settings

	if hands.Left != nil {
		states := gesture.ExtractFingerStates(hands.Left, settings.FingerMargin, settings.ThumbMargin)
		a.composer.ObserveChord(a.classifier.Classify(states))
	}
	// An absent left hand is an abstention: the held chord stays.

	var ev *strum.Event
	if hands.Right != nil {
		ev = a.strummer.Observe(hands.Right.WristY(), now)
	} else {
		a.strummer.HandLost()
	}

	return a.composer.OnStrum(ev)
}
