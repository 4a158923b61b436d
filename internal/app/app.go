// Package app wires the air guitar pipeline together: capture, hand
// detection, chord and strum classification, and trigger composition.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/airguitar/internal/audio"
	"github.com/ayusman/airguitar/internal/capture"
	"github.com/ayusman/airguitar/internal/config"
	"github.com/ayusman/airguitar/internal/detector"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/store"
	"github.com/ayusman/airguitar/internal/strum"
	"github.com/ayusman/airguitar/internal/trigger"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during play.
	ActiveFPS = 30
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds the application dependencies and tuning.
type Config struct {
	Store    *store.Store
	Settings *config.Config
	Sink     audio.Sink
}

// App is the main application: one tick per captured frame, the chord
// classifier and strum detector fed in parallel off the same frame, and
// the trigger composer joining their outputs.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	strummer   *strum.Detector
	composer   *trigger.Composer

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	cfg.Settings = settings

	sink := cfg.Sink
	if sink == nil {
		sink = audio.NopSink{}
	}

	a := &App{
		config:     cfg,
		camera:     capture.NewCamera(settings.CameraID),
		motion:     capture.NewMotionDetector(settings.MotionThreshold),
		classifier: gesture.NewClassifier(),
		strummer:   strum.NewDetector(settings.StrumThreshold, settings.StrumCooldown),
		composer:   trigger.NewComposer(sink),
	}

	detCfg := detector.DefaultConfig()
	detCfg.MinConfidence = settings.MinHandConfidence
	detCfg.MinTrackingConf = settings.MinHandConfidence

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables the pipeline.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether the pipeline is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// LoadChordTable applies chord mapping overrides from the database to the
// classifier. Rows with unknown patterns or chords are skipped with a log
// line rather than failing startup.
func (a *App) LoadChordTable() error {
	if a.config.Store == nil {
		return nil
	}

	mappings, err := a.config.Store.ChordMappings().List()
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range mappings {
		chord, err := gesture.ParseChord(m.Chord)
		if err != nil {
			log.Printf("Skipping chord mapping %s: %v", m.Pattern, err)
			continue
		}
		if err := a.classifier.SetMapping(m.Pattern, chord); err != nil {
			log.Printf("Skipping chord mapping: %v", err)
			continue
		}
		applied++
	}

	if applied > 0 {
		log.Printf("Applied %d chord mapping overrides", applied)
	}
	return nil
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Air guitar pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Air guitar pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Classifier returns the chord classifier.
func (a *App) Classifier() *gesture.Classifier {
	return a.classifier
}

// StrumDetector returns the strum detector.
func (a *App) StrumDetector() *strum.Detector {
	return a.strummer
}

// Composer returns the trigger composer.
func (a *App) Composer() *trigger.Composer {
	return a.composer
}

// HeldChord returns the currently held chord.
func (a *App) HeldChord() gesture.Chord {
	return a.composer.HeldChord()
}

// OnTrigger registers a callback for every emitted trigger request.
func (a *App) OnTrigger(fn func(trigger.Request)) {
	a.composer.OnTrigger(fn)
}

// OnChordChange registers a callback for held chord changes.
func (a *App) OnChordChange(fn func(gesture.Chord)) {
	a.composer.OnChordChange(fn)
}

// LastStrumDirection returns the direction of the most recent strum.
func (a *App) LastStrumDirection() strum.Direction {
	return a.strummer.LastDirection()
}
