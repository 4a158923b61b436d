package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayusman/airguitar/internal/gesture"
)

// SampleRate is the playback sample rate for the speaker.
const SampleRate = beep.SampleRate(44100)

// Source describes where a chord's sound comes from.
type Source string

const (
	// SourceSample means a recorded WAV file was loaded for the chord.
	SourceSample Source = "sample"
	// SourceSynth means the chord falls back to a synthesized tone.
	SourceSynth Source = "synth"
)

// Engine is the speaker-backed Sink. Each chord maps to a pre-decoded
// buffer: either a WAV sample from the library or a synthesized root-note
// tone when no usable sample exists. Overlapping plays of different chords
// mix in the speaker.
type Engine struct {
	buffers map[gesture.Chord]*beep.Buffer
	sources map[gesture.Chord]Source
}

// ResolveSamplePaths maps each chord to an existing WAV file in dir
// (C.wav, Am.wav, ...). Chords without a file are simply absent from the
// result; they will fall back to synthesis.
func ResolveSamplePaths(dir string) map[gesture.Chord]string {
	paths := make(map[gesture.Chord]string)
	for _, chord := range gesture.Chords {
		p := filepath.Join(dir, string(chord)+".wav")
		if _, err := os.Stat(p); err == nil {
			paths[chord] = p
		}
	}
	return paths
}

// NewEngine initializes the speaker and loads one buffer per chord from
// the given path map. A missing or corrupt sample is not an error: the
// engine substitutes a synthesized tone, invisible to callers.
func NewEngine(paths map[gesture.Chord]string) (*Engine, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(20*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

	e := &Engine{
		buffers: make(map[gesture.Chord]*beep.Buffer),
		sources: make(map[gesture.Chord]Source),
	}

	for _, chord := range gesture.Chords {
		if path, ok := paths[chord]; ok {
			buf, err := loadSample(path)
			if err == nil {
				e.buffers[chord] = buf
				e.sources[chord] = SourceSample
				continue
			}
			log.Printf("Sample for %s unusable (%v), falling back to tone", chord, err)
		}
		e.buffers[chord] = synthChordBuffer(chord, format)
		e.sources[chord] = SourceSynth
	}

	return e, nil
}

// loadSample decodes a WAV file into a buffer, resampling to the speaker
// rate when needed.
func loadSample(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
	if format.SampleRate == SampleRate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(4, format.SampleRate, SampleRate, streamer))
	}

	return buf, nil
}

// Play starts playback of the chord's buffer and returns immediately.
func (e *Engine) Play(chord gesture.Chord) {
	buf, ok := e.buffers[chord]
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Sources reports where each chord's sound comes from.
func (e *Engine) Sources() map[gesture.Chord]Source {
	out := make(map[gesture.Chord]Source, len(e.sources))
	for k, v := range e.sources {
		out[k] = v
	}
	return out
}

// Close stops all playback and releases the speaker.
func (e *Engine) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}
