package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/ayusman/airguitar/internal/gesture"
)

// ChordFrequencies holds the root-note frequency for each chord, used when
// no recorded sample is available.
var ChordFrequencies = map[gesture.Chord]float64{
	gesture.ChordC:  261.63, // C4
	gesture.ChordG:  196.00, // G3
	gesture.ChordD:  146.83, // D3
	gesture.ChordE:  164.81, // E3
	gesture.ChordA:  110.00, // A2
	gesture.ChordF:  174.61, // F3
	gesture.ChordAm: 110.00, // A2
	gesture.ChordEm: 164.81, // E3
}

// toneStreamer produces a fixed-length sine tone with a linear fade
// envelope at both ends to avoid clicks.
type toneStreamer struct {
	freq  float64
	sr    beep.SampleRate
	pos   int
	total int
	fade  int
}

// newToneStreamer creates a tone of the given frequency and duration with
// a 50ms fade in/out.
func newToneStreamer(freq float64, sr beep.SampleRate, dur time.Duration) *toneStreamer {
	return &toneStreamer{
		freq:  freq,
		sr:    sr,
		total: sr.N(dur),
		fade:  sr.N(50 * time.Millisecond),
	}
}

func (t *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}

	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}

		v := math.Sin(2 * math.Pi * t.freq * float64(t.pos) / float64(t.sr))

		// Envelope
		switch {
		case t.pos < t.fade:
			v *= float64(t.pos) / float64(t.fade)
		case t.total-t.pos < t.fade:
			v *= float64(t.total-t.pos) / float64(t.fade)
		}

		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}

	return n, true
}

func (t *toneStreamer) Err() error { return nil }

// synthChordBuffer renders a one-second fallback tone for the chord into a
// reusable buffer. Chords without a known frequency get A2.
func synthChordBuffer(chord gesture.Chord, format beep.Format) *beep.Buffer {
	freq, ok := ChordFrequencies[chord]
	if !ok {
		freq = 110.0
	}

	buf := beep.NewBuffer(format)
	buf.Append(newToneStreamer(freq, format.SampleRate, time.Second))
	return buf
}
