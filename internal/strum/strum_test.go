package strum

import (
	"sync"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestDetector_FirstSampleSeedsBaseline(t *testing.T) {
	d := NewDetector(DefaultThreshold, DefaultCooldown)

	if ev := d.Observe(0.5, t0); ev != nil {
		t.Errorf("first sample emitted event %+v", ev)
	}
}

func TestDetector_DownStroke(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.3, t0)
	// 0.1 units in 33ms = ~3 units/s, well over threshold; y increasing
	// is a downward stroke.
	ev := d.Observe(0.4, t0.Add(33*time.Millisecond))
	if ev == nil {
		t.Fatal("expected a strum event")
	}
	if ev.Direction != DirectionDown {
		t.Errorf("direction = %q, want down", ev.Direction)
	}
	if d.LastDirection() != DirectionDown {
		t.Errorf("LastDirection() = %q, want down", d.LastDirection())
	}
}

func TestDetector_UpStroke(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.4, t0)
	ev := d.Observe(0.3, t0.Add(33*time.Millisecond))
	if ev == nil {
		t.Fatal("expected a strum event")
	}
	if ev.Direction != DirectionUp {
		t.Errorf("direction = %q, want up", ev.Direction)
	}
}

func TestDetector_BelowThreshold(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.500, t0)
	// 0.002 units in 33ms = ~0.06 units/s, under the 0.15 threshold.
	if ev := d.Observe(0.502, t0.Add(33*time.Millisecond)); ev != nil {
		t.Errorf("sub-threshold motion emitted event %+v", ev)
	}
}

func TestDetector_CooldownSuppressesSecondSample(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.3, t0)

	events := 0
	// Two above-threshold samples 33ms apart: one continuous stroke, one event.
	if d.Observe(0.4, t0.Add(33*time.Millisecond)) != nil {
		events++
	}
	if d.Observe(0.5, t0.Add(66*time.Millisecond)) != nil {
		events++
	}

	if events != 1 {
		t.Errorf("got %d events within cooldown, want 1", events)
	}
}

func TestDetector_TriggersAgainAfterCooldown(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.3, t0)
	first := d.Observe(0.4, t0.Add(33*time.Millisecond))
	if first == nil {
		t.Fatal("expected first strum event")
	}

	// Next above-threshold sample lands past the cooldown window.
	second := d.Observe(0.3, t0.Add(200*time.Millisecond))
	if second == nil {
		t.Fatal("expected second strum event after cooldown")
	}
	if second.Direction != DirectionUp {
		t.Errorf("second direction = %q, want up", second.Direction)
	}
}

func TestDetector_HandLostClearsBaselineKeepsCooldown(t *testing.T) {
	d := NewDetector(0.15, 200*time.Millisecond)

	d.Observe(0.3, t0)
	if d.Observe(0.4, t0.Add(33*time.Millisecond)) == nil {
		t.Fatal("expected strum event")
	}

	d.HandLost()

	// Hand reappears far from its old position. The first sample only
	// seeds the baseline, so the jump cannot read as velocity.
	if ev := d.Observe(0.9, t0.Add(66*time.Millisecond)); ev != nil {
		t.Errorf("reacquisition emitted event %+v", ev)
	}

	// A real stroke inside the surviving cooldown window is still held back.
	if ev := d.Observe(0.7, t0.Add(100*time.Millisecond)); ev != nil {
		t.Errorf("stroke within surviving cooldown emitted event %+v", ev)
	}

	// Past the cooldown the detector triggers normally again.
	if ev := d.Observe(0.4, t0.Add(300*time.Millisecond)); ev == nil {
		t.Error("expected strum event after cooldown elapsed")
	}
}

func TestDetector_Reset(t *testing.T) {
	d := NewDetector(0.15, 100*time.Millisecond)

	d.Observe(0.3, t0)
	d.Observe(0.4, t0.Add(33*time.Millisecond))
	d.Reset()

	if d.LastDirection() != DirectionNone {
		t.Errorf("LastDirection() after reset = %q, want none", d.LastDirection())
	}
	if ev := d.Observe(0.9, t0.Add(66*time.Millisecond)); ev != nil {
		t.Errorf("first sample after reset emitted event %+v", ev)
	}
}

func TestDetector_ConcurrentObserveAndRead(t *testing.T) {
	d := NewDetector(0.15, 10*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(2)

	// The pipeline observes while the state endpoint polls the last
	// direction; neither side may fault or see a value outside the enum.
	go func() {
		defer wg.Done()
		y := 0.2
		for i := 0; i < 1000; i++ {
			d.Observe(y, t0.Add(time.Duration(i)*33*time.Millisecond))
			y = 0.5 - y
			if i%100 == 0 {
				d.HandLost()
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			switch d.LastDirection() {
			case DirectionNone, DirectionUp, DirectionDown:
			default:
				t.Error("LastDirection() returned a torn value")
				return
			}
		}
	}()

	wg.Wait()
}
