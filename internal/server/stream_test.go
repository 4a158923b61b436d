package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/airguitar/internal/capture"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/strum"
)

func TestOverlayLabel(t *testing.T) {
	tests := []struct {
		name  string
		chord gesture.Chord
		dir   strum.Direction
		want  string
	}{
		{"nothing yet", gesture.ChordNone, strum.DirectionNone, "chord -"},
		{"chord only", gesture.ChordAm, strum.DirectionNone, "chord Am"},
		{"chord and strum", gesture.ChordG, strum.DirectionUp, "chord G  strum up"},
		{"strum outlives chord display", gesture.ChordNone, strum.DirectionDown, "chord -  strum down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlayLabel(tt.chord, tt.dir); got != tt.want {
				t.Errorf("overlayLabel(%q, %q) = %q, want %q", tt.chord, tt.dir, got, tt.want)
			}
		})
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	h := NewStreamHandler(capture.NewMockCamera(nil, false), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
