// Package api provides HTTP API handlers for the air guitar application.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/store"
)

// ChordHandler handles HTTP requests for the remappable chord table.
type ChordHandler struct {
	store      *store.Store
	classifier *gesture.Classifier
}

// NewChordHandler creates a new ChordHandler. The classifier is optional;
// when present, remaps take effect on the live pipeline immediately.
func NewChordHandler(s *store.Store, c *gesture.Classifier) *ChordHandler {
	return &ChordHandler{store: s, classifier: c}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods. Expected paths: /api/chords or /api/chords/{pattern}
func (h *ChordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/chords")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/chords
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/chords/{pattern}
	pattern := path
	switch r.Method {
	case http.MethodPut:
		h.update(w, r, pattern)
	case http.MethodDelete:
		h.delete(w, r, pattern)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type updateChordRequest struct {
	Chord string `json:"chord"`
}

type chordMappingResponse struct {
	Pattern string `json:"pattern"`
	Chord   string `json:"chord"`
	Custom  bool   `json:"custom"`
}

type listChordsResponse struct {
	Mappings []chordMappingResponse `json:"mappings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// effectiveTable returns the chord table currently in force. It prefers the
// live classifier and falls back to defaults plus stored overrides.
func (h *ChordHandler) effectiveTable() (map[string]gesture.Chord, error) {
	if h.classifier != nil {
		return h.classifier.Table(), nil
	}

	table := gesture.DefaultChordTable()
	mappings, err := h.store.ChordMappings().List()
	if err != nil {
		return nil, err
	}
	for _, m := range mappings {
		chord, err := gesture.ParseChord(m.Chord)
		if err != nil {
			continue
		}
		table[m.Pattern] = chord
	}
	return table, nil
}

// list handles GET /api/chords and returns the effective chord table.
func (h *ChordHandler) list(w http.ResponseWriter, r *http.Request) {
	table, err := h.effectiveTable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list chord mappings")
		return
	}

	defaults := gesture.DefaultChordTable()

	patterns := make([]string, 0, len(table))
	for pattern := range table {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	response := listChordsResponse{
		Mappings: make([]chordMappingResponse, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		response.Mappings = append(response.Mappings, chordMappingResponse{
			Pattern: pattern,
			Chord:   string(table[pattern]),
			Custom:  table[pattern] != defaults[pattern],
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// update handles PUT /api/chords/{pattern} and remaps a gesture pattern to a
// different chord.
func (h *ChordHandler) update(w http.ResponseWriter, r *http.Request, pattern string) {
	if _, ok := gesture.DefaultChordTable()[pattern]; !ok {
		writeError(w, http.StatusNotFound, "Unknown gesture pattern")
		return
	}

	var req updateChordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	chord, err := gesture.ParseChord(req.Chord)
	if err != nil || chord == gesture.ChordNone {
		writeError(w, http.StatusBadRequest, "Invalid chord")
		return
	}

	mapping := &store.ChordMapping{
		ID:      uuid.New().String(),
		Pattern: pattern,
		Chord:   string(chord),
	}
	if err := h.store.ChordMappings().Upsert(mapping); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save chord mapping")
		return
	}

	if h.classifier != nil {
		if err := h.classifier.SetMapping(pattern, chord); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to apply chord mapping")
			return
		}
	}

	writeJSON(w, http.StatusOK, chordMappingResponse{
		Pattern: pattern,
		Chord:   string(chord),
		Custom:  chord != gesture.DefaultChordTable()[pattern],
	})
}

// delete handles DELETE /api/chords/{pattern} and restores the built-in
// default mapping for a gesture pattern.
func (h *ChordHandler) delete(w http.ResponseWriter, r *http.Request, pattern string) {
	defaults := gesture.DefaultChordTable()
	defaultChord, ok := defaults[pattern]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown gesture pattern")
		return
	}

	err := h.store.ChordMappings().Delete(pattern)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to delete chord mapping")
		return
	}

	if h.classifier != nil {
		if err := h.classifier.SetMapping(pattern, defaultChord); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to restore chord mapping")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
