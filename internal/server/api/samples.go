package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/store"
)

// SamplesHandler handles HTTP requests for the sample library registry.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/samples or /api/samples/{chord}
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/samples")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	chord := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, chord)
	case http.MethodPut:
		h.update(w, r, chord)
	case http.MethodDelete:
		h.delete(w, r, chord)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type updateSampleRequest struct {
	Path string `json:"path"`
}

type sampleResponse struct {
	Chord   string `json:"chord"`
	Path    string `json:"path"`
	AddedAt string `json:"added_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

func toSampleResponse(s *store.AudioSample) sampleResponse {
	return sampleResponse{
		Chord:   s.Chord,
		Path:    s.Path,
		AddedAt: s.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/samples and returns all registered samples.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request) {
	samples, err := h.store.Samples().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}
	for _, s := range samples {
		response.Samples = append(response.Samples, toSampleResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/samples/{chord}
func (h *SamplesHandler) get(w http.ResponseWriter, r *http.Request, chord string) {
	sample, err := h.store.Samples().Get(chord)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Sample not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get sample")
		return
	}

	writeJSON(w, http.StatusOK, toSampleResponse(sample))
}

// update handles PUT /api/samples/{chord} and registers a sample file for a
// chord. The file must already exist on disk.
func (h *SamplesHandler) update(w http.ResponseWriter, r *http.Request, chord string) {
	if _, err := gesture.ParseChord(chord); err != nil {
		writeError(w, http.StatusNotFound, "Unknown chord")
		return
	}

	var req updateSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		writeError(w, http.StatusBadRequest, "Sample file does not exist")
		return
	}

	if err := h.store.Samples().Set(chord, req.Path); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save sample")
		return
	}

	sample, err := h.store.Samples().Get(chord)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get sample")
		return
	}

	writeJSON(w, http.StatusOK, toSampleResponse(sample))
}

// delete handles DELETE /api/samples/{chord} and removes the registered
// sample, falling back to the synthesized tone on next startup.
func (h *SamplesHandler) delete(w http.ResponseWriter, r *http.Request, chord string) {
	err := h.store.Samples().Delete(chord)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Sample not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete sample")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
