// Package server provides the HTTP server for the air guitar application.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/airguitar/internal/app"
	"github.com/ayusman/airguitar/internal/capture"
	"github.com/ayusman/airguitar/internal/server/api"
	"github.com/ayusman/airguitar/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	App       *app.App
}

// Server represents the HTTP server for the air guitar application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/state", s.handleState)

	if s.config.Store != nil {
		var chordHandler http.Handler
		if s.config.App != nil {
			chordHandler = api.NewChordHandler(s.config.Store, s.config.App.Classifier())
		} else {
			chordHandler = api.NewChordHandler(s.config.Store, nil)
		}
		s.mux.Handle("/api/chords", chordHandler)
		s.mux.Handle("/api/chords/", chordHandler)

		samplesHandler := api.NewSamplesHandler(s.config.Store)
		s.mux.Handle("/api/samples", samplesHandler)
		s.mux.Handle("/api/samples/", samplesHandler)
	}

	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera, s.config.App)
		s.mux.Handle("/api/stream", streamHandler)
	}

	if s.config.App != nil {
		s.events = NewEventsHandler(s.config.App)
		s.mux.Handle("/api/events", s.events)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state. It reports whether the
// pipeline is enabled and which chord is currently held.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"enabled": false,
		"chord":   "",
		"strum":   "",
	}
	if s.config.App != nil {
		response["enabled"] = s.config.App.IsEnabled()
		response["chord"] = string(s.config.App.HeldChord())
		response["strum"] = string(s.config.App.LastStrumDirection())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
