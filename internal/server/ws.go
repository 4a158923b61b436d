package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/airguitar/internal/app"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/trigger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler broadcasts trigger and chord change events via WebSocket.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates a new EventsHandler subscribed to the given app.
func NewEventsHandler(a *app.App) *EventsHandler {
	h := &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
	a.OnTrigger(h.onTrigger)
	a.OnChordChange(h.onChordChange)
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *EventsHandler) onTrigger(req trigger.Request) {
	h.send(map[string]any{
		"type":      "trigger",
		"id":        req.ID,
		"chord":     string(req.Chord),
		"timestamp": req.Time.UnixMilli(),
	})
}

func (h *EventsHandler) onChordChange(chord gesture.Chord) {
	h.send(map[string]any{
		"type":      "chord",
		"chord":     string(chord),
		"timestamp": time.Now().UnixMilli(),
	})
}

// send marshals msg and writes it to all connected clients.
func (h *EventsHandler) send(msg map[string]any) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
