// Package server provides the HTTP status surface for the Wision engine:
// health, recent activity, and a live state stream.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/code-pasu/Wision/internal/store"
)

// StateSource reports the engine's live state. Implemented by app.App.
type StateSource interface {
	ControlState() (mode, gesture string, enabled bool)
}

// Config holds the server configuration. Nil fields disable the
// corresponding endpoints.
type Config struct {
	Store *store.Store
	State StateSource
}

// Server represents the HTTP status server.
type Server struct {
	config Config
	mux    *http.ServeMux
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

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/events", s.handleEvents)
	}

	if s.config.State != nil {
		s.mux.Handle("/api/state", NewStateHandler(s.config.State))
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

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	writeJSON(w, response)
}

// handleEvents handles GET requests to /api/events, returning the most
// recent activity-log entries. The optional "limit" query parameter caps
// the result (default 50, max 500).
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}

	events, err := s.config.Store.Events().ListRecent(limit)
	if err != nil {
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	type jsonEvent struct {
		ID      string    `json:"id"`
		At      time.Time `json:"at"`
		Mode    string    `json:"mode"`
		Gesture string    `json:"gesture"`
		Action  string    `json:"action,omitempty"`
		Fired   bool      `json:"fired"`
	}

	out := make([]jsonEvent, len(events))
	for i, e := range events {
		out[i] = jsonEvent{
			ID: e.ID, At: e.At, Mode: e.Mode,
			Gesture: e.Gesture, Action: e.Action, Fired: e.Fired,
		}
	}

	writeJSON(w, map[string]interface{}{"events": out})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
