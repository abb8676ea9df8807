// Package server provides the HTTP surface of handbreaker: the game and
// camera streams, the websocket status/input channel and the score API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/handbreaker/internal/game"
	"github.com/ayusman/handbreaker/internal/server/api"
	"github.com/ayusman/handbreaker/internal/store"
)

// DefaultStreamFPS paces the streams and the websocket broadcast.
const DefaultStreamFPS = 30

// Session is the running game as seen by HTTP clients.
type Session interface {
	Snapshot() (game.Snapshot, uint64)
	Action(id string) error
	Key(key string) error
	Click(x, y float64) error
}

// FrameSource yields the latest encoded JPEG and a version that changes
// whenever a new frame is available. A nil frame means none yet.
type FrameSource interface {
	Frame() ([]byte, uint64)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func() ([]byte, uint64)

// Frame calls f.
func (f FrameSourceFunc) Frame() ([]byte, uint64) { return f() }

// Config holds the server configuration.
type Config struct {
	StaticDir    string
	Store        *store.Store
	Session      Session
	GameStream   FrameSource
	CameraStream FrameSource
	StreamFPS    int
}

// Server represents the HTTP server for the game.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	hub    *GameHub

	mu   sync.Mutex
	http *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.StreamFPS <= 0 {
		config.StreamFPS = DefaultStreamFPS
	}
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) interval() time.Duration {
	return time.Second / time.Duration(s.config.StreamFPS)
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		scores := api.NewScoreHandler(s.config.Store)
		s.mux.Handle("/api/scores", scores)
		s.mux.Handle("/api/scores/", scores)
	}

	if s.config.GameStream != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.GameStream, s.interval()))
	}
	if s.config.CameraStream != nil {
		s.mux.Handle("/api/camera", NewStreamHandler(s.config.CameraStream, s.interval()))
	}

	if s.config.Session != nil {
		s.hub = NewGameHub(s.config.Session, s.interval())
		s.mux.Handle("/api/ws", s.hub)
	}

	// Serve static files if StaticDir is configured
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

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Session != nil {
		snap, _ := s.config.Session.Snapshot()
		response["state"] = snap.State
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and closes the websocket hub.
// Streams end when their requests are cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
