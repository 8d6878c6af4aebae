// Package health provides the HTTP health check endpoints.
//
// Docker and Kubernetes use /healthz and /readyz to monitor the daemon.
// /backends reports which answer backends are configured and where they sit
// in the fallback order.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/nadzzz/copilot/internal/backend"
)

// StatusReporter lists backend availability.
type StatusReporter interface {
	Status() []backend.Status
}

// Server is a lightweight HTTP server that exposes the health endpoints.
type Server struct {
	port     int
	backends StatusReporter
	ready    atomic.Bool
	server   *http.Server
}

// New creates a new health check server. backends may be nil.
func New(port int, backends StatusReporter) *Server {
	return &Server{port: port, backends: backends}
}

// SetReady marks the daemon as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Handler returns the health routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.probe)
	mux.HandleFunc("GET /readyz", s.probe)

	mux.HandleFunc("GET /backends", func(w http.ResponseWriter, r *http.Request) {
		var list []backend.Status
		if s.backends != nil {
			list = s.backends.Status()
		}
		available := 0
		for _, b := range list {
			if b.Available {
				available++
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"available": available,
			"backends":  list,
		})
	})

	return mux
}

func (s *Server) probe(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListenAndServe starts the health check HTTP server.
// It blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
