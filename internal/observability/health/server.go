// Package health exposes the daemon's operational state over HTTP: an
// aggregate health endpoint, per-dependency breaker status, and Prometheus
// metrics.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/payflow/resilience/internal/resilience/breaker"
)

// Server provides HTTP endpoints for health monitoring.
type Server struct {
	breakers *breaker.Registry
	server   *http.Server
}

// NewServer creates a new health server.
func NewServer(breakers *breaker.Registry, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		breakers: breakers,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/breakers", s.handleBreakers)
	mux.HandleFunc("/breakers/reset", s.handleReset)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := s.breakers.Snapshot()
	status := "healthy"

	// Aggregate status (worst case wins)
	for _, b := range snapshot {
		if b.State == "open" {
			status = "degraded"
			break
		}
	}

	response := map[string]string{"status": status}
	w.Header().Set("Content-Type", "application/json")

	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	_ = json.NewEncoder(w).Encode(response)
}

func (s *Server) handleBreakers(w http.ResponseWriter, r *http.Request) {
	snapshot := s.breakers.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snapshot)
}

// handleReset forces a named breaker back to closed. Manual override for
// operators who know a dependency has recovered.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name parameter", http.StatusBadRequest)
		return
	}

	s.breakers.Reset(name)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"name": name, "state": "closed"})
}
