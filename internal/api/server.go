// Package api provides the HTTP server for mapai. It exposes the region
// catalog, the province GeoJSON, the resolver, and the session-scoped chat
// endpoints the map frontend talks to.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enttlevo/mapai/internal/app/chat"
	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/health"
	"github.com/enttlevo/mapai/internal/infra/registry"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// Server is the mapai HTTP API server.
type Server struct {
	chat    *chat.Service
	regions *registry.Manager
	db      *sqlite.DB
	dataset func() *geo.FeatureCollection
	index   func() *geo.Index

	health         *health.Checker
	metricsEnabled bool
	corsOrigins    []string
}

// NewServer creates a new API server. The dataset and index functions return
// the current snapshots; they are swapped atomically on dataset reload.
func NewServer(chatSvc *chat.Service, regions *registry.Manager, db *sqlite.DB,
	dataset func() *geo.FeatureCollection, index func() *geo.Index) *Server {
	return &Server{
		chat:    chatSvc,
		regions: regions,
		db:      db,
		dataset: dataset,
		index:   index,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker backing /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetCORSOrigins restricts the allowed CORS origins. Default is "*".
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(corsMiddleware(s.corsOrigins))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Get("/provinces", s.handleProvinces)
		r.Get("/geo/provinces", s.handleGeo)
		r.Post("/detect", s.handleDetect)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}/history", s.handleHistory)

		r.Post("/chat", s.handleChat)
		r.Post("/chat/choose", s.handleChoose)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"healthy": s.health.IsHealthy(),
		"checks":  s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the SPA frontend. An empty origins
// list, or a list containing "*", allows any origin.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "":
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
