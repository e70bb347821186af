// Package httpapi exposes the composed search over HTTP. It is a thin
// translation layer: query params in, annotated jobs out, no semantics of
// its own beyond caching.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobradar/aggregator-service/internal/cache"
	"jobradar/aggregator-service/internal/compose"
	"jobradar/aggregator-service/internal/observability"
)

// Server routes HTTP requests to the composer.
type Server struct {
	composer *compose.Composer
	cache    *cache.SearchCache
}

// New builds a Server. cache may be nil (caching disabled).
func New(composer *compose.Composer, c *cache.SearchCache) *Server {
	return &Server{composer: composer, cache: c}
}

// Router assembles the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", observability.Handler())
	r.Route("/v1/jobs", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/{id}", s.handleGet)
	})
	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "aggregator-service",
		Version: "0.1.0",
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[httpapi] write response: %v", err)
	}
}
