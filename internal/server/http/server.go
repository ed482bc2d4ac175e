// Package httpserver provides the HTTP REST API for the arXiv query service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/arxivq/arxiv-query-service/internal/arxiv"
	"github.com/arxivq/arxiv-query-service/internal/observability"
	"github.com/arxivq/arxiv-query-service/internal/query"
)

// Searcher executes a prepared field query against the arXiv API.
// *arxiv.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, req arxiv.SearchRequest) (*arxiv.SearchResult, error)
}

// Server is the HTTP REST API server.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	parser      *query.Parser
	searcher    Searcher
	metrics     *observability.Metrics
	metricsPath string
	validate    *validator.Validate
	logger      zerolog.Logger
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	MetricsPath     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	parser *query.Parser,
	searcher Searcher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		parser:      parser,
		searcher:    searcher,
		metrics:     metrics,
		metricsPath: cfg.MetricsPath,
		validate:    validator.New(),
		logger:      logger.With().Str("component", "http-server").Logger(),
	}
	if s.metricsPath == "" {
		s.metricsPath = "/metrics"
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(jsonContentTypeMiddleware)

	// Health and metrics endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)
	r.Method(http.MethodGet, s.metricsPath, promhttp.Handler())

	// API routes with per-request logging and instrumentation
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.instrumentMiddleware)

		r.Post("/parse", s.parseQuery)
		r.Post("/search", s.searchPapers)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler returns readiness status. The service has no stateful
// backends; it is ready as soon as its dependencies are wired.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil || s.searcher == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
