// Package api exposes the record codec as a small REST service so external
// tools can decode and encode records without linking the library. The
// service is a thin shell: layouts are loaded once at startup and every
// request is a pure in-memory codec call.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pprehq/rawdb/pkg/config"
)

// Server handles codec requests against a fixed layout registry.
type Server struct {
	registry *config.Registry
	config   ServerConfig
	metrics  *Metrics
	logger   zerolog.Logger
	prom     *prometheus.Registry
}

// NewServer creates a server over the given layout registry.
func NewServer(registry *config.Registry, cfg ServerConfig, logger zerolog.Logger) *Server {
	prom := prometheus.NewRegistry()
	return &Server{
		registry: registry,
		config:   cfg,
		metrics:  NewMetrics(prom),
		logger:   logger,
		prom:     prom,
	}
}

// Router assembles the HTTP routes. Split out from ListenAndServe so tests
// can drive the server with httptest.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Get("/layouts", s.metrics.InstrumentHandler("GET", "/api/v1/layouts", s.handleListLayouts))
		r.Get("/layouts/{name}", s.metrics.InstrumentHandler("GET", "/api/v1/layouts/{name}", s.handleDescribeLayout))

		r.Post("/decode", s.metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/encode", s.metrics.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Bind, s.config.Port)
	s.logger.Info().
		Str("addr", addr).
		Strs("layouts", s.registry.Names()).
		Msg("starting rawdb API server")
	return http.ListenAndServe(addr, s.Router())
}
