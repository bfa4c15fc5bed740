// Package api implements the socplan HTTP API: topology validation, layout
// computation, port redistribution after drags, and floogen job management.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nocworks/socplan/pkg/cache"
	"github.com/nocworks/socplan/pkg/gen"
	"github.com/nocworks/socplan/pkg/layout"
)

// maxBodySize bounds request bodies; topology configs are small.
const maxBodySize = 4 << 20

// Server handles API requests. Layout computation is pure, so the server
// serves concurrent requests without locking; the job registry inside
// [gen.Runner] has its own synchronization.
type Server struct {
	logger    *log.Logger
	layoutCfg layout.Config
	cache     cache.Cache
	runner    *gen.Runner
}

// NewServer creates a server. The cache may be a [cache.NullCache]; the
// runner may be nil, which disables the generate and job endpoints.
func NewServer(logger *log.Logger, layoutCfg layout.Config, c cache.Cache, runner *gen.Runner) *Server {
	return &Server{logger: logger, layoutCfg: layoutCfg, cache: c, runner: runner}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/validate", s.handleValidate)
		r.Post("/layout", s.handleLayout)
		r.Post("/layout/ports", s.handlePorts)
		if s.runner != nil {
			r.Post("/generate", s.handleGenerate)
			r.Get("/jobs/{id}", s.handleJob)
			r.Get("/jobs/{id}/download", s.handleDownload)
		}
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
