// Package api serves the engine state, metrics and health over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dd0wney/vizaj/pkg/engine"
	"github.com/dd0wney/vizaj/pkg/health"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies; every request is a small JSON object
const maxBodyBytes = 1 << 16

// Server exposes one engine
type Server struct {
	engine  *engine.Engine
	metrics *metrics.Registry
	health  *health.Checker
	logger  logging.Logger
}

// NewServer wires the health checks of eng. A nil registry serves the
// default one.
func NewServer(eng *engine.Engine, reg *metrics.Registry, logger logging.Logger) *Server {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Server{
		engine:  eng,
		metrics: reg,
		health:  health.NewChecker(),
		logger:  logger.With(logging.Component("api")),
	}

	montageState := health.MontageCheck(func() (int, int) {
		m, _ := eng.Montage()
		if m == nil {
			return 0, 0
		}
		_, total := eng.Counts()
		return m.Len(), total
	})
	s.health.Register(health.ProbeLive, "process", health.Alive())
	s.health.Register(health.ProbeReady, "montage", montageState)
	s.health.Register(health.ProbeHealth, "montage", montageState)
	s.health.Register(health.ProbeHealth, "memory", health.MemoryCheck(0))
	return s
}

// Router returns the HTTP routes
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	s.health.Mount(r, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scene", s.handleScene)
		r.Get("/params", s.handleParams)
		r.Put("/density", s.handleSetDensity)
		r.Post("/eco", s.handleEco)
		r.Put("/colormap", s.handleSetColorMap)
		r.Post("/colormap/rescale", s.handleRescale)
		r.Put("/preset", s.handleSetPreset)
	})
	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			logging.String("method", r.Method),
			logging.Path(r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.String("request_id", middleware.GetReqID(r.Context())),
			logging.Latency(time.Since(start)))
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("response encoding failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// decode reads a JSON body into v, responding 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
