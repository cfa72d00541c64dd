package health

import (
	"encoding/json"
	"net/http"

	"github.com/dd0wney/vizaj/pkg/logging"
)

// Handler serves the result of probe as JSON. Degraded health still answers
// 200 on the general endpoint; readiness and liveness are binary.
func (c *Checker) Handler(probe Probe, logger logging.Logger) http.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response := c.Run(probe)

		code := http.StatusOK
		switch {
		case response.Status == StatusUnhealthy:
			code = http.StatusServiceUnavailable
		case response.Status == StatusDegraded && probe != ProbeHealth:
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Warn("health response write failed", logging.Path(r.URL.Path), logging.Error(err))
		}
	}
}

// Mux is satisfied by http.ServeMux and chi routers
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Mount registers /healthz, /readyz and /livez on mux
func (c *Checker) Mount(mux Mux, logger logging.Logger) {
	mux.Handle("/healthz", c.Handler(ProbeHealth, logger))
	mux.Handle("/readyz", c.Handler(ProbeReady, logger))
	mux.Handle("/livez", c.Handler(ProbeLive, logger))
}
