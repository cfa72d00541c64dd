package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Link metrics
	LinksTotal    prometheus.Gauge
	LinksVisible  prometheus.Gauge
	LinksRejected *prometheus.CounterVec
	NodesTotal    prometheus.Gauge

	// Filter and degree metrics
	Density    prometheus.Gauge
	MeanDegree prometheus.Gauge
	MaxDegree  prometheus.Gauge

	// Engine operations
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	MeshVertices      *prometheus.GaugeVec

	// Process and worker pool metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MeshWorkers      prometheus.Gauge
	MeshWorkerPanics prometheus.Counter

	started  time.Time
	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized. Each call
// has its own prometheus.Registry so engines and tests do not collide.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initLinkMetrics()
	r.initEngineMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
