package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// initSystemMetrics registers the process gauges and the mesh worker pool
func (r *Registry) initSystemMetrics() {
	factory := promauto.With(r.registry)
	process := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vizaj",
			Subsystem: "process",
			Name:      name,
			Help:      help,
		})
	}

	r.UptimeSeconds = process("uptime_seconds", "Seconds since the metrics registry was created")
	r.GoRoutines = process("goroutines", "Number of goroutines")
	r.MemoryAllocBytes = process("heap_alloc_bytes", "Bytes of allocated heap objects")

	r.MeshWorkers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "vizaj",
		Subsystem: "mesh",
		Name:      "workers",
		Help:      "Goroutines used by the last mesh build, 1 when built inline",
	})
	r.MeshWorkerPanics = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "vizaj",
		Subsystem: "mesh",
		Name:      "worker_panics_total",
		Help:      "Mesh generation tasks that panicked and were retried inline",
	})
}
