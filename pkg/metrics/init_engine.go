package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.Density = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_density",
			Help: "Applied link density as a fraction of the fully connected count",
		},
	)

	r.MeanDegree = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_mean_degree",
			Help: "Mean visible degree over all nodes",
		},
	)

	r.MaxDegree = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_max_degree",
			Help: "Highest visible node degree",
		},
	)

	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "vizaj_operations_total",
			Help: "Engine operations by name and outcome",
		},
		[]string{"operation", "status"},
	)

	r.OperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vizaj_operation_duration_seconds",
			Help:    "Engine operation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"operation"},
	)

	r.MeshVertices = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vizaj_mesh_vertices",
			Help: "Vertices across all link meshes by profile",
		},
		[]string{"profile"},
	)
}
