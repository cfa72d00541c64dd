package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLinkMetrics() {
	r.LinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_links_total",
			Help: "Number of renderable links loaded",
		},
	)

	r.LinksVisible = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_links_visible",
			Help: "Number of links shown at the current density",
		},
	)

	r.LinksRejected = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "vizaj_links_rejected_total",
			Help: "Links excluded at load time",
		},
		[]string{"reason"},
	)

	r.NodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "vizaj_nodes_total",
			Help: "Number of nodes in the current montage",
		},
	)
}
