package metrics

import (
	"runtime"
	"time"
)

// Rejection reasons for LinksRejected
const (
	ReasonDegenerate = "degenerate"
	ReasonInvalid    = "invalid"
)

// RecordOperation records an engine operation and its duration
func (r *Registry) RecordOperation(operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLoad sets the link and node gauges after a load and counts rejections
func (r *Registry) RecordLoad(nodes, links, degenerate int) {
	r.NodesTotal.Set(float64(nodes))
	r.LinksTotal.Set(float64(links))
	if degenerate > 0 {
		r.LinksRejected.WithLabelValues(ReasonDegenerate).Add(float64(degenerate))
	}
}

// RecordRejected counts links dropped before reaching the engine
func (r *Registry) RecordRejected(reason string, n int) {
	r.LinksRejected.WithLabelValues(reason).Add(float64(n))
}

// RecordVisibility updates the gauges that follow every density change
func (r *Registry) RecordVisibility(density float64, visible int, meanDegree float64, maxDegree int) {
	r.Density.Set(density)
	r.LinksVisible.Set(float64(visible))
	r.MeanDegree.Set(meanDegree)
	r.MaxDegree.Set(float64(maxDegree))
}

// RecordMeshVertices sets the vertex total for profile, zeroing the others
func (r *Registry) RecordMeshVertices(profile string, vertices int, profiles []string) {
	for _, p := range profiles {
		if p != profile {
			r.MeshVertices.WithLabelValues(p).Set(0)
		}
	}
	r.MeshVertices.WithLabelValues(profile).Set(float64(vertices))
}

// RecordMeshBuild records the pool size of a mesh build and its panicked
// tasks
func (r *Registry) RecordMeshBuild(workers int, panics int64) {
	r.MeshWorkers.Set(float64(workers))
	if panics > 0 {
		r.MeshWorkerPanics.Add(float64(panics))
	}
}

// UpdateSystemMetrics refreshes the runtime gauges
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}
