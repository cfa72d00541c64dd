package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Gauge.GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.LinksTotal == nil || r.LinksVisible == nil || r.Density == nil {
		t.Error("link metrics not initialized")
	}
	if r.OperationsTotal == nil || r.OperationDuration == nil {
		t.Error("operation metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}

	// separate registries must not clash on registration
	if NewRegistry().GetPrometheusRegistry() == r.GetPrometheusRegistry() {
		t.Error("registries should be independent")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordOperation(t *testing.T) {
	r := NewRegistry()

	r.RecordOperation("set_density", nil, time.Millisecond)
	r.RecordOperation("set_density", nil, 2*time.Millisecond)
	r.RecordOperation("load_edges", errors.New("no montage"), time.Millisecond)

	ok, err := r.OperationsTotal.GetMetricWithLabelValues("set_density", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, ok); v != 2 {
		t.Errorf("success counter = %v, want 2", v)
	}

	failed, err := r.OperationsTotal.GetMetricWithLabelValues("load_edges", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, failed); v != 1 {
		t.Errorf("error counter = %v, want 1", v)
	}
}

func TestRecordLoadAndVisibility(t *testing.T) {
	r := NewRegistry()

	r.RecordLoad(4, 5, 1)
	r.RecordRejected(ReasonInvalid, 2)
	r.RecordVisibility(0.5, 3, 1.5, 2)

	if v := gaugeValue(t, r.NodesTotal); v != 4 {
		t.Errorf("nodes = %v, want 4", v)
	}
	if v := gaugeValue(t, r.LinksTotal); v != 5 {
		t.Errorf("links = %v, want 5", v)
	}
	if v := counterValue(t, r.LinksRejected.WithLabelValues(ReasonDegenerate)); v != 1 {
		t.Errorf("degenerate rejections = %v, want 1", v)
	}
	if v := counterValue(t, r.LinksRejected.WithLabelValues(ReasonInvalid)); v != 2 {
		t.Errorf("invalid rejections = %v, want 2", v)
	}
	if v := gaugeValue(t, r.LinksVisible); v != 3 {
		t.Errorf("visible = %v, want 3", v)
	}
	if v := gaugeValue(t, r.MeanDegree); v != 1.5 {
		t.Errorf("mean degree = %v, want 1.5", v)
	}
}

func TestRecordMeshVertices(t *testing.T) {
	r := NewRegistry()
	profiles := []string{"line", "volume"}

	r.RecordMeshVertices("volume", 1029, profiles)
	r.RecordMeshVertices("line", 49, profiles)

	if v := gaugeValue(t, r.MeshVertices.WithLabelValues("line")); v != 49 {
		t.Errorf("line vertices = %v, want 49", v)
	}
	if v := gaugeValue(t, r.MeshVertices.WithLabelValues("volume")); v != 0 {
		t.Errorf("volume vertices = %v, want 0 after switching", v)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if v := gaugeValue(t, r.GoRoutines); v < 1 {
		t.Errorf("goroutines = %v, want at least 1", v)
	}
	if v := gaugeValue(t, r.MemoryAllocBytes); v <= 0 {
		t.Errorf("alloc bytes = %v, want > 0", v)
	}
}

func TestGather(t *testing.T) {
	r := NewRegistry()
	r.RecordVisibility(0.2, 9, 1.8, 4)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "vizaj_density" {
			found = true
			if got := f.GetMetric()[0].GetGauge().GetValue(); got != 0.2 {
				t.Errorf("vizaj_density = %v, want 0.2", got)
			}
		}
	}
	if !found {
		t.Error("vizaj_density not gathered")
	}
}

func TestRecordMeshBuild(t *testing.T) {
	r := NewRegistry()

	r.RecordMeshBuild(4, 0)
	r.RecordMeshBuild(1, 2)

	if v := gaugeValue(t, r.MeshWorkers); v != 1 {
		t.Errorf("workers = %v, want the last build's 1", v)
	}
	if v := counterValue(t, r.MeshWorkerPanics); v != 2 {
		t.Errorf("panics = %v, want 2", v)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"vizaj_mesh_workers", "vizaj_mesh_worker_panics_total", "vizaj_process_uptime_seconds"} {
		if !names[want] {
			t.Errorf("%s not gathered", want)
		}
	}
}
