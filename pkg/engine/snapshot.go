package engine

import (
	"github.com/dd0wney/vizaj/pkg/scene"
)

// SnapshotOptions selects optional snapshot content
type SnapshotOptions struct {
	// Meshes includes the flattened vertex and index buffers of every link
	Meshes bool
	// VisibleOnly omits hidden links
	VisibleOnly bool
}

// Snapshot captures the renderable state for a renderer or exporter
func (e *Engine) Snapshot(opts SnapshotOptions) *scene.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	degrees := e.degrees.Degrees()
	snap := &scene.Snapshot{
		MontageID:    e.montageID,
		Params:       e.params,
		Density:      e.filter.Density(),
		MaxDensity:   e.filter.MaxDensity(),
		TotalLinks:   e.filter.Len(),
		VisibleLinks: e.filter.VisibleCount(),
		MeanDegree:   degrees.Mean(),
		ColorMap:     e.colors.State(),
	}

	if e.montage != nil {
		snap.Nodes = make([]scene.Node, 0, e.montage.Len())
		for _, n := range e.montage.Nodes {
			snap.Nodes = append(snap.Nodes, scene.Node{
				Index:     n.Index,
				Label:     n.Label,
				Position:  n.Position,
				Degree:    degrees.Of(n.Index),
				Indicator: degrees.Indicator(n.Index, e.params.DegreeLineLength),
			})
		}
	}

	for _, edge := range e.filter.Edges() {
		if opts.VisibleOnly && !edge.Visible() {
			continue
		}
		link := scene.Link{
			Node1:    edge.Link.Node1,
			Node2:    edge.Link.Node2,
			Strength: edge.Link.Strength,
			NormDist: edge.Link.NormDist,
			Visible:  edge.Visible(),
			Color:    edge.Color.Hex(),
			Curve:    edge.Curve,
			Profile:  edge.Mesh.Kind,
			Radius:   edge.Mesh.Radius,
		}
		if opts.Meshes {
			link.Vertices = edge.Mesh.Flatten()
			link.Indices = edge.Mesh.Indices
		}
		snap.Links = append(snap.Links, link)
	}
	return snap
}
