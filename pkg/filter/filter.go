// Package filter owns the strength-ordered collection of renderable links and
// decides which of them are visible.
//
// Density is a fraction of the fully connected edge count n(n-1)/2, so the
// same value is comparable across montages of different sizes: a density d
// always shows the strongest round(d·n(n-1)/2) links.
package filter

import (
	"math"
	"slices"

	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/montage"
	"github.com/dd0wney/vizaj/pkg/visualization"
	"github.com/lucasb-eyer/go-colorful"
)

// EcoTargetDegree is the mean node degree eco filtering aims for
const EcoTargetDegree = 3.0

// RenderableEdge pairs a link with its curve and generated mesh.
// Visibility is only written by the Filter; Color only by the color mapper.
type RenderableEdge struct {
	Link    montage.Link
	Curve   visualization.CurveSpec
	Mesh    *visualization.Mesh
	Color   colorful.Color
	visible bool
}

// Visible reports whether the edge is in the displayed prefix
func (e *RenderableEdge) Visible() bool {
	return e.visible
}

// Endpoints returns the node indices of the link
func (e *RenderableEdge) Endpoints() (int, int) {
	return e.Link.Node1, e.Link.Node2
}

// Strength returns the link weight
func (e *RenderableEdge) Strength() float64 {
	return e.Link.Strength
}

// SetColor stores the display color
func (e *RenderableEdge) SetColor(c colorful.Color) {
	e.Color = c
}

// Observer is notified after every visibility change
type Observer func(visible []*RenderableEdge)

// Filter is the ordered RenderableEdge collection and its density state
type Filter struct {
	edges          []*RenderableEdge
	nodeCount      int
	density        float64
	visibleCount   int
	fullyConnected int
	observers      []Observer
}

// New creates an empty filter
func New() *Filter {
	return &Filter{}
}

// OnChange registers an observer called after each visibility update
func (f *Filter) OnChange(o Observer) {
	f.observers = append(f.observers, o)
}

// Load replaces the collection. Edges are stably sorted by descending
// strength; ties keep their input order. Every edge starts hidden until the
// next SetDensity.
func (f *Filter) Load(edges []*RenderableEdge, nodeCount int) {
	f.edges = slices.Clone(edges)
	slices.SortStableFunc(f.edges, func(a, b *RenderableEdge) int {
		switch {
		case a.Link.Strength > b.Link.Strength:
			return -1
		case a.Link.Strength < b.Link.Strength:
			return 1
		}
		return 0
	})
	for _, e := range f.edges {
		e.visible = false
	}
	f.nodeCount = nodeCount
	f.fullyConnected = FullyConnected(nodeCount)
	f.visibleCount = 0
}

// Clear drops every edge and resets density to 0
func (f *Filter) Clear() {
	f.edges = nil
	f.density = 0
	f.visibleCount = 0
	f.notify()
}

// Edges returns the strength-ordered collection
func (f *Filter) Edges() []*RenderableEdge {
	return f.edges
}

// Len returns the total edge count
func (f *Filter) Len() int {
	return len(f.edges)
}

// NodeCount returns the node count the collection was loaded for
func (f *Filter) NodeCount() int {
	return f.nodeCount
}

// Density returns the current (clamped) density
func (f *Filter) Density() float64 {
	return f.density
}

// VisibleCount returns the number of visible edges
func (f *Filter) VisibleCount() int {
	return f.visibleCount
}

// Visible returns the visible prefix of the collection
func (f *Filter) Visible() []*RenderableEdge {
	return f.edges[:f.visibleCount]
}

// MaxDensity is the density at which every loaded edge is visible
func (f *Filter) MaxDensity() float64 {
	if f.fullyConnected == 0 {
		return 0
	}
	return float64(len(f.edges)) / float64(f.fullyConnected)
}

// SetDensity clamps d to [0, MaxDensity], shows the strongest
// round(d·n(n-1)/2) edges, hides the rest and notifies observers.
// It returns the applied density.
func (f *Filter) SetDensity(d float64) float64 {
	if len(f.edges) == 0 {
		f.density = 0
		f.visibleCount = 0
		f.notify()
		return 0
	}

	f.density = geometry.Clamp(d, 0, f.MaxDensity())
	count := int(math.Round(float64(f.fullyConnected) * f.density))
	f.visibleCount = min(count, len(f.edges))

	for i, e := range f.edges {
		e.visible = i < f.visibleCount
	}
	f.notify()
	return f.density
}

// Reapply re-clamps and reapplies the current density, e.g. after a reload
// that kept the previous setting
func (f *Filter) Reapply() float64 {
	return f.SetDensity(f.density)
}

// EcoFilter applies EcoDensity for the loaded collection
func (f *Filter) EcoFilter() float64 {
	return f.SetDensity(EcoDensity(f.nodeCount))
}

func (f *Filter) notify() {
	visible := f.Visible()
	for _, o := range f.observers {
		o(visible)
	}
}

// FullyConnected returns n(n-1)/2
func FullyConnected(nodeCount int) int {
	if nodeCount < 2 {
		return 0
	}
	return nodeCount * (nodeCount - 1) / 2
}

// EcoDensity returns the density whose visible edge count, 3/2·n, gives a
// mean degree of EcoTargetDegree. On a complete edge set this equals
// (3/2·n) / totalEdges.
func EcoDensity(nodeCount int) float64 {
	fc := FullyConnected(nodeCount)
	if fc == 0 {
		return 0
	}
	return EcoTargetDegree / 2 * float64(nodeCount) / float64(fc)
}
