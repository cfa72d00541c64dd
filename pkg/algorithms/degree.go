package algorithms

import (
	"github.com/dd0wney/vizaj/pkg/geometry"
)

// Incident is an undirected edge that may be hidden
type Incident interface {
	Endpoints() (int, int)
	Visible() bool
}

// Degrees holds the visible degree of every node in a montage
type Degrees struct {
	counts []int
	sum    int
}

// ComputeDegrees counts, for every node, the visible edges touching it.
// Endpoints outside [0, nodeCount) are ignored.
func ComputeDegrees[E Incident](nodeCount int, edges []E) Degrees {
	d := Degrees{counts: make([]int, max(nodeCount, 0))}
	for _, e := range edges {
		if !e.Visible() {
			continue
		}
		a, b := e.Endpoints()
		if a < 0 || b < 0 || a >= nodeCount || b >= nodeCount {
			continue
		}
		d.counts[a]++
		d.counts[b]++
		d.sum += 2
	}
	return d
}

// Len returns the node count
func (d Degrees) Len() int {
	return len(d.counts)
}

// Of returns the degree of node i, or 0 for an unknown node
func (d Degrees) Of(i int) int {
	if i < 0 || i >= len(d.counts) {
		return 0
	}
	return d.counts[i]
}

// All returns a copy of every degree, indexed by node
func (d Degrees) All() []int {
	return append([]int(nil), d.counts...)
}

// Sum returns the degree sum, always twice the visible edge count
func (d Degrees) Sum() int {
	return d.sum
}

// Mean returns Σdeg / n
func (d Degrees) Mean() float64 {
	if len(d.counts) == 0 {
		return 0
	}
	return float64(d.sum) / float64(len(d.counts))
}

// Max returns the highest degree and the first node holding it
func (d Degrees) Max() (node, degree int) {
	node = -1
	for i, c := range d.counts {
		if node < 0 || c > degree {
			node, degree = i, c
		}
	}
	return node, degree
}

// Indicator maps the degree of node i onto [0, 1] for the degree line drawn
// above each node: 1 - deg/(n-1)·length, clamped.
func (d Degrees) Indicator(i int, length float64) float64 {
	n := len(d.counts)
	if n < 2 {
		return 1
	}
	return geometry.Clamp(1-float64(d.Of(i))/float64(n-1)*length, 0, 1)
}

// Tracker keeps Degrees current for a fixed node count. Refresh is meant to
// be registered as a visibility observer.
type Tracker[E Incident] struct {
	nodeCount int
	current   Degrees
}

// NewTracker creates a tracker with every degree at 0
func NewTracker[E Incident](nodeCount int) *Tracker[E] {
	return &Tracker[E]{
		nodeCount: nodeCount,
		current:   ComputeDegrees[E](nodeCount, nil),
	}
}

// Refresh recomputes degrees from the visible edges
func (t *Tracker[E]) Refresh(visible []E) {
	t.current = ComputeDegrees(t.nodeCount, visible)
}

// Reset changes the node count and zeroes all degrees
func (t *Tracker[E]) Reset(nodeCount int) {
	t.nodeCount = nodeCount
	t.current = ComputeDegrees[E](nodeCount, nil)
}

// Degrees returns the last computed degrees
func (t *Tracker[E]) Degrees() Degrees {
	return t.current
}
