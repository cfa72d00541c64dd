package montage

import (
	"math"

	"github.com/dd0wney/vizaj/pkg/geometry"
)

// New builds a montage from labels and positions, which must have equal length
func New(labels []string, positions []geometry.Vector3) (*Montage, error) {
	if len(labels) != len(positions) {
		return nil, NewError("montage").Context("labels vs positions").
			Cause(ErrNodeCountMismatch).Err()
	}
	nodes := make([]Node, len(positions))
	for i, p := range positions {
		if !p.IsFinite() {
			return nil, NewError("montage").Row(i).Cause(ErrNonNumeric).Err()
		}
		nodes[i] = Node{Index: i, Label: labels[i], Position: p}
	}
	return FromNodes(nodes), nil
}

// FromNodes wraps nodes whose Index fields already match their slice position
func FromNodes(nodes []Node) *Montage {
	m := &Montage{Nodes: nodes}
	m.maxDistance = maxPairwiseDistance(nodes)
	return m
}

// Len returns the node count
func (m *Montage) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Nodes)
}

// MaxDistance returns the largest distance between any two nodes
func (m *Montage) MaxDistance() float64 {
	return m.maxDistance
}

// Position returns the position of node i
func (m *Montage) Position(i int) geometry.Vector3 {
	return m.Nodes[i].Position
}

// Distance returns the Euclidean distance between nodes i and j
func (m *Montage) Distance(i, j int) float64 {
	return m.Nodes[i].Position.DistanceTo(m.Nodes[j].Position)
}

// NormDist returns Distance(i, j) / MaxDistance(), or 0 when every node coincides
func (m *Montage) NormDist(i, j int) float64 {
	if m.maxDistance == 0 {
		return 0
	}
	return m.Distance(i, j) / m.maxDistance
}

// Labels returns the node labels in index order
func (m *Montage) Labels() []string {
	out := make([]string, len(m.Nodes))
	for i, n := range m.Nodes {
		out[i] = n.Label
	}
	return out
}

// Centroid returns the mean node position
func (m *Montage) Centroid() geometry.Vector3 {
	var c geometry.Vector3
	if len(m.Nodes) == 0 {
		return c
	}
	for _, n := range m.Nodes {
		c = c.Add(n.Position)
	}
	return c.Scale(1 / float64(len(m.Nodes)))
}

// IsPlanar reports whether every node shares the same Y coordinate, which is
// the layout of flattened 2D montages.
func (m *Montage) IsPlanar() bool {
	if len(m.Nodes) == 0 {
		return false
	}
	y := m.Nodes[0].Position.Y
	for _, n := range m.Nodes[1:] {
		if n.Position.Y != y {
			return false
		}
	}
	return true
}

func maxPairwiseDistance(nodes []Node) float64 {
	maxDist := 0.0
	for i := range nodes {
		for j := 0; j < i; j++ {
			maxDist = math.Max(maxDist, nodes[i].Position.DistanceTo(nodes[j].Position))
		}
	}
	return maxDist
}
