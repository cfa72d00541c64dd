package montage

import (
	"fmt"

	"github.com/dd0wney/vizaj/pkg/geometry"
)

// Node is a sensor of the montage
type Node struct {
	Index    int              `json:"index" yaml:"index"`
	Label    string           `json:"label" yaml:"label"`
	Position geometry.Vector3 `json:"position" yaml:"position"`
}

// Link is an undirected weighted connection between two nodes.
// Node1 and Node2 are node indices; NormDist is the endpoint distance divided
// by the montage's maximum pairwise distance.
type Link struct {
	Node1    int     `json:"node1" yaml:"node1"`
	Node2    int     `json:"node2" yaml:"node2"`
	Strength float64 `json:"strength" yaml:"strength"`
	NormDist float64 `json:"normDist" yaml:"norm_dist"`
}

// Endpoints returns the node indices of the link
func (l Link) Endpoints() (int, int) {
	return l.Node1, l.Node2
}

// String implements fmt.Stringer
func (l Link) String() string {
	return fmt.Sprintf("%d-%d(%.4g)", l.Node1, l.Node2, l.Strength)
}

// Montage is the set of loaded nodes with their cached maximum pairwise distance
type Montage struct {
	Nodes       []Node
	maxDistance float64
}

// EdgeRecord is one entry of an explicit edge list
type EdgeRecord struct {
	Source   int      `json:"source" yaml:"source" validate:"min=0"`
	Target   int      `json:"target" yaml:"target" validate:"min=0,nefield=Source"`
	Strength *float64 `json:"strength" yaml:"strength" validate:"required"`
}

// File is the JSON montage document: labels, coordinates and an optional edge list
type File struct {
	Labels      []string     `json:"labels"`
	Coordinates [][3]float64 `json:"coordinates"`
	Edges       []EdgeRecord `json:"edges,omitempty"`
	Matrix      [][]float64  `json:"matrix,omitempty"`
}
