// Package scene is the hand-off format between the engine and a renderer or
// exporter: every link with its control points, visibility and color, and
// every node with its degree.
package scene

import (
	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/visualization"
)

// Snapshot is the full renderable state at one instant
type Snapshot struct {
	MontageID    string         `json:"montageId" yaml:"montage_id"`
	Params       config.Params  `json:"params" yaml:"params"`
	Density      float64        `json:"density" yaml:"density"`
	MaxDensity   float64        `json:"maxDensity" yaml:"max_density"`
	TotalLinks   int            `json:"totalLinks" yaml:"total_links"`
	VisibleLinks int            `json:"visibleLinks" yaml:"visible_links"`
	MeanDegree   float64        `json:"meanDegree" yaml:"mean_degree"`
	ColorMap     colormap.State `json:"colorMap" yaml:"color_map"`
	Nodes        []Node         `json:"nodes" yaml:"nodes"`
	Links        []Link         `json:"links" yaml:"links"`
}

// Node is a sensor with its visible degree
type Node struct {
	Index     int              `json:"index" yaml:"index"`
	Label     string           `json:"label" yaml:"label"`
	Position  geometry.Vector3 `json:"position" yaml:"position"`
	Degree    int              `json:"degree" yaml:"degree"`
	Indicator float64          `json:"indicator" yaml:"indicator"`
}

// Link is one renderable edge
type Link struct {
	Node1    int     `json:"node1" yaml:"node1"`
	Node2    int     `json:"node2" yaml:"node2"`
	Strength float64 `json:"strength" yaml:"strength"`
	NormDist float64 `json:"normDist" yaml:"norm_dist"`
	Visible  bool    `json:"visible" yaml:"visible"`
	// Color is the #rrggbb display color
	Color   string                    `json:"color" yaml:"color"`
	Curve   visualization.CurveSpec   `json:"curve" yaml:"curve"`
	Profile visualization.ProfileKind `json:"profile" yaml:"profile"`
	Radius  float64                   `json:"radius,omitempty" yaml:"radius,omitempty"`
	// Vertices is the flattened x,y,z mesh buffer, only present when requested
	Vertices []float32 `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Indices  []uint32  `json:"indices,omitempty" yaml:"indices,omitempty"`
}

// Visible returns only the links currently shown
func (s *Snapshot) Visible() []Link {
	out := make([]Link, 0, s.VisibleLinks)
	for _, l := range s.Links {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// TopDegrees returns up to n nodes ordered by degree, highest first
func (s *Snapshot) TopDegrees(n int) []Node {
	nodes := append([]Node(nil), s.Nodes...)
	// insertion sort keeps equal degrees in index order
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j].Degree > nodes[j-1].Degree; j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
	if n < len(nodes) {
		nodes = nodes[:n]
	}
	return nodes
}
