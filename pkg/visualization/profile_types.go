package visualization

import (
	"fmt"
	"math"

	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/montage"
)

// ProfileKind selects how a CurveSpec becomes a mesh
type ProfileKind string

const (
	// ProfileLine samples the curve as a polyline
	ProfileLine ProfileKind = "line"
	// ProfileVolume sweeps a circular section along the curve
	ProfileVolume ProfileKind = "volume"
)

// ProfileKinds lists the supported profiles
var ProfileKinds = []string{string(ProfileLine), string(ProfileVolume)}

// ProfileOptions carries the montage-wide inputs of a profile
type ProfileOptions struct {
	Thickness float64
	NodeCount int
}

// MeshProfile converts a CurveSpec into renderable geometry.
// Geometry returns only the vertex positions Generate would produce, so an
// existing mesh can be updated in place after a shape change.
type MeshProfile interface {
	Kind() ProfileKind
	Generate(curve CurveSpec, link montage.Link, opts ProfileOptions) *Mesh
	Geometry(curve CurveSpec, link montage.Link, opts ProfileOptions) []geometry.Vector3
}

// ProfileFor returns the profile implementation for kind
func ProfileFor(kind ProfileKind) (MeshProfile, error) {
	switch kind {
	case ProfileLine, "":
		return LineProfile{}, nil
	case ProfileVolume:
		return VolumeProfile{}, nil
	}
	return nil, fmt.Errorf("unknown mesh profile %q", kind)
}

// TubeRadius is the swept radius of a volume link: short links are thicker,
// and the whole network thins as the node count grows.
func TubeRadius(link montage.Link, opts ProfileOptions) float64 {
	n := math.Max(float64(opts.NodeCount), 1)
	return (1 - link.NormDist) * opts.Thickness * 10 / math.Sqrt(n)
}
