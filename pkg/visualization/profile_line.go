package visualization

import (
	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/montage"
)

// LineArcSegments is the total number of polyline divisions of a link,
// shared evenly between its segments
const LineArcSegments = 48

// LineProfile renders a link as a thin polyline; strength only drives color
type LineProfile struct{}

// Kind implements MeshProfile
func (LineProfile) Kind() ProfileKind {
	return ProfileLine
}

// Generate implements MeshProfile
func (p LineProfile) Generate(curve CurveSpec, link montage.Link, opts ProfileOptions) *Mesh {
	return &Mesh{
		Kind:     ProfileLine,
		Vertices: p.Geometry(curve, link, opts),
	}
}

// Geometry implements MeshProfile
func (LineProfile) Geometry(curve CurveSpec, _ montage.Link, _ ProfileOptions) []geometry.Vector3 {
	segments := curve.Segments()
	return curve.Path().Points(LineArcSegments / len(segments))
}
