package visualization

import (
	"errors"
	"fmt"

	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/montage"
)

// ErrDegenerateBasis is returned when an edge's local frame cannot be inverted
var ErrDegenerateBasis = errors.New("degenerate link basis")

// DefaultAlignmentTarget places the alignment point 30 units below the
// montage centroid
const DefaultAlignmentTarget = 30.0

// ShapeParams configures the bend of every link
type ShapeParams struct {
	// Height scales the apex elevation with the endpoint distance
	Height float64 `json:"height" yaml:"height"`
	// TopHandleDistance scales the apex handles
	TopHandleDistance float64 `json:"topHandleDistance" yaml:"top_handle_distance"`
	// TopPointAngle rotates the apex handles, as a fraction of π
	TopPointAngle float64 `json:"topPointAngle" yaml:"top_point_angle"`
	// NodeAngle rotates the endpoint handles, in [0,1]
	NodeAngle float64 `json:"nodeAngle" yaml:"node_angle"`
	// NodeHandleDistance scales the endpoint handles
	NodeHandleDistance float64 `json:"nodeHandleDistance" yaml:"node_handle_distance"`
}

// CurveKind selects the curve strategy for a montage
type CurveKind string

const (
	// CurveScalp bends links in the plane spanned by the endpoints and the alignment point
	CurveScalp CurveKind = "scalp"
	// CurvePlane lifts links straight up from a flat montage
	CurvePlane CurveKind = "plane"
	// CurveAuto picks CurvePlane for flat montages and CurveScalp otherwise
	CurveAuto CurveKind = "auto"
)

// CurveKinds lists the accepted curve settings
var CurveKinds = []string{string(CurveScalp), string(CurvePlane), string(CurveAuto)}

// For returns the concrete kind used for montage m. Only CurveAuto depends
// on the montage; with no montage it falls back to CurveScalp.
func (k CurveKind) For(m *montage.Montage) CurveKind {
	if k != CurveAuto {
		return k
	}
	if m != nil && m.IsPlanar() {
		return CurvePlane
	}
	return CurveScalp
}

// CurveSpec is a link path made of two chained cubic Bezier segments:
// A → AHandle → ApexLeft → Apex and Apex → ApexRight → BHandle → B.
type CurveSpec struct {
	Points [7]geometry.Vector3 `json:"points" yaml:"points"`
}

// Indices into CurveSpec.Points
const (
	PointA = iota
	PointAHandle
	PointApexLeft
	PointApex
	PointApexRight
	PointBHandle
	PointB
)

// Segments returns the two cubic segments of the curve
func (c CurveSpec) Segments() [2]geometry.CubicBezier {
	p := c.Points
	return [2]geometry.CubicBezier{
		{P0: p[PointA], P1: p[PointAHandle], P2: p[PointApexLeft], P3: p[PointApex]},
		{P0: p[PointApex], P1: p[PointApexRight], P2: p[PointBHandle], P3: p[PointB]},
	}
}

// Path builds the sampled path of the curve
func (c CurveSpec) Path() *geometry.CurvePath {
	s := c.Segments()
	return geometry.NewCurvePath(s[0], s[1])
}

// CurveStrategy turns two node positions into a CurveSpec
type CurveStrategy interface {
	Kind() CurveKind
	Generate(a, b, alignment geometry.Vector3, p ShapeParams) (CurveSpec, error)
}

// NewCurveStrategy returns the strategy for kind. CurveAuto yields the
// scalp strategy; resolve it with For once a montage is known.
func NewCurveStrategy(kind CurveKind) (CurveStrategy, error) {
	switch kind {
	case CurveScalp, CurveAuto, "":
		return ScalpCurve{}, nil
	case CurvePlane:
		return PlaneCurve{}, nil
	}
	return nil, fmt.Errorf("unknown curve kind %q", kind)
}

// AlignmentPoint converts the scalar alignment target into the point all links
// bend away from, target units below center. Large magnitudes flatten the
// curves; negative values invert them.
func AlignmentPoint(center geometry.Vector3, target float64) geometry.Vector3 {
	return center.Sub(geometry.Vec(0, target, 0))
}
