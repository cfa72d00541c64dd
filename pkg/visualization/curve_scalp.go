package visualization

import (
	"math"

	"github.com/dd0wney/vizaj/pkg/geometry"
)

// ScalpCurve bends each link inside its own local frame (see geometry.Basis).
// In that frame the endpoints are symmetric about the j axis, the apex sits on
// that axis, and every handle is a rotation about the local z axis.
type ScalpCurve struct{}

// Kind implements CurveStrategy
func (ScalpCurve) Kind() CurveKind {
	return CurveScalp
}

// Generate implements CurveStrategy
func (ScalpCurve) Generate(a, b, alignment geometry.Vector3, p ShapeParams) (CurveSpec, error) {
	basis := geometry.NewBasis(a, b, alignment)
	if !basis.Valid() {
		return CurveSpec{}, ErrDegenerateBasis
	}

	la := basis.ToLocal(a)
	lb := basis.ToLocal(b)
	mid := la.Midpoint(lb).Length()

	apex := geometry.Vec(0, la.DistanceTo(lb)*p.Height+mid, 0)

	topAngle := math.Pi * p.TopPointAngle
	apexLeft := apex.Add(geometry.Vec(la.X*p.TopHandleDistance, 0, 0)).RotateZ(topAngle)
	apexRight := apex.Add(geometry.Vec(lb.X*p.TopHandleDistance, 0, 0)).RotateZ(-topAngle)

	nodeAngle := math.Pi + math.Pi*p.NodeAngle
	aHandle := geometry.Vec(la.X*p.NodeHandleDistance, 0, 0).RotateZ(nodeAngle).Add(la)
	bHandle := geometry.Vec(lb.X*p.NodeHandleDistance, 0, 0).RotateZ(-nodeAngle).Add(lb)

	return CurveSpec{Points: [7]geometry.Vector3{
		a,
		basis.ToWorld(aHandle),
		basis.ToWorld(apexLeft),
		basis.ToWorld(apex),
		basis.ToWorld(apexRight),
		basis.ToWorld(bHandle),
		b,
	}}, nil
}
