package visualization

import "github.com/dd0wney/vizaj/pkg/geometry"

// PlaneCurve lifts links of a flat montage along +Y. The link is the quadratic
// A → C → B with C above the midpoint at height·|A−B|, stored as the same
// curve split at t=½ and raised to two cubic segments. Handle parameters and
// the alignment point do not apply.
type PlaneCurve struct{}

// Kind implements CurveStrategy
func (PlaneCurve) Kind() CurveKind {
	return CurvePlane
}

// Generate implements CurveStrategy
func (PlaneCurve) Generate(a, b, _ geometry.Vector3, p ShapeParams) (CurveSpec, error) {
	if a == b {
		return CurveSpec{}, ErrDegenerateBasis
	}
	mid := a.Midpoint(b)
	c := geometry.Vec(mid.X, a.DistanceTo(b)*p.Height, mid.Z)

	q1 := a.Midpoint(c)
	q2 := c.Midpoint(b)
	m := q1.Midpoint(q2)

	const k = 2.0 / 3.0
	return CurveSpec{Points: [7]geometry.Vector3{
		a,
		a.Lerp(q1, k),
		m.Lerp(q1, k),
		m,
		m.Lerp(q2, k),
		b.Lerp(q2, k),
		b,
	}}, nil
}
