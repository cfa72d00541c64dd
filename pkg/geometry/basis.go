package geometry

// Basis is the edge-local coordinate frame of a link.
//
// The frame is built from the two endpoints after translating them by -Origin:
// i points from A to B, j points along A+B and k = i × j. i and j are generally
// not orthogonal, so the frame is only orthonormal-ish and ToLocal goes through
// a full matrix inverse. In local space the endpoints sit symmetrically about
// the j axis: A = (-|B-A|/2, |A+B|/2, 0), B = (|B-A|/2, |A+B|/2, 0).
type Basis struct {
	Origin  Vector3
	ToFrame Matrix3 // M = [i|j|k], local -> translated world
	inverse Matrix3
	valid   bool
}

// NewBasis builds the local frame for endpoints a and b around origin.
// Callers must guarantee a != b; coincident endpoints produce an invalid basis.
func NewBasis(a, b, origin Vector3) Basis {
	ta := a.Sub(origin)
	tb := b.Sub(origin)

	i := tb.Sub(ta).Normalize()
	j := ta.Add(tb).Normalize()
	k := i.Cross(j)
	if k.IsZero() {
		// i and j parallel or vanishing: A, B and origin are collinear
		return Basis{Origin: origin, ToFrame: Columns(i, j, k)}
	}

	m := Columns(i, j, k)
	inv, ok := m.Inverse()
	return Basis{
		Origin:  origin,
		ToFrame: m,
		inverse: inv,
		valid:   ok,
	}
}

// Valid reports whether the frame is invertible.
// A frame is singular when the endpoints coincide, when A+B vanishes, or when
// A and B are collinear with the origin.
func (b Basis) Valid() bool {
	return b.valid
}

// Inverse returns M⁻¹, mapping translated world coordinates into the frame
func (b Basis) Inverse() Matrix3 {
	return b.inverse
}

// ToLocal maps a world-space point into the frame
func (b Basis) ToLocal(p Vector3) Vector3 {
	return b.inverse.MulVector(p.Sub(b.Origin))
}

// ToWorld maps a frame point back into world space
func (b Basis) ToWorld(p Vector3) Vector3 {
	return b.ToFrame.MulVector(p).Add(b.Origin)
}
