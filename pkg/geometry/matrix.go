package geometry

// Matrix3 is a row-major 3x3 matrix
type Matrix3 [3][3]float64

// Columns builds a matrix whose columns are i, j and k
func Columns(i, j, k Vector3) Matrix3 {
	return Matrix3{
		{i.X, j.X, k.X},
		{i.Y, j.Y, k.Y},
		{i.Z, j.Z, k.Z},
	}
}

// MulVector returns m·v
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Determinant of m
func (m Matrix3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m via the adjugate.
// ok is false when m is singular or the result is not finite.
func (m Matrix3) Inverse() (inv Matrix3, ok bool) {
	det := m.Determinant()
	if det == 0 || !isFinite(det) {
		return Matrix3{}, false
	}
	d := 1 / det

	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * d
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * d
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * d
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * d
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * d
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * d
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * d
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * d
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * d

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if !isFinite(inv[row][col]) {
				return Matrix3{}, false
			}
		}
	}
	return inv, true
}
