package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestVectorOps(t *testing.T) {
	a := Vec(1, 2, 3)
	b := Vec(4, -1, 2)

	assert.Equal(t, Vec(5, 1, 5), a.Add(b))
	assert.Equal(t, Vec(-3, 3, 1), a.Sub(b))
	assert.Equal(t, 8.0, a.Dot(b))
	assert.Equal(t, Vec(7, 10, -9), a.Cross(b))
	assert.InDelta(t, math.Sqrt(14), a.Length(), tol)
	assert.Equal(t, Vector3{}, Vector3{}.Normalize(), "zero vector normalizes to zero")
	assert.InDelta(t, 1.0, b.Normalize().Length(), tol)
	assert.Equal(t, Vec(2.5, 0.5, 2.5), a.Midpoint(b))
}

func TestRotateZ(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Vector3
	}{
		{"quarter turn", math.Pi / 2, Vec(0, 1, 0)},
		{"half turn", math.Pi, Vec(-1, 0, 0)},
		{"negative quarter", -math.Pi / 2, Vec(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vec(1, 0, 0).RotateZ(tt.angle)
			assert.True(t, got.ApproxEqual(tt.want, tol), "got %v want %v", got, tt.want)
		})
	}
}

func TestRotateAxis(t *testing.T) {
	got := Vec(1, 0, 0).RotateAxis(Vec(0, 0, 1), math.Pi/2)
	assert.True(t, got.ApproxEqual(Vec(1, 0, 0).RotateZ(math.Pi/2), tol))

	got = Vec(0, 0, 1).RotateAxis(Vec(1, 0, 0), math.Pi/2)
	assert.True(t, got.ApproxEqual(Vec(0, -1, 0), tol))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, 1.0, Clamp(2.0, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 1))
}

func TestMatrixInverse(t *testing.T) {
	m := Matrix3{{2, 1, 0}, {0, 1, 3}, {1, 0, 1}}
	inv, ok := m.Inverse()
	require.True(t, ok)

	for _, v := range []Vector3{Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1), Vec(-3, 2.5, 7)} {
		assert.True(t, inv.MulVector(m.MulVector(v)).ApproxEqual(v, tol), "%v", v)
	}

	_, ok = Matrix3{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}.Inverse()
	assert.False(t, ok, "singular matrix must not invert")
}

func TestBasisSymmetricFrame(t *testing.T) {
	b := NewBasis(Vec(-3, 4, 0), Vec(3, 4, 0), Vector3{})
	require.True(t, b.Valid())

	assert.True(t, b.ToLocal(Vec(-3, 4, 0)).ApproxEqual(Vec(-3, 4, 0), tol))
	assert.True(t, b.ToLocal(Vec(3, 4, 0)).ApproxEqual(Vec(3, 4, 0), tol))
}

func TestBasisLocalCoordinates(t *testing.T) {
	a := Vec(1, 2, 3)
	bp := Vec(4, -1, 2)
	origin := Vec(0, -30, 0)
	basis := NewBasis(a, bp, origin)
	require.True(t, basis.Valid())

	ta, tb := a.Sub(origin), bp.Sub(origin)
	half := tb.Sub(ta).Length() / 2
	up := ta.Add(tb).Length() / 2

	la := basis.ToLocal(a)
	lb := basis.ToLocal(bp)
	assert.InDelta(t, -half, la.X, 1e-9)
	assert.InDelta(t, up, la.Y, 1e-9)
	assert.InDelta(t, 0, la.Z, 1e-9)
	assert.InDelta(t, half, lb.X, 1e-9)
	assert.InDelta(t, up, lb.Y, 1e-9)

	p := Vec(7, 8, -9)
	assert.True(t, basis.ToWorld(basis.ToLocal(p)).ApproxEqual(p, 1e-9))
}

func TestBasisDegenerate(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector3
	}{
		{"coincident endpoints", Vec(5, 5, 5), Vec(5, 5, 5)},
		{"opposite endpoints", Vec(-2, 0, 0), Vec(2, 0, 0)},
		{"collinear with origin", Vec(1, 1, 1), Vec(2, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				b := NewBasis(tt.a, tt.b, Vector3{})
				assert.False(t, b.Valid())
			})
		})
	}
}

func TestCubicBezier(t *testing.T) {
	line := CubicBezier{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0), Vec(3, 0, 0)}

	assert.Equal(t, line.P0, line.Point(0))
	assert.Equal(t, line.P3, line.Point(1))
	assert.InDelta(t, 3.0, line.Length(), 1e-9)

	pts := line.Points(4)
	require.Len(t, pts, 5)
	assert.True(t, pts[2].ApproxEqual(Vec(1.5, 0, 0), tol))
}

func TestCurvePath(t *testing.T) {
	left := CubicBezier{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0), Vec(3, 0, 0)}
	right := CubicBezier{Vec(3, 0, 0), Vec(3, 1, 0), Vec(3, 2, 0), Vec(3, 3, 0)}
	path := NewCurvePath(left, right)

	assert.InDelta(t, 6.0, path.Length(), 1e-9)
	assert.Len(t, path.Points(24), 49, "junction point is shared")

	assert.True(t, path.PointAt(0).ApproxEqual(Vec(0, 0, 0), 1e-9))
	assert.True(t, path.PointAt(0.5).ApproxEqual(Vec(3, 0, 0), 1e-6))
	assert.True(t, path.PointAt(0.75).ApproxEqual(Vec(3, 1.5, 0), 1e-6))
	assert.True(t, path.PointAt(1).ApproxEqual(Vec(3, 3, 0), 1e-9))

	assert.True(t, path.TangentAt(0.25).ApproxEqual(Vec(1, 0, 0), 1e-6))
	assert.True(t, path.TangentAt(0.9).ApproxEqual(Vec(0, 1, 0), 1e-6))
}
