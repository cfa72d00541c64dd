package visualization

import (
	"math"

	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/montage"
)

// Tube resolution of volume links
const (
	TubularSegments = 48
	RadialSegments  = 20
)

// VolumeProfile sweeps a circle of TubeRadius along the curve
type VolumeProfile struct{}

// Kind implements MeshProfile
func (VolumeProfile) Kind() ProfileKind {
	return ProfileVolume
}

// Generate implements MeshProfile
func (VolumeProfile) Generate(curve CurveSpec, link montage.Link, opts ProfileOptions) *Mesh {
	radius := TubeRadius(link, opts)
	vertices, normals := sweep(curve.Path(), radius)
	return &Mesh{
		Kind:           ProfileVolume,
		Vertices:       vertices,
		Normals:        normals,
		Indices:        tubeIndices(),
		Radius:         radius,
		RadialSegments: RadialSegments,
	}
}

// Geometry implements MeshProfile
func (VolumeProfile) Geometry(curve CurveSpec, link montage.Link, opts ProfileOptions) []geometry.Vector3 {
	vertices, _ := sweep(curve.Path(), TubeRadius(link, opts))
	return vertices
}

func sweep(path *geometry.CurvePath, radius float64) (vertices, normals []geometry.Vector3) {
	tangents, frameN, frameB := frenetFrames(path, TubularSegments)

	count := (TubularSegments + 1) * (RadialSegments + 1)
	vertices = make([]geometry.Vector3, 0, count)
	normals = make([]geometry.Vector3, 0, count)

	for i := range tangents {
		p := path.PointAt(float64(i) / TubularSegments)
		for j := 0; j <= RadialSegments; j++ {
			v := float64(j) / RadialSegments * 2 * math.Pi
			sin := math.Sin(v)
			cos := -math.Cos(v)
			n := frameN[i].Scale(cos).Add(frameB[i].Scale(sin)).Normalize()
			normals = append(normals, n)
			vertices = append(vertices, p.AddScaled(n, radius))
		}
	}
	return vertices, normals
}

// frenetFrames computes parallel-transported frames at segments+1 points
func frenetFrames(path *geometry.CurvePath, segments int) (tangents, normals, binormals []geometry.Vector3) {
	tangents = make([]geometry.Vector3, segments+1)
	normals = make([]geometry.Vector3, segments+1)
	binormals = make([]geometry.Vector3, segments+1)

	for i := 0; i <= segments; i++ {
		tangents[i] = path.TangentAt(float64(i) / float64(segments))
	}

	// initial normal: the axis least aligned with the first tangent
	t0 := tangents[0]
	axis := geometry.Vec(1, 0, 0)
	ax, ay, az := math.Abs(t0.X), math.Abs(t0.Y), math.Abs(t0.Z)
	minVal := ax
	if ay <= minVal {
		minVal = ay
		axis = geometry.Vec(0, 1, 0)
	}
	if az <= minVal {
		axis = geometry.Vec(0, 0, 1)
	}
	vec := t0.Cross(axis).Normalize()
	normals[0] = t0.Cross(vec)
	binormals[0] = t0.Cross(normals[0])

	for i := 1; i <= segments; i++ {
		normals[i] = normals[i-1]
		binormals[i] = binormals[i-1]

		rot := tangents[i-1].Cross(tangents[i])
		if rot.Length() > 1e-12 {
			rot = rot.Normalize()
			theta := math.Acos(geometry.Clamp(tangents[i-1].Dot(tangents[i]), -1, 1))
			normals[i] = normals[i].RotateAxis(rot, theta)
		}
		binormals[i] = tangents[i].Cross(normals[i])
	}
	return tangents, normals, binormals
}

func tubeIndices() []uint32 {
	ring := uint32(RadialSegments + 1)
	indices := make([]uint32, 0, TubularSegments*RadialSegments*6)
	for j := uint32(1); j <= TubularSegments; j++ {
		for i := uint32(1); i <= RadialSegments; i++ {
			a := ring*(j-1) + (i - 1)
			b := ring*j + (i - 1)
			c := ring*j + i
			d := ring*(j-1) + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return indices
}
