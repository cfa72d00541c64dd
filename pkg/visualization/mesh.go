package visualization

import "github.com/dd0wney/vizaj/pkg/geometry"

// Mesh is the generated geometry of one link
type Mesh struct {
	Kind     ProfileKind
	Vertices []geometry.Vector3
	// Normals and Indices are only set for volume meshes
	Normals []geometry.Vector3
	Indices []uint32
	Radius  float64
	// RadialSegments is the ring size of a volume mesh, seam vertex excluded
	RadialSegments int
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// UpdateVertices overwrites the vertex buffer in place. It returns false and
// leaves the mesh untouched when the vertex count differs, in which case the
// mesh must be regenerated.
func (m *Mesh) UpdateVertices(raw []geometry.Vector3) bool {
	if len(raw) != len(m.Vertices) {
		return false
	}
	copy(m.Vertices, raw)
	if m.Kind == ProfileVolume {
		m.recomputeRingNormals()
	}
	return true
}

// recomputeRingNormals points each normal away from the centre of its ring
func (m *Mesh) recomputeRingNormals() {
	ring := m.RadialSegments + 1
	if m.RadialSegments <= 0 || len(m.Vertices)%ring != 0 {
		return
	}
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = make([]geometry.Vector3, len(m.Vertices))
	}
	for start := 0; start < len(m.Vertices); start += ring {
		var center geometry.Vector3
		for j := 0; j < m.RadialSegments; j++ {
			center = center.Add(m.Vertices[start+j])
		}
		center = center.Scale(1 / float64(m.RadialSegments))
		for j := 0; j < ring; j++ {
			m.Normals[start+j] = m.Vertices[start+j].Sub(center).Normalize()
		}
	}
}

// Flatten returns the vertices as a packed xyz float32 buffer
func (m *Mesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return out
}
