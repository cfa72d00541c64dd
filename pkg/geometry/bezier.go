package geometry

import "sort"

// ArcLengthDivisions is the sampling resolution used for arc-length lookups
const ArcLengthDivisions = 200

const tangentDelta = 1e-4

// CubicBezier is a cubic Bezier segment P0 → P3 with handles P1, P2
type CubicBezier struct {
	P0, P1, P2, P3 Vector3
}

// Point evaluates the segment at parameter t ∈ [0,1]
func (c CubicBezier) Point(t float64) Vector3 {
	k := 1 - t
	b0 := k * k * k
	b1 := 3 * k * k * t
	b2 := 3 * k * t * t
	b3 := t * t * t
	return Vector3{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
		Z: b0*c.P0.Z + b1*c.P1.Z + b2*c.P2.Z + b3*c.P3.Z,
	}
}

// Points samples the segment at divisions+1 evenly spaced parameters
func (c CubicBezier) Points(divisions int) []Vector3 {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]Vector3, 0, divisions+1)
	for d := 0; d <= divisions; d++ {
		pts = append(pts, c.Point(float64(d)/float64(divisions)))
	}
	return pts
}

// lengths returns cumulative chord lengths at ArcLengthDivisions+1 samples
func (c CubicBezier) lengths() []float64 {
	out := make([]float64, ArcLengthDivisions+1)
	prev := c.Point(0)
	for d := 1; d <= ArcLengthDivisions; d++ {
		p := c.Point(float64(d) / ArcLengthDivisions)
		out[d] = out[d-1] + p.DistanceTo(prev)
		prev = p
	}
	return out
}

// Length approximates the arc length of the segment
func (c CubicBezier) Length() float64 {
	l := c.lengths()
	return l[len(l)-1]
}

// paramAt maps an arc-length fraction u ∈ [0,1] to the curve parameter t
func (c CubicBezier) paramAt(u float64, lengths []float64) float64 {
	total := lengths[len(lengths)-1]
	if total == 0 {
		return u
	}
	target := Clamp(u, 0, 1) * total
	i := sort.SearchFloat64s(lengths, target)
	if i == 0 {
		return 0
	}
	if i >= len(lengths) {
		return 1
	}
	before, after := lengths[i-1], lengths[i]
	frac := 0.0
	if after > before {
		frac = (target - before) / (after - before)
	}
	return (float64(i-1) + frac) / float64(len(lengths)-1)
}

// CurvePath chains cubic segments end to end
type CurvePath struct {
	Segments []CubicBezier
	cum      []float64   // cumulative segment lengths
	seg      [][]float64 // per-segment arc-length tables
}

// NewCurvePath builds a path and precomputes its arc-length tables
func NewCurvePath(segments ...CubicBezier) *CurvePath {
	cp := &CurvePath{
		Segments: segments,
		cum:      make([]float64, len(segments)),
		seg:      make([][]float64, len(segments)),
	}
	total := 0.0
	for i, s := range segments {
		cp.seg[i] = s.lengths()
		total += cp.seg[i][ArcLengthDivisions]
		cp.cum[i] = total
	}
	return cp
}

// Length returns the total arc length
func (cp *CurvePath) Length() float64 {
	if len(cp.cum) == 0 {
		return 0
	}
	return cp.cum[len(cp.cum)-1]
}

// Points samples every segment at divisionsPerSegment+1 parameters, skipping
// a point equal to the previous one (segment junctions).
func (cp *CurvePath) Points(divisionsPerSegment int) []Vector3 {
	var out []Vector3
	for _, s := range cp.Segments {
		for _, p := range s.Points(divisionsPerSegment) {
			if len(out) > 0 && out[len(out)-1] == p {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// PointAt returns the point at arc-length fraction u ∈ [0,1] of the whole path
func (cp *CurvePath) PointAt(u float64) Vector3 {
	i, local := cp.locate(u)
	if i < 0 {
		return Vector3{}
	}
	s := cp.Segments[i]
	return s.Point(s.paramAt(local, cp.seg[i]))
}

// TangentAt returns the unit tangent at arc-length fraction u
func (cp *CurvePath) TangentAt(u float64) Vector3 {
	u1 := Clamp(u-tangentDelta, 0, 1)
	u2 := Clamp(u+tangentDelta, 0, 1)
	return cp.PointAt(u2).Sub(cp.PointAt(u1)).Normalize()
}

// locate finds the segment holding arc fraction u and the fraction within it
func (cp *CurvePath) locate(u float64) (int, float64) {
	if len(cp.Segments) == 0 {
		return -1, 0
	}
	total := cp.Length()
	d := Clamp(u, 0, 1) * total
	i := sort.SearchFloat64s(cp.cum, d)
	if i >= len(cp.cum) {
		i = len(cp.cum) - 1
	}
	start := 0.0
	if i > 0 {
		start = cp.cum[i-1]
	}
	segLen := cp.cum[i] - start
	if segLen == 0 {
		return i, 0
	}
	return i, (d - start) / segLen
}
