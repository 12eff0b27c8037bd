package geometry

// Triangle is one facet of a triangle soup: three ordered vertices plus
// the normal carried by the source file. The stored normal is not
// validated against the winding order; it may be zero when the source
// data omits it.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a triangle from a normal and three vertices.
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// Area returns the surface area of the triangle: half the magnitude of
// the cross product of two edges. Collinear or duplicate vertices give 0.
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// ComputeNormal derives a unit normal from the winding order, ignoring
// the stored Normal field. Degenerate triangles yield the zero vector.
func (t Triangle) ComputeNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Center returns the centroid of the triangle.
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// signedVolume returns the signed volume of the tetrahedron spanned by
// the origin and the triangle, per the divergence theorem.
func (t Triangle) signedVolume() float64 {
	return t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
}
