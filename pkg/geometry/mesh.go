package geometry

// Mesh is a flat, ordered sequence of triangles. There is no
// shared-vertex graph: vertices duplicated across triangles stay
// duplicated. A mesh with zero triangles is valid and yields zero or
// sentinel values from every computation below.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// NewMesh creates an empty named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddTriangle appends a triangle to the mesh.
func (m *Mesh) AddTriangle(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// SurfaceArea returns the sum of all triangle areas, 0 for an empty mesh.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, t := range m.Triangles {
		total += t.Area()
	}
	return total
}

// SignedVolume returns the divergence-theorem volume estimate: the sum
// of signed origin-tetrahedron volumes over all triangles. The sign and
// magnitude are only meaningful for closed, consistently wound meshes;
// open or inconsistently wound input still produces a number, with no
// validity flag. Callers needing a magnitude must take the absolute
// value themselves.
func (m *Mesh) SignedVolume() float64 {
	total := 0.0
	for _, t := range m.Triangles {
		total += t.signedVolume()
	}
	return total
}

// BoundingBox returns the axis-aligned bounding box over all vertices.
// For an empty mesh the result is the empty sentinel box.
func (m *Mesh) BoundingBox() Box {
	box := NewBox()
	for _, t := range m.Triangles {
		box.Extend(t.V1)
		box.Extend(t.V2)
		box.Extend(t.V3)
	}
	return box
}

// SurfaceCentroid returns the area-weighted centroid of the mesh
// surface. Meshes with zero total area (including empty meshes) fall
// back to the unweighted mean of triangle centers, or the origin when
// there are no triangles at all.
func (m *Mesh) SurfaceCentroid() Vector3 {
	if m.IsEmpty() {
		return Vector3{}
	}
	var weighted Vector3
	totalArea := 0.0
	for _, t := range m.Triangles {
		a := t.Area()
		weighted = weighted.Add(t.Center().Mul(a))
		totalArea += a
	}
	if totalArea == 0 {
		var sum Vector3
		for _, t := range m.Triangles {
			sum = sum.Add(t.Center())
		}
		return sum.Mul(1.0 / float64(len(m.Triangles)))
	}
	return weighted.Mul(1.0 / totalArea)
}
