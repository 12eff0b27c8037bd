// Package decimate reduces triangle counts before the quadratic
// nearest-point scan, using fogleman's quadric edge-collapse
// simplifier. Scraped meshes routinely arrive with hundreds of
// thousands of triangles; the similarity metrics only need enough
// surface to sample from.
package decimate

import (
	"github.com/fogleman/simplify"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// Decimate reduces the mesh to roughly factor of its triangle count,
// with factor in (0, 1). Out-of-range factors and empty meshes return
// the input unchanged. Normals are recomputed from winding since edge
// collapse invalidates the stored ones.
func Decimate(m *geometry.Mesh, factor float64) *geometry.Mesh {
	if m.IsEmpty() || factor <= 0 || factor >= 1 {
		return m
	}

	triangles := make([]*simplify.Triangle, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		triangles = append(triangles, simplify.NewTriangle(
			toVector(t.V1), toVector(t.V2), toVector(t.V3),
		))
	}

	simplified := simplify.NewMesh(triangles).Simplify(factor)

	out := geometry.NewMesh(m.Name)
	out.Triangles = make([]geometry.Triangle, 0, len(simplified.Triangles))
	for _, t := range simplified.Triangles {
		tri := geometry.NewTriangle(
			geometry.Vector3{},
			fromVector(t.V1), fromVector(t.V2), fromVector(t.V3),
		)
		tri.Normal = tri.ComputeNormal()
		out.AddTriangle(tri)
	}
	return out
}

// ToBudget decimates the mesh down to at most maxTriangles. A
// non-positive budget or a mesh already within it returns the input
// unchanged.
func ToBudget(m *geometry.Mesh, maxTriangles int) *geometry.Mesh {
	if maxTriangles <= 0 || m.TriangleCount() <= maxTriangles {
		return m
	}
	return Decimate(m, float64(maxTriangles)/float64(m.TriangleCount()))
}

func toVector(v geometry.Vector3) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVector(v simplify.Vector) geometry.Vector3 {
	return geometry.V3(v.X, v.Y, v.Z)
}
