// Package shapes builds procedural reference solids with the sdfx
// geometry kernel and tessellates them into triangle meshes. The
// resulting meshes are closed and consistently wound, which makes them
// the fixtures of choice for volume and chamfer sanity checks and for
// seeding a benchmark corpus without network access.
package shapes

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// DefaultCells is the marching-cubes resolution used when callers pass
// a non-positive cell count.
const DefaultCells = 100

// Box returns a box solid with its minimum corner at the origin.
// sdf.Box3D centers the box, so it is shifted by half-dimensions.
func Box(x, y, z float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("shapes: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return sdf.Transform3D(s, m), nil
}

// Cylinder returns a cylinder solid centered on the origin.
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("shapes: cylinder: %w", err)
	}
	return s, nil
}

// Sphere returns a sphere solid centered on the origin.
func Sphere(radius float64) (sdf.SDF3, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("shapes: sphere: %w", err)
	}
	return s, nil
}

// Translate moves a solid by (x, y, z).
func Translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// ToMesh tessellates a solid into a triangle mesh using uniform
// marching cubes. Face normals come from the winding order.
func ToMesh(s sdf.SDF3, cells int, name string) *geometry.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	mesh := geometry.NewMesh(name)
	mesh.Triangles = make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		n := tri.Normal()
		mesh.AddTriangle(geometry.NewTriangle(
			geometry.V3(n.X, n.Y, n.Z),
			geometry.V3(tri[0].X, tri[0].Y, tri[0].Z),
			geometry.V3(tri[1].X, tri[1].Y, tri[1].Z),
			geometry.V3(tri[2].X, tri[2].Y, tri[2].Z),
		))
	}
	return mesh
}

// Fixtures returns the named reference solids tessellated at the given
// resolution: a unit box, a cylinder, a sphere, and a union of two
// overlapping boxes.
func Fixtures(cells int) (map[string]*geometry.Mesh, error) {
	box, err := Box(1, 1, 1)
	if err != nil {
		return nil, err
	}
	cyl, err := Cylinder(2, 0.5)
	if err != nil {
		return nil, err
	}
	sphere, err := Sphere(0.75)
	if err != nil {
		return nil, err
	}
	second, err := Box(1, 1, 1)
	if err != nil {
		return nil, err
	}
	pair := sdf.Union3D(box, Translate(second, 0.5, 0, 0))

	return map[string]*geometry.Mesh{
		"box":      ToMesh(box, cells, "box"),
		"cylinder": ToMesh(cyl, cells, "cylinder"),
		"sphere":   ToMesh(sphere, cells, "sphere"),
		"box_pair": ToMesh(pair, cells, "box_pair"),
	}, nil
}

// Names returns the fixture names in stable order.
func Names(fixtures map[string]*geometry.Mesh) []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
