package decimate

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// grid builds a flat n×n square of 2n² coplanar triangles covering
// [0,n]x[0,n] at z=0, trivially collapsible geometry.
func grid(n int) *geometry.Mesh {
	m := geometry.NewMesh("grid")
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, y := float64(i), float64(j)
			m.AddTriangle(geometry.NewTriangle(
				geometry.Vector3{},
				geometry.V3(x, y, 0), geometry.V3(x+1, y, 0), geometry.V3(x+1, y+1, 0),
			))
			m.AddTriangle(geometry.NewTriangle(
				geometry.Vector3{},
				geometry.V3(x, y, 0), geometry.V3(x+1, y+1, 0), geometry.V3(x, y+1, 0),
			))
		}
	}
	return m
}

func TestDecimateReducesFlatGrid(t *testing.T) {
	m := grid(10) // 200 triangles
	out := Decimate(m, 0.2)

	if out.TriangleCount() >= m.TriangleCount() {
		t.Fatalf("Decimate did not reduce: %d -> %d", m.TriangleCount(), out.TriangleCount())
	}
	if out.IsEmpty() {
		t.Fatal("Decimate removed all geometry")
	}
	// Collapsing coplanar triangles roughly preserves the covered
	// area; only boundary erosion nibbles at it.
	if got, want := out.SurfaceArea(), m.SurfaceArea(); !scalar.EqualWithinAbs(got, want, want*0.15) {
		t.Errorf("SurfaceArea drifted: %v -> %v", want, got)
	}
	// Coplanar input stays coplanar.
	for _, tri := range out.Triangles {
		for _, v := range []float64{tri.V1.Z, tri.V2.Z, tri.V3.Z} {
			if !scalar.EqualWithinAbs(v, 0, 1e-9) {
				t.Fatalf("decimated vertex left the plane: z=%v", v)
			}
		}
	}
}

func TestDecimatePassThrough(t *testing.T) {
	m := grid(2)
	tests := []struct {
		name   string
		factor float64
	}{
		{"factor zero", 0},
		{"factor negative", -1},
		{"factor one", 1},
		{"factor above one", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := Decimate(m, tt.factor); out != m {
				t.Error("out-of-range factor did not return the input mesh")
			}
		})
	}

	t.Run("empty mesh", func(t *testing.T) {
		empty := geometry.NewMesh("")
		if out := Decimate(empty, 0.5); out != empty {
			t.Error("empty mesh did not pass through")
		}
	})
}

func TestToBudget(t *testing.T) {
	m := grid(10)

	t.Run("disabled", func(t *testing.T) {
		if out := ToBudget(m, 0); out != m {
			t.Error("zero budget did not pass through")
		}
	})
	t.Run("already within budget", func(t *testing.T) {
		if out := ToBudget(m, 10000); out != m {
			t.Error("mesh within budget did not pass through")
		}
	})
	t.Run("over budget", func(t *testing.T) {
		out := ToBudget(m, 50)
		if out.TriangleCount() > m.TriangleCount() {
			t.Errorf("budget grew the mesh: %d -> %d", m.TriangleCount(), out.TriangleCount())
		}
		if out == m {
			t.Error("over-budget mesh passed through untouched")
		}
	})
}
