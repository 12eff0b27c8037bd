// Package sample draws points uniformly over the surface of a triangle
// mesh, weighted by triangle area. The random source is injected so the
// operation is deterministic under a seeded source; callers that pass
// nil get a fresh wall-clock-seeded generator per call, which keeps
// concurrent comparisons independent of one another.
package sample

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// Source yields successive uniform values in [0, 1). *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// newDefaultSource returns a wall-clock-seeded source. Each call gets
// its own generator; there is no process-wide shared state.
func newDefaultSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SurfacePoints draws n points from the surface of m, each triangle
// selected with probability proportional to its area. If the total
// area is zero (all triangles degenerate) every triangle is weighted
// equally instead, so a non-empty mesh never samples to nothing. The
// result is empty for n <= 0 or an empty mesh. A nil src means a fresh
// wall-clock-seeded generator.
func SurfacePoints(m *geometry.Mesh, n int, src Source) []geometry.Vector3 {
	if n <= 0 || m.IsEmpty() {
		return nil
	}
	if src == nil {
		src = newDefaultSource()
	}

	// Cumulative area weights for inverse-CDF triangle selection.
	cumulative := make([]float64, len(m.Triangles))
	total := 0.0
	for i, t := range m.Triangles {
		total += t.Area()
		cumulative[i] = total
	}
	if total == 0 {
		// Degenerate mesh: weight every triangle equally.
		for i := range cumulative {
			cumulative[i] = float64(i + 1)
		}
		total = float64(len(cumulative))
	}

	points := make([]geometry.Vector3, n)
	for i := 0; i < n; i++ {
		draw := src.Float64() * total
		// First index whose cumulative weight reaches the draw; ties
		// resolve to the lowest qualifying index.
		idx := sort.SearchFloat64s(cumulative, draw)
		if idx >= len(cumulative) {
			idx = len(cumulative) - 1
		}
		points[i] = randomPointIn(m.Triangles[idx], src)
	}
	return points
}

// randomPointIn places a point uniformly within a triangle using the
// square-root barycentric transform. Without the square root the points
// would crowd toward one vertex.
func randomPointIn(t geometry.Triangle, src Source) geometry.Vector3 {
	r1 := math.Sqrt(src.Float64())
	u2 := src.Float64()

	w1 := 1 - r1
	w2 := r1 * (1 - u2)
	w3 := r1 * u2

	return t.V1.Mul(w1).Add(t.V2.Mul(w2)).Add(t.V3.Mul(w3))
}
