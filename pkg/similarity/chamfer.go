package similarity

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// nearestStats computes, for every point in src, the distance to its
// nearest point in dst, then summarizes the sorted distances as
// mean / 95th percentile / max. The p95 is the value at index
// floor(0.95×count), clamped to the last valid index.
//
// The scan is a deliberate O(n·m) baseline: at the default 2000
// samples per mesh it is the dominant cost of a comparison. A spatial
// index could replace it transparently as long as the distances come
// out identical up to floating-point rounding.
//
// Either set being empty yields all zeros.
func nearestStats(src, dst []geometry.Vector3) (mean, p95, max float64) {
	if len(src) == 0 || len(dst) == 0 {
		return 0, 0, 0
	}

	dists := make([]float64, len(src))
	for i, p := range src {
		best := p.Distance(dst[0])
		for _, q := range dst[1:] {
			if d := p.Distance(q); d < best {
				best = d
			}
		}
		dists[i] = best
	}

	sort.Float64s(dists)

	idx := int(0.95 * float64(len(dists)))
	if idx >= len(dists) {
		idx = len(dists) - 1
	}

	return stat.Mean(dists, nil), dists[idx], dists[len(dists)-1]
}
