package geometry

import "math"

// Box is an axis-aligned bounding box. A freshly constructed box is
// empty: Min at +Inf and Max at -Inf, so that Extend folds correctly
// under IEEE min/max semantics. Consumers must treat any box with
// Max < Min on an axis as contributing zero volume.
type Box struct {
	Min Vector3
	Max Vector3
}

// NewBox returns an empty box (Min at +Inf, Max at -Inf).
func NewBox() Box {
	return Box{
		Min: Vector3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vector3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Extend grows the box to include a point.
func (b *Box) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether the box encloses nothing (Max < Min on any
// axis). A box around a single point is not empty.
func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Size returns the dimensions of the box. Meaningless for empty boxes.
func (b Box) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box. Meaningless for empty boxes.
func (b Box) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Volume returns the enclosed volume. Each axis is clamped to zero, so
// empty or degenerate boxes report 0 rather than a negative or NaN
// product.
func (b Box) Volume() float64 {
	size := b.Size()
	return math.Max(0, size.X) * math.Max(0, size.Y) * math.Max(0, size.Z)
}

// Diagonal returns the length of the box diagonal, or 0 for an empty
// box. It is used as the scale normalizer for chamfer distances.
func (b Box) Diagonal() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Size().Length()
}

// Intersect returns the overlap of two boxes. If the boxes do not
// overlap the result is empty on at least one axis.
func (b Box) Intersect(other Box) Box {
	return Box{
		Min: b.Min.Max(other.Min),
		Max: b.Max.Min(other.Max),
	}
}

// IoU returns the intersection-over-union of two boxes in [0, 1].
// If the union volume is zero (both boxes empty or degenerate) it
// returns 0 instead of dividing by zero.
func IoU(a, b Box) float64 {
	inter := a.Intersect(b).Volume()
	union := a.Volume() + b.Volume() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
