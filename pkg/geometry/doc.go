// Package geometry provides the triangle-soup mesh model and the pure
// vector/box math the rest of the system is built on: triangle areas,
// surface area, divergence-theorem signed volume, and axis-aligned
// bounding boxes with intersection-over-union.
//
// Everything here is total: degenerate input (empty meshes, zero-area
// triangles, empty boxes) produces zeros or well-defined sentinels,
// never an error and never NaN/Inf in a result.
package geometry
