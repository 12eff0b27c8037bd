// Package stl reads and writes STL (stereolithography) triangle data in
// both the line-oriented text format and the fixed-layout binary format.
//
// The text decoder is deliberately lenient: it was built to survive
// mesh text produced by a generative model, so unparseable numbers
// degrade to 0 and malformed facet blocks are dropped instead of
// failing the whole decode. The binary decoder is strict, because the
// embedded triangle count makes the expected buffer size exact.
package stl

import (
	"strconv"
	"strings"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// Decode sniffs the format of data and dispatches to DecodeBinary or
// DecodeText. Only the binary path can fail.
func Decode(data []byte) (*geometry.Mesh, error) {
	if IsBinary(data) {
		return DecodeBinary(data)
	}
	return DecodeText(string(data)), nil
}

// DecodeText parses text-format STL. It never fails: it scans forward
// for facet blocks, skips anything it does not recognize, replaces
// numbers that fail to parse with 0, and silently drops any facet that
// does not contain exactly three vertex lines between its "outer loop"
// and "endfacet" markers. The result may be empty if the input contains
// no well-formed facet block at all.
func DecodeText(text string) *geometry.Mesh {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	mesh := geometry.NewMesh("")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if mesh.Name == "" && strings.HasPrefix(line, "solid") {
			mesh.Name = strings.TrimSpace(strings.TrimPrefix(line, "solid"))
			i++
			continue
		}

		if !strings.HasPrefix(line, "facet normal") {
			i++
			continue
		}

		normal := vectorAt(strings.Fields(line), 2)
		i++

		// Scan forward to the loop opening, skipping unrecognized lines.
		for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "outer loop") {
			i++
		}
		if i >= len(lines) {
			break
		}
		i++

		// Collect vertex lines until the facet closes.
		var verts []geometry.Vector3
		closed := false
		for i < len(lines) {
			inner := strings.TrimSpace(lines[i])
			if strings.HasPrefix(inner, "endfacet") {
				closed = true
				i++
				break
			}
			if strings.HasPrefix(inner, "vertex") {
				verts = append(verts, vectorAt(strings.Fields(inner), 1))
			}
			i++
		}

		if closed && len(verts) == 3 {
			mesh.AddTriangle(geometry.NewTriangle(normal, verts[0], verts[1], verts[2]))
		}
	}

	return mesh
}

// vectorAt reads three consecutive numbers from fields starting at
// start. Missing or unparseable fields become 0.
func vectorAt(fields []string, start int) geometry.Vector3 {
	return geometry.Vector3{
		X: floatAt(fields, start),
		Y: floatAt(fields, start+1),
		Z: floatAt(fields, start+2),
	}
}

// floatAt parses fields[idx] as a float, degrading to 0 on any failure.
func floatAt(fields []string, idx int) float64 {
	if idx < 0 || idx >= len(fields) {
		return 0
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0
	}
	return v
}
