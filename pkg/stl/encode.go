package stl

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

// EncodeText serializes a mesh to text-format STL with the given number
// of fractional digits (clamped to 0–12). Trailing zeros in fractional
// parts are trimmed. The envelope name is taken from the mesh; an
// unnamed mesh is emitted as "solid mesh".
func EncodeText(m *geometry.Mesh, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if precision > 12 {
		precision = 12
	}

	name := m.Name
	if name == "" {
		name = "mesh"
	}

	var b strings.Builder
	b.WriteString("solid " + name + "\n")
	for _, t := range m.Triangles {
		b.WriteString("  facet normal " + formatVector(t.Normal, precision) + "\n")
		b.WriteString("    outer loop\n")
		b.WriteString("      vertex " + formatVector(t.V1, precision) + "\n")
		b.WriteString("      vertex " + formatVector(t.V2, precision) + "\n")
		b.WriteString("      vertex " + formatVector(t.V3, precision) + "\n")
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	b.WriteString("endsolid " + name + "\n")
	return b.String()
}

// EncodeBinary serializes a mesh to binary-format STL: 80-byte header,
// little-endian triangle count, then one 50-byte record per triangle
// with a zero attribute trailer. The result always satisfies IsBinary.
func EncodeBinary(m *geometry.Mesh) []byte {
	buf := make([]byte, headerSize+countSize+len(m.Triangles)*triangleSize)
	copy(buf, m.Name)
	binary.LittleEndian.PutUint32(buf[headerSize:], uint32(len(m.Triangles)))

	offset := headerSize + countSize
	for _, t := range m.Triangles {
		putVector(buf[offset:], t.Normal)
		putVector(buf[offset+12:], t.V1)
		putVector(buf[offset+24:], t.V2)
		putVector(buf[offset+36:], t.V3)
		binary.LittleEndian.PutUint16(buf[offset+48:], 0)
		offset += triangleSize
	}
	return buf
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

func formatVector(v geometry.Vector3, precision int) string {
	return formatFloat(v.X, precision) + " " + formatFloat(v.Y, precision) + " " + formatFloat(v.Z, precision)
}

// formatFloat renders a coordinate with fixed precision, then trims
// trailing zeros and a bare trailing decimal point.
func formatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
