package stl

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gabigabogabu/stl-bench/pkg/geometry"
)

const (
	headerSize   = 80
	countSize    = 4
	triangleSize = 50 // 12-byte normal + 3×12-byte vertices + 2-byte attribute
)

// FormatError reports a byte buffer that does not conform to the
// fixed-layout binary format.
type FormatError struct {
	Size     int // actual buffer length
	Expected int // length implied by the embedded triangle count; -1 if the header itself is short
}

func (e *FormatError) Error() string {
	if e.Expected < 0 {
		return fmt.Sprintf("stl: binary buffer too short: %d bytes, need at least %d", e.Size, headerSize+countSize)
	}
	return fmt.Sprintf("stl: binary size mismatch: have %d bytes, want %d", e.Size, e.Expected)
}

// IsBinary reports whether data has the exact shape of a binary STL
// buffer: at least 84 bytes, with 84 + 50×count equal to the buffer
// length for the embedded little-endian triangle count. This size
// formula is the whole predicate; it is how the system distinguishes
// binary buffers from text without attempting a decode.
func IsBinary(data []byte) bool {
	if len(data) < headerSize+countSize {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	expected := int64(headerSize+countSize) + int64(count)*triangleSize
	return expected == int64(len(data))
}

// DecodeBinary parses binary-format STL. Unlike the text decoder it is
// strict: a buffer shorter than the fixed header or whose length does
// not match the embedded triangle count fails with a *FormatError and
// no partial result. On success the mesh holds exactly count triangles
// in file order.
func DecodeBinary(data []byte) (*geometry.Mesh, error) {
	if len(data) < headerSize+countSize {
		return nil, &FormatError{Size: len(data), Expected: -1}
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	expected := int64(headerSize+countSize) + int64(count)*triangleSize
	if expected != int64(len(data)) {
		return nil, &FormatError{Size: len(data), Expected: int(expected)}
	}

	mesh := geometry.NewMesh("")
	mesh.Triangles = make([]geometry.Triangle, 0, count)

	offset := headerSize + countSize
	for i := uint32(0); i < count; i++ {
		normal := readVector(data[offset:])
		v1 := readVector(data[offset+12:])
		v2 := readVector(data[offset+24:])
		v3 := readVector(data[offset+36:])
		// 2 attribute bytes ignored.
		offset += triangleSize
		mesh.AddTriangle(geometry.NewTriangle(normal, v1, v2, v3))
	}

	return mesh, nil
}

// readVector reads three consecutive little-endian float32s.
func readVector(b []byte) geometry.Vector3 {
	return geometry.Vector3{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}
