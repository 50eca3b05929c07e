// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// ComponentDatatype is the element type of one attribute component.
//
// It doubles as the staging codec: Size, Put and Get describe how a single
// component is laid out in the interleaved vertex record. All multi-byte
// types are stored little-endian, matching every WebGPU backend.
type ComponentDatatype uint8

const (
	// DatatypeUnspecified resolves to DatatypeFloat during validation.
	DatatypeUnspecified   ComponentDatatype = iota
	DatatypeByte                            // int8
	DatatypeUnsignedByte                    // uint8
	DatatypeShort                           // int16
	DatatypeUnsignedShort                   // uint16
	DatatypeInt                             // int32
	DatatypeUnsignedInt                     // uint32
	DatatypeFloat                           // float32
	DatatypeDouble                          // float64

	datatypeCount
)

var datatypeNames = [...]string{
	DatatypeUnspecified:   "Unspecified",
	DatatypeByte:          "Byte",
	DatatypeUnsignedByte:  "UnsignedByte",
	DatatypeShort:         "Short",
	DatatypeUnsignedShort: "UnsignedShort",
	DatatypeInt:           "Int",
	DatatypeUnsignedInt:   "UnsignedInt",
	DatatypeFloat:         "Float",
	DatatypeDouble:        "Double",
}

var datatypeSizes = [...]int{
	DatatypeByte:          1,
	DatatypeUnsignedByte:  1,
	DatatypeShort:         2,
	DatatypeUnsignedShort: 2,
	DatatypeInt:           4,
	DatatypeUnsignedInt:   4,
	DatatypeFloat:         4,
	DatatypeDouble:        8,
}

// String returns the datatype name.
func (d ComponentDatatype) String() string {
	if d < datatypeCount {
		return datatypeNames[d]
	}
	return fmt.Sprintf("ComponentDatatype(%d)", uint8(d))
}

// Valid reports whether d names a concrete datatype.
func (d ComponentDatatype) Valid() bool {
	return d > DatatypeUnspecified && d < datatypeCount
}

// Size returns the component size in bytes, or 0 for an invalid datatype.
func (d ComponentDatatype) Size() int {
	if !d.Valid() {
		return 0
	}
	return datatypeSizes[d]
}

// Put encodes v as one component. Integer types truncate toward zero and
// wrap on overflow.
func (d ComponentDatatype) Put(b []byte, v float64) {
	switch d {
	case DatatypeByte:
		b[0] = byte(int8(int64(v)))
	case DatatypeUnsignedByte:
		b[0] = uint8(int64(v))
	case DatatypeShort:
		binary.LittleEndian.PutUint16(b, uint16(int16(int64(v))))
	case DatatypeUnsignedShort:
		binary.LittleEndian.PutUint16(b, uint16(int64(v)))
	case DatatypeInt:
		binary.LittleEndian.PutUint32(b, uint32(int32(int64(v))))
	case DatatypeUnsignedInt:
		binary.LittleEndian.PutUint32(b, uint32(int64(v)))
	case DatatypeFloat:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case DatatypeDouble:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

// Get decodes one component.
func (d ComponentDatatype) Get(b []byte) float64 {
	switch d {
	case DatatypeByte:
		return float64(int8(b[0]))
	case DatatypeUnsignedByte:
		return float64(b[0])
	case DatatypeShort:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case DatatypeUnsignedShort:
		return float64(binary.LittleEndian.Uint16(b))
	case DatatypeInt:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case DatatypeUnsignedInt:
		return float64(binary.LittleEndian.Uint32(b))
	case DatatypeFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case DatatypeDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

// vertexFormatKey identifies a WebGPU vertex format by element type,
// component count and normalization.
type vertexFormatKey struct {
	datatype   ComponentDatatype
	components int
	normalize  bool
}

// vertexFormats lists the combinations WebGPU can fetch directly.
// Single 8/16-bit components and 3-component 8/16-bit vectors have no
// WebGPU format; neither does float64.
var vertexFormats = map[vertexFormatKey]gputypes.VertexFormat{
	{DatatypeUnsignedByte, 2, false}: gputypes.VertexFormatUint8x2,
	{DatatypeUnsignedByte, 4, false}: gputypes.VertexFormatUint8x4,
	{DatatypeByte, 2, false}:         gputypes.VertexFormatSint8x2,
	{DatatypeByte, 4, false}:         gputypes.VertexFormatSint8x4,
	{DatatypeUnsignedByte, 2, true}:  gputypes.VertexFormatUnorm8x2,
	{DatatypeUnsignedByte, 4, true}:  gputypes.VertexFormatUnorm8x4,
	{DatatypeByte, 2, true}:          gputypes.VertexFormatSnorm8x2,
	{DatatypeByte, 4, true}:          gputypes.VertexFormatSnorm8x4,

	{DatatypeUnsignedShort, 2, false}: gputypes.VertexFormatUint16x2,
	{DatatypeUnsignedShort, 4, false}: gputypes.VertexFormatUint16x4,
	{DatatypeShort, 2, false}:         gputypes.VertexFormatSint16x2,
	{DatatypeShort, 4, false}:         gputypes.VertexFormatSint16x4,
	{DatatypeUnsignedShort, 2, true}:  gputypes.VertexFormatUnorm16x2,
	{DatatypeUnsignedShort, 4, true}:  gputypes.VertexFormatUnorm16x4,
	{DatatypeShort, 2, true}:          gputypes.VertexFormatSnorm16x2,
	{DatatypeShort, 4, true}:          gputypes.VertexFormatSnorm16x4,

	{DatatypeFloat, 1, false}: gputypes.VertexFormatFloat32,
	{DatatypeFloat, 2, false}: gputypes.VertexFormatFloat32x2,
	{DatatypeFloat, 3, false}: gputypes.VertexFormatFloat32x3,
	{DatatypeFloat, 4, false}: gputypes.VertexFormatFloat32x4,

	{DatatypeUnsignedInt, 1, false}: gputypes.VertexFormatUint32,
	{DatatypeUnsignedInt, 2, false}: gputypes.VertexFormatUint32x2,
	{DatatypeUnsignedInt, 3, false}: gputypes.VertexFormatUint32x3,
	{DatatypeUnsignedInt, 4, false}: gputypes.VertexFormatUint32x4,
	{DatatypeInt, 1, false}:         gputypes.VertexFormatSint32,
	{DatatypeInt, 2, false}:         gputypes.VertexFormatSint32x2,
	{DatatypeInt, 3, false}:         gputypes.VertexFormatSint32x3,
	{DatatypeInt, 4, false}:         gputypes.VertexFormatSint32x4,
}

// VertexFormat returns the WebGPU vertex format for components values of d.
// Normalization is ignored for float types. The second result is false when
// WebGPU has no matching format.
func (d ComponentDatatype) VertexFormat(components int, normalize bool) (gputypes.VertexFormat, bool) {
	if d == DatatypeFloat || d == DatatypeInt || d == DatatypeUnsignedInt {
		normalize = false
	}
	f, ok := vertexFormats[vertexFormatKey{d, components, normalize}]
	return f, ok
}

// datatypeAliases maps the Go element type names to datatypes, so
// declaration files can say "float32" as well as "Float".
var datatypeAliases = map[string]ComponentDatatype{
	"int8":    DatatypeByte,
	"uint8":   DatatypeUnsignedByte,
	"int16":   DatatypeShort,
	"uint16":  DatatypeUnsignedShort,
	"int32":   DatatypeInt,
	"uint32":  DatatypeUnsignedInt,
	"float32": DatatypeFloat,
	"float64": DatatypeDouble,
}

// ParseComponentDatatype parses a datatype name ("Float", "UnsignedByte")
// or Go element type name ("float32", "uint8"). The empty string yields
// DatatypeUnspecified.
func ParseComponentDatatype(s string) (ComponentDatatype, error) {
	if s == "" {
		return DatatypeUnspecified, nil
	}
	if d, ok := datatypeAliases[s]; ok {
		return d, nil
	}
	for d := DatatypeByte; d < datatypeCount; d++ {
		if datatypeNames[d] == s {
			return d, nil
		}
	}
	return DatatypeUnspecified, fmt.Errorf("%w: %q", ErrInvalidDatatype, s)
}
