// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestComponentDatatypeSize(t *testing.T) {
	tests := []struct {
		d    ComponentDatatype
		want int
	}{
		{DatatypeUnspecified, 0},
		{DatatypeByte, 1},
		{DatatypeUnsignedByte, 1},
		{DatatypeShort, 2},
		{DatatypeUnsignedShort, 2},
		{DatatypeInt, 4},
		{DatatypeUnsignedInt, 4},
		{DatatypeFloat, 4},
		{DatatypeDouble, 8},
		{ComponentDatatype(200), 0},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComponentDatatypeString(t *testing.T) {
	if got := DatatypeUnsignedShort.String(); got != "UnsignedShort" {
		t.Errorf("String() = %q, want UnsignedShort", got)
	}
	if got := ComponentDatatype(200).String(); got != "ComponentDatatype(200)" {
		t.Errorf("String() = %q, want ComponentDatatype(200)", got)
	}
}

func TestComponentDatatypeRoundTrip(t *testing.T) {
	tests := []struct {
		d    ComponentDatatype
		in   float64
		want float64
	}{
		{DatatypeByte, -5, -5},
		{DatatypeByte, 130, -126},
		{DatatypeUnsignedByte, 255, 255},
		{DatatypeUnsignedByte, 256, 0},
		{DatatypeShort, -32768, -32768},
		{DatatypeUnsignedShort, 65535, 65535},
		{DatatypeInt, -7.9, -7},
		{DatatypeUnsignedInt, 4294967295, 4294967295},
		{DatatypeFloat, 0.25, 0.25},
		{DatatypeDouble, 1.0 / 3, 1.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			b := make([]byte, tt.d.Size())
			tt.d.Put(b, tt.in)
			if got := tt.d.Get(b); got != tt.want {
				t.Errorf("Get(Put(%v)) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentDatatypeLittleEndian(t *testing.T) {
	b := make([]byte, 2)
	DatatypeUnsignedShort.Put(b, 0x0102)
	if b[0] != 0x02 || b[1] != 0x01 {
		t.Errorf("Put(0x0102) = %v, want [2 1]", b)
	}
}

func TestVertexFormat(t *testing.T) {
	tests := []struct {
		d          ComponentDatatype
		components int
		normalize  bool
		want       gputypes.VertexFormat
		ok         bool
	}{
		{DatatypeFloat, 3, false, gputypes.VertexFormatFloat32x3, true},
		{DatatypeFloat, 2, true, gputypes.VertexFormatFloat32x2, true},
		{DatatypeUnsignedByte, 4, true, gputypes.VertexFormatUnorm8x4, true},
		{DatatypeUnsignedByte, 4, false, gputypes.VertexFormatUint8x4, true},
		{DatatypeShort, 2, true, gputypes.VertexFormatSnorm16x2, true},
		{DatatypeUnsignedInt, 1, false, gputypes.VertexFormatUint32, true},
		{DatatypeUnsignedShort, 1, false, 0, false},
		{DatatypeUnsignedByte, 3, true, 0, false},
		{DatatypeDouble, 1, false, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.d.VertexFormat(tt.components, tt.normalize)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%v.VertexFormat(%d, %v) = %v, %v; want %v, %v",
				tt.d, tt.components, tt.normalize, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseComponentDatatype(t *testing.T) {
	tests := []struct {
		in      string
		want    ComponentDatatype
		wantErr bool
	}{
		{"", DatatypeUnspecified, false},
		{"Float", DatatypeFloat, false},
		{"float32", DatatypeFloat, false},
		{"uint8", DatatypeUnsignedByte, false},
		{"UnsignedShort", DatatypeUnsignedShort, false},
		{"Unspecified", DatatypeUnspecified, true},
		{"half", DatatypeUnspecified, true},
	}
	for _, tt := range tests {
		got, err := ParseComponentDatatype(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseComponentDatatype(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
