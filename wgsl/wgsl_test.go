// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/vstage"
)

func TestType(t *testing.T) {
	tests := []struct {
		dt        vstage.ComponentDatatype
		n         int
		normalize bool
		want      string
	}{
		{vstage.DatatypeFloat, 1, false, "f32"},
		{vstage.DatatypeFloat, 3, false, "vec3<f32>"},
		{vstage.DatatypeUnsignedByte, 4, true, "vec4<f32>"},
		{vstage.DatatypeUnsignedByte, 4, false, "vec4<u32>"},
		{vstage.DatatypeShort, 2, false, "vec2<i32>"},
		{vstage.DatatypeShort, 2, true, "vec2<f32>"},
		{vstage.DatatypeInt, 2, true, "vec2<i32>"},
		{vstage.DatatypeUnsignedInt, 1, false, "u32"},
	}
	for _, tt := range tests {
		a := vstage.Attribute{Datatype: tt.dt, ComponentsPerAttribute: tt.n, Normalize: tt.normalize}
		got, err := Type(&a)
		if err != nil {
			t.Errorf("Type(%v×%d) error: %v", tt.dt, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Type(%v×%d normalize=%v) = %q, want %q", tt.dt, tt.n, tt.normalize, got, tt.want)
		}
	}
}

func TestTypeUnsupported(t *testing.T) {
	for _, a := range []vstage.Attribute{
		{Datatype: vstage.DatatypeDouble, ComponentsPerAttribute: 1},
		{Datatype: vstage.DatatypeUnsignedByte, ComponentsPerAttribute: 3},
		{Datatype: vstage.DatatypeUnsignedShort, ComponentsPerAttribute: 1},
	} {
		if _, err := Type(&a); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Type(%v×%d) err = %v, want ErrUnsupportedType", a.Datatype, a.ComponentsPerAttribute, err)
		}
	}
}

func TestVertexInput(t *testing.T) {
	attrs := []vstage.Attribute{
		{Name: "color", Index: 1, ComponentsPerAttribute: 4, Datatype: vstage.DatatypeUnsignedByte, Normalize: true},
		{Name: "position", Index: 0, ComponentsPerAttribute: 3, Datatype: vstage.DatatypeFloat},
		{Name: "pick id", Index: 2, ComponentsPerAttribute: 2, Datatype: vstage.DatatypeUnsignedShort},
		{Name: "hidden", Index: 3, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeDouble, Disabled: true},
	}
	got, err := VertexInput("Point", attrs)
	if err != nil {
		t.Fatalf("VertexInput: %v", err)
	}
	want := `struct Point {
    @location(0) position: vec3<f32>,
    @location(1) color: vec4<f32>,
    @location(2) pick_id: vec2<u32>,
}
`
	if got != want {
		t.Errorf("VertexInput =\n%s\nwant\n%s", got, want)
	}
}

func TestVertexInputErrors(t *testing.T) {
	_, err := VertexInput("V", []vstage.Attribute{
		{Index: 0, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeFloat, Disabled: true},
	})
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("all disabled: err = %v, want ErrNoInputs", err)
	}

	_, err = VertexInput("V", []vstage.Attribute{
		{Index: 5, ComponentsPerAttribute: 2, Datatype: vstage.DatatypeDouble},
	})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("double: err = %v, want ErrUnsupportedType", err)
	}
	if err != nil && !strings.Contains(err.Error(), "location 5") {
		t.Errorf("error %q does not name the location", err)
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"", 4, "attr4"},
		{"uv", 0, "uv"},
		{"tex-coord", 0, "tex_coord"},
		{"2d", 0, "a_2d"},
		{"__x", 0, "a__x"},
	}
	for _, tt := range tests {
		if got := identifier(tt.name, tt.index); got != tt.want {
			t.Errorf("identifier(%q, %d) = %q, want %q", tt.name, tt.index, got, tt.want)
		}
	}
}

func TestVertexInputDuplicateNames(t *testing.T) {
	got, err := VertexInput("V", []vstage.Attribute{
		{Name: "value", Index: 0, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeFloat},
		{Name: "value", Index: 1, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeFloat},
	})
	if err != nil {
		t.Fatalf("VertexInput: %v", err)
	}
	if !strings.Contains(got, "@location(1) value_1: f32") {
		t.Errorf("duplicate name not disambiguated:\n%s", got)
	}
}

func TestVertexShader(t *testing.T) {
	tests := []struct {
		name  string
		attrs []vstage.Attribute
		want  string
	}{
		{
			name:  "vec3 position",
			attrs: []vstage.Attribute{{Name: "position", Index: 0, ComponentsPerAttribute: 3, Datatype: vstage.DatatypeFloat}},
			want:  "return vec4<f32>(input.position, 1.0);",
		},
		{
			name:  "vec2 position",
			attrs: []vstage.Attribute{{Name: "position", Index: 0, ComponentsPerAttribute: 2, Datatype: vstage.DatatypeFloat}},
			want:  "return vec4<f32>(input.position, 0.0, 1.0);",
		},
		{
			name:  "no position",
			attrs: []vstage.Attribute{{Name: "id", Index: 0, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeUnsignedInt}},
			want:  "return vec4<f32>(0.0, 0.0, 0.0, 1.0);",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := VertexShader(tt.attrs)
			if err != nil {
				t.Fatalf("VertexShader: %v", err)
			}
			if !strings.Contains(src, "fn "+EntryPoint+"(input: VertexInput)") {
				t.Errorf("missing entry point:\n%s", src)
			}
			if !strings.Contains(src, tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, src)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	src, err := VertexShader([]vstage.Attribute{
		{Name: "position", Index: 0, ComponentsPerAttribute: 3, Datatype: vstage.DatatypeFloat},
		{Name: "color", Index: 1, ComponentsPerAttribute: 4, Datatype: vstage.DatatypeUnsignedByte, Normalize: true},
	})
	if err != nil {
		t.Fatalf("VertexShader: %v", err)
	}
	words, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v\n%s", err, src)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Errorf("output does not start with the SPIR-V magic number")
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("fn broken("); err == nil {
		t.Error("Compile of invalid source succeeded")
	}
}
