// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgsl generates WGSL vertex inputs matching a vstage layout.
//
// The generated struct declares one @location field per enabled attribute,
// typed the way WebGPU delivers the attribute's vertex format to a shader:
// normalized and float formats arrive as f32 vectors, integer formats as
// i32 or u32 vectors.
package wgsl

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/vstage"
)

var (
	// ErrUnsupportedType is returned for attributes no vertex format can
	// fetch, such as float64 or three 8-bit components.
	ErrUnsupportedType = errors.New("wgsl: attribute has no vertex format")

	// ErrNoInputs is returned when no attribute is enabled.
	ErrNoInputs = errors.New("wgsl: no enabled attributes")
)

// EntryPoint is the name of the vertex function VertexShader emits.
const EntryPoint = "vs_main"

// Type returns the WGSL type an attribute is read as.
func Type(a *vstage.Attribute) (string, error) {
	if _, ok := a.Datatype.VertexFormat(a.ComponentsPerAttribute, a.Normalize); !ok {
		return "", fmt.Errorf("%w: %d×%v normalize=%v", ErrUnsupportedType,
			a.ComponentsPerAttribute, a.Datatype, a.Normalize)
	}

	var scalar string
	switch a.Datatype {
	case vstage.DatatypeInt:
		scalar = "i32"
	case vstage.DatatypeUnsignedInt:
		scalar = "u32"
	case vstage.DatatypeByte, vstage.DatatypeShort:
		scalar = "i32"
		if a.Normalize {
			scalar = "f32"
		}
	case vstage.DatatypeUnsignedByte, vstage.DatatypeUnsignedShort:
		scalar = "u32"
		if a.Normalize {
			scalar = "f32"
		}
	default:
		scalar = "f32"
	}

	if a.ComponentsPerAttribute == 1 {
		return scalar, nil
	}
	return fmt.Sprintf("vec%d<%s>", a.ComponentsPerAttribute, scalar), nil
}

// field is one member of the generated struct.
type field struct {
	name     string
	location int
	typ      string
}

// fields resolves the enabled attributes of attrs, ordered by location.
func fields(attrs []vstage.Attribute) ([]field, error) {
	var out []field
	used := make(map[string]bool)
	for i := range attrs {
		a := &attrs[i]
		if a.Disabled {
			continue
		}
		typ, err := Type(a)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", a.Index, err)
		}
		name := identifier(a.Name, a.Index)
		if used[name] {
			name = fmt.Sprintf("%s_%d", name, a.Index)
		}
		used[name] = true
		out = append(out, field{name: name, location: a.Index, typ: typ})
	}
	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	slices.SortStableFunc(out, func(x, y field) int { return x.location - y.location })
	return out, nil
}

// VertexInput returns a WGSL struct declaration named name with one
// @location field per enabled attribute.
func VertexInput(name string, attrs []vstage.Attribute) (string, error) {
	fs, err := fields(attrs)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeStruct(&sb, identifier(name, 0), fs)
	return sb.String(), nil
}

func writeStruct(sb *strings.Builder, name string, fs []field) {
	fmt.Fprintf(sb, "struct %s {\n", name)
	for _, f := range fs {
		fmt.Fprintf(sb, "    @location(%d) %s: %s,\n", f.location, f.name, f.typ)
	}
	sb.WriteString("}\n")
}

// VertexShader returns a minimal vertex shader that consumes attrs.
// A float field named "position" drives the clip-space output; without one
// the shader emits the origin.
func VertexShader(attrs []vstage.Attribute) (string, error) {
	fs, err := fields(attrs)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeStruct(&sb, "VertexInput", fs)
	sb.WriteString("\n@vertex\n")
	fmt.Fprintf(&sb, "fn %s(input: VertexInput) -> @builtin(position) vec4<f32> {\n", EntryPoint)
	fmt.Fprintf(&sb, "    return %s;\n", positionExpr(fs))
	sb.WriteString("}\n")
	return sb.String(), nil
}

// positionExpr widens the position field to a vec4<f32>.
func positionExpr(fs []field) string {
	for _, f := range fs {
		if f.name != "position" {
			continue
		}
		switch f.typ {
		case "f32":
			return "vec4<f32>(input.position, 0.0, 0.0, 1.0)"
		case "vec2<f32>":
			return "vec4<f32>(input.position, 0.0, 1.0)"
		case "vec3<f32>":
			return "vec4<f32>(input.position, 1.0)"
		case "vec4<f32>":
			return "input.position"
		}
	}
	return "vec4<f32>(0.0, 0.0, 0.0, 1.0)"
}

// Compile compiles WGSL source to SPIR-V words.
func Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// identifier turns an attribute name into a WGSL identifier. Empty names
// become attr<index>.
func identifier(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("attr%d", index)
	}
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteString("a_")
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	id := sb.String()
	if strings.HasPrefix(id, "__") || id == "_" {
		id = "a" + id
	}
	return id
}
