// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

// Device creates the GPU objects a Stage owns.
//
// A Stage never talks to a graphics API directly. Backends implement Device
// over a concrete API (see backend/native and backend/webgpu); the recording
// package implements it on the CPU for tests and tooling.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources are released via their Destroy method
//   - Handles must not be used after Destroy
type Device interface {
	// CreateVertexBuffer creates a vertex buffer initialized with data.
	// The buffer size is len(data).
	//
	// Parameters:
	//   - label: optional debug label
	//   - data: initial content
	//   - usage: update-frequency hint for the allocation
	CreateVertexBuffer(label string, data []byte, usage UsageHint) (VertexBuffer, error)

	// CreateVertexArray creates a vertex array binding the described
	// attributes and index buffer.
	CreateVertexArray(desc *VertexArrayDescriptor) (VertexArray, error)
}

// VertexBuffer is a GPU vertex buffer.
type VertexBuffer interface {
	// CopyFrom writes data at byteOffset. The range must fit the buffer.
	CopyFrom(data []byte, byteOffset int) error

	// SizeInBytes returns the allocated size.
	SizeInBytes() int

	// Destroy releases the buffer.
	Destroy()
}

// VertexArray is a GPU-side binding of vertex buffers, attribute formats
// and an index buffer, ready for an indexed draw.
type VertexArray interface {
	// Destroy releases the vertex array. Bound buffers are not destroyed.
	Destroy()
}

// VertexArrayDescriptor describes a vertex array to create.
type VertexArrayDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Attributes are the attribute bindings, in binding order.
	Attributes []AttributeBinding

	// IndexBuffer is the backend-specific index buffer handle, or nil.
	IndexBuffer any
}

// AttributeBinding binds one shader attribute to a range of a vertex buffer.
type AttributeBinding struct {
	// Index is the shader location.
	Index int

	// Enabled reports whether the attribute is fetched at all.
	Enabled bool

	// Buffer is the source vertex buffer.
	Buffer VertexBuffer

	// ComponentsPerAttribute is the vector width, 1 to 4.
	ComponentsPerAttribute int

	// Datatype is the component element type.
	Datatype ComponentDatatype

	// Normalize maps integer components to [0, 1] or [-1, 1].
	Normalize bool

	// OffsetInBytes is the byte offset of the first element in Buffer.
	OffsetInBytes int

	// StrideInBytes is the distance between consecutive elements.
	// Zero means tightly packed.
	StrideInBytes int
}

// ElementSize returns the byte size of one attribute element.
func (b *AttributeBinding) ElementSize() int {
	return b.ComponentsPerAttribute * b.Datatype.Size()
}

// EffectiveStride returns StrideInBytes, or the element size when the
// binding is tightly packed.
func (b *AttributeBinding) EffectiveStride() int {
	if b.StrideInBytes > 0 {
		return b.StrideInBytes
	}
	return b.ElementSize()
}
