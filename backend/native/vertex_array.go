// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vstage"
)

// halBufferProvider is implemented by vertex buffers backed by a HAL buffer.
// Precreated buffers from outside this package may implement it too.
type halBufferProvider interface {
	HalBuffer() hal.Buffer
}

// Slot is one vertex buffer binding of a VertexArray.
type Slot struct {
	// Buffer is the bound HAL buffer.
	Buffer hal.Buffer

	// OffsetInBytes is the bind offset of the first record.
	OffsetInBytes uint64

	// Layout describes the interleaved attributes read from Buffer.
	Layout gputypes.VertexBufferLayout
}

// VertexArray is the set of vertex buffer slots and the index buffer of
// one draw group.
type VertexArray struct {
	label     string
	slots     []Slot
	index     hal.Buffer
	destroyed bool
}

// Label returns the creation label.
func (va *VertexArray) Label() string { return va.label }

// Slots returns the vertex buffer slots in binding order.
func (va *VertexArray) Slots() []Slot { return va.slots }

// Layouts returns the vertex buffer layouts for render pipeline creation.
func (va *VertexArray) Layouts() []gputypes.VertexBufferLayout {
	out := make([]gputypes.VertexBufferLayout, len(va.slots))
	for i := range va.slots {
		out[i] = va.slots[i].Layout
	}
	return out
}

// IndexBuffer returns the bound index buffer, or nil.
func (va *VertexArray) IndexBuffer() hal.Buffer { return va.index }

// Bind sets every vertex buffer slot and the uint16 index buffer on rp.
func (va *VertexArray) Bind(rp hal.RenderPassEncoder) {
	for i := range va.slots {
		// #nosec G115 -- slot count is bounded by the attribute count
		rp.SetVertexBuffer(uint32(i), va.slots[i].Buffer, va.slots[i].OffsetInBytes)
	}
	if va.index != nil {
		rp.SetIndexBuffer(va.index, gputypes.IndexFormatUint16, 0)
	}
}

// Draw binds the vertex array and records an indexed draw of indicesCount
// indices.
func (va *VertexArray) Draw(rp hal.RenderPassEncoder, indicesCount int) {
	if indicesCount <= 0 {
		return
	}
	va.Bind(rp)
	// #nosec G115 -- index counts are bounded by the index addressing width
	rp.DrawIndexed(uint32(indicesCount), 1, 0, 0, 0)
}

// Destroy implements vstage.VertexArray. Bound buffers are not released.
func (va *VertexArray) Destroy() {
	va.destroyed = true
	va.slots = nil
	va.index = nil
}

// slotKey identifies one bound buffer range.
type slotKey struct {
	buf    hal.Buffer
	base   int
	stride int
}

// buildSlots groups enabled bindings into vertex buffer slots.
//
// Bindings that read the same buffer with the same stride and whose offsets
// fall in the same record share a slot; the record start becomes the bind
// offset and the remainder the attribute offset.
func buildSlots(bindings []vstage.AttributeBinding) ([]Slot, error) {
	var slots []Slot
	index := make(map[slotKey]int)

	for i := range bindings {
		a := &bindings[i]
		if !a.Enabled {
			continue
		}
		hp, ok := a.Buffer.(halBufferProvider)
		if !ok || hp.HalBuffer() == nil {
			return nil, fmt.Errorf("%w: location %d (%T)", ErrForeignBuffer, a.Index, a.Buffer)
		}
		format, err := vertexFormat(a)
		if err != nil {
			return nil, err
		}

		stride := a.EffectiveStride()
		base := a.OffsetInBytes - a.OffsetInBytes%stride
		key := slotKey{buf: hp.HalBuffer(), base: base, stride: stride}
		n, ok := index[key]
		if !ok {
			n = len(slots)
			index[key] = n
			slots = append(slots, Slot{
				Buffer:        key.buf,
				OffsetInBytes: uint64(base),
				Layout: gputypes.VertexBufferLayout{
					ArrayStride: uint64(stride),
					StepMode:    gputypes.VertexStepModeVertex,
				},
			})
		}
		slots[n].Layout.Attributes = append(slots[n].Layout.Attributes, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.OffsetInBytes - base),
			ShaderLocation: uint32(a.Index),
		})
	}
	return slots, nil
}
