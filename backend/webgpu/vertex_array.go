// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/vstage"
)

// wgpuBufferProvider is implemented by vertex buffers backed by a
// *wgpu.Buffer.
type wgpuBufferProvider interface {
	WGPUBuffer() *wgpu.Buffer
}

// Slot is one vertex buffer binding of a VertexArray.
type Slot struct {
	Buffer        *wgpu.Buffer
	OffsetInBytes uint64
	Layout        wgpu.VertexBufferLayout
}

// VertexArray is the set of vertex buffer slots and the index buffer of
// one draw group.
type VertexArray struct {
	label string
	slots []Slot
	index *wgpu.Buffer
}

// Label returns the creation label.
func (va *VertexArray) Label() string { return va.label }

// Slots returns the vertex buffer slots in binding order.
func (va *VertexArray) Slots() []Slot { return va.slots }

// Layouts returns the buffer layouts for wgpu.VertexState.
func (va *VertexArray) Layouts() []wgpu.VertexBufferLayout {
	out := make([]wgpu.VertexBufferLayout, len(va.slots))
	for i := range va.slots {
		out[i] = va.slots[i].Layout
	}
	return out
}

// Bind sets every vertex buffer slot and the uint16 index buffer on rp.
func (va *VertexArray) Bind(rp *wgpu.RenderPassEncoder) {
	for i := range va.slots {
		s := &va.slots[i]
		rp.SetVertexBuffer(uint32(i), s.Buffer, s.OffsetInBytes, wgpu.WholeSize)
	}
	if va.index != nil {
		rp.SetIndexBuffer(va.index, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	}
}

// Draw binds the vertex array and draws indicesCount indices.
func (va *VertexArray) Draw(rp *wgpu.RenderPassEncoder, indicesCount int) {
	if indicesCount <= 0 {
		return
	}
	va.Bind(rp)
	rp.DrawIndexed(uint32(indicesCount), 1, 0, 0, 0)
}

// Destroy implements vstage.VertexArray. Bound buffers are not released.
func (va *VertexArray) Destroy() {
	va.slots = nil
	va.index = nil
}

type slotKey struct {
	buf    *wgpu.Buffer
	base   int
	stride int
}

// buildSlots groups enabled bindings that read the same record of the same
// buffer into one slot.
func buildSlots(bindings []vstage.AttributeBinding) ([]Slot, error) {
	var slots []Slot
	index := make(map[slotKey]int)

	for i := range bindings {
		a := &bindings[i]
		if !a.Enabled {
			continue
		}
		bp, ok := a.Buffer.(wgpuBufferProvider)
		if !ok || bp.WGPUBuffer() == nil {
			return nil, fmt.Errorf("%w: location %d (%T)", ErrForeignBuffer, a.Index, a.Buffer)
		}
		format, err := vertexFormat(a)
		if err != nil {
			return nil, err
		}

		stride := a.EffectiveStride()
		base := a.OffsetInBytes - a.OffsetInBytes%stride
		key := slotKey{buf: bp.WGPUBuffer(), base: base, stride: stride}
		n, ok := index[key]
		if !ok {
			n = len(slots)
			index[key] = n
			slots = append(slots, Slot{
				Buffer:        key.buf,
				OffsetInBytes: uint64(base),
				Layout: wgpu.VertexBufferLayout{
					ArrayStride: uint64(stride),
					StepMode:    wgpu.VertexStepModeVertex,
				},
			})
		}
		slots[n].Layout.Attributes = append(slots[n].Layout.Attributes, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.OffsetInBytes - base),
			ShaderLocation: uint32(a.Index),
		})
	}
	return slots, nil
}

// formats maps the shared WebGPU format enum onto the wgpu-native one.
var formats = map[gputypes.VertexFormat]wgpu.VertexFormat{
	gputypes.VertexFormatUint8x2:   wgpu.VertexFormatUint8x2,
	gputypes.VertexFormatUint8x4:   wgpu.VertexFormatUint8x4,
	gputypes.VertexFormatSint8x2:   wgpu.VertexFormatSint8x2,
	gputypes.VertexFormatSint8x4:   wgpu.VertexFormatSint8x4,
	gputypes.VertexFormatUnorm8x2:  wgpu.VertexFormatUnorm8x2,
	gputypes.VertexFormatUnorm8x4:  wgpu.VertexFormatUnorm8x4,
	gputypes.VertexFormatSnorm8x2:  wgpu.VertexFormatSnorm8x2,
	gputypes.VertexFormatSnorm8x4:  wgpu.VertexFormatSnorm8x4,
	gputypes.VertexFormatUint16x2:  wgpu.VertexFormatUint16x2,
	gputypes.VertexFormatUint16x4:  wgpu.VertexFormatUint16x4,
	gputypes.VertexFormatSint16x2:  wgpu.VertexFormatSint16x2,
	gputypes.VertexFormatSint16x4:  wgpu.VertexFormatSint16x4,
	gputypes.VertexFormatUnorm16x2: wgpu.VertexFormatUnorm16x2,
	gputypes.VertexFormatUnorm16x4: wgpu.VertexFormatUnorm16x4,
	gputypes.VertexFormatSnorm16x2: wgpu.VertexFormatSnorm16x2,
	gputypes.VertexFormatSnorm16x4: wgpu.VertexFormatSnorm16x4,
	gputypes.VertexFormatFloat32:   wgpu.VertexFormatFloat32,
	gputypes.VertexFormatFloat32x2: wgpu.VertexFormatFloat32x2,
	gputypes.VertexFormatFloat32x3: wgpu.VertexFormatFloat32x3,
	gputypes.VertexFormatFloat32x4: wgpu.VertexFormatFloat32x4,
	gputypes.VertexFormatUint32:    wgpu.VertexFormatUint32,
	gputypes.VertexFormatUint32x2:  wgpu.VertexFormatUint32x2,
	gputypes.VertexFormatUint32x3:  wgpu.VertexFormatUint32x3,
	gputypes.VertexFormatUint32x4:  wgpu.VertexFormatUint32x4,
	gputypes.VertexFormatSint32:    wgpu.VertexFormatSint32,
	gputypes.VertexFormatSint32x2:  wgpu.VertexFormatSint32x2,
	gputypes.VertexFormatSint32x3:  wgpu.VertexFormatSint32x3,
	gputypes.VertexFormatSint32x4:  wgpu.VertexFormatSint32x4,
}

// vertexFormat resolves the wgpu-native format of a binding.
func vertexFormat(a *vstage.AttributeBinding) (wgpu.VertexFormat, error) {
	gf, ok := a.Datatype.VertexFormat(a.ComponentsPerAttribute, a.Normalize)
	if ok {
		if f, ok := formats[gf]; ok {
			return f, nil
		}
	}
	return wgpu.VertexFormatUndefined, fmt.Errorf("%w: %d×%v normalize=%v at location %d",
		ErrUnsupportedFormat, a.ComponentsPerAttribute, a.Datatype, a.Normalize, a.Index)
}
