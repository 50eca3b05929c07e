// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"fmt"

	"github.com/gogpu/vstage/internal/layout"
	"github.com/gogpu/vstage/internal/staging"
)

// ArrayView describes where one attribute lives inside a Buffer's
// interleaved record.
type ArrayView struct {
	Index                  int
	Enabled                bool
	ComponentsPerAttribute int
	Datatype               ComponentDatatype
	Normalize              bool
	OffsetInBytes          int

	// StrideInComponents is the record stride in units of this
	// attribute's component size.
	StrideInComponents int

	// Name is the declared attribute name, if any.
	Name string
}

// Buffer is the interleaved staging memory and GPU vertex buffer of one
// purpose and usage bucket.
type Buffer struct {
	purpose     string
	usage       UsageHint
	stride      int
	block       *staging.Block
	views       []ArrayView
	gpu         VertexBuffer
	needsCommit bool
}

// newBuffer allocates staging memory for a planned bucket.
// attrs is the normalized attribute list the placements refer to.
func newBuffer(bk layout.Bucket, attrs []Attribute, size int) *Buffer {
	b := &Buffer{
		purpose: bk.Purpose,
		stride:  bk.Stride,
		views:   make([]ArrayView, len(bk.Placements)),
	}
	specs := make([]staging.ViewSpec, len(bk.Placements))
	for i, p := range bk.Placements {
		a := &attrs[p.Ref]
		b.usage = a.Usage
		specs[i] = staging.ViewSpec{OffsetInBytes: p.OffsetInBytes, Codec: a.Datatype}
		b.views[i] = ArrayView{
			Index:                  a.Index,
			Enabled:                a.Enabled(),
			ComponentsPerAttribute: a.ComponentsPerAttribute,
			Datatype:               a.Datatype,
			Normalize:              a.Normalize,
			OffsetInBytes:          p.OffsetInBytes,
			Name:                   a.Name,
		}
	}
	if b.stride == 0 && len(specs) > 0 {
		panic(fmt.Sprintf("vstage: bucket %s/%s has %d attributes and zero stride", bk.Purpose, bk.Usage, len(specs)))
	}
	b.block = staging.NewBlock(b.stride, size, specs)
	b.syncViews()
	return b
}

// syncViews copies the per-view stride computed by the staging block.
func (b *Buffer) syncViews() {
	for i := 0; i < b.block.NumViews(); i++ {
		b.views[i].StrideInComponents = b.block.View(i).StrideInComponents
	}
}

// resize reallocates staging memory for n vertices, keeping the prefix.
// A buffer that already owns a GPU buffer is marked for commit so the next
// Commit grows or refreshes it. Resizing to the current length does nothing.
func (b *Buffer) resize(n int) {
	if b.block.Len() == n {
		return
	}
	b.block.Resize(n)
	b.syncViews()
	if b.gpu != nil {
		b.needsCommit = true
	}
}

// Purpose returns the bucket purpose.
func (b *Buffer) Purpose() string { return b.purpose }

// Usage returns the bucket usage hint.
func (b *Buffer) Usage() UsageHint { return b.usage }

// Stride returns the interleaved record size in bytes.
func (b *Buffer) Stride() int { return b.block.Stride() }

// Views returns the attribute views in record order.
func (b *Buffer) Views() []ArrayView { return b.views }

// Bytes returns the staging memory. The slice is replaced on resize.
func (b *Buffer) Bytes() []byte { return b.block.Bytes() }

// VertexBuffer returns the GPU vertex buffer, or nil before the first
// upload.
func (b *Buffer) VertexBuffer() VertexBuffer { return b.gpu }

// NeedsCommit reports whether staged data has not been uploaded yet.
func (b *Buffer) NeedsCommit() bool { return b.needsCommit }

// bindings appends the buffer's attribute bindings for a chunk starting at
// vertex first.
func (b *Buffer) bindings(dst []AttributeBinding, first int) []AttributeBinding {
	base := first * b.stride
	for i := range b.views {
		v := &b.views[i]
		dst = append(dst, AttributeBinding{
			Index:                  v.Index,
			Enabled:                v.Enabled,
			Buffer:                 b.gpu,
			ComponentsPerAttribute: v.ComponentsPerAttribute,
			Datatype:               v.Datatype,
			Normalize:              v.Normalize,
			OffsetInBytes:          v.OffsetInBytes + base,
			StrideInBytes:          b.stride,
		})
	}
	return dst
}

// destroyGPU releases the GPU buffer, if any.
func (b *Buffer) destroyGPU() {
	if b.gpu != nil {
		b.gpu.Destroy()
		b.gpu = nil
	}
}
