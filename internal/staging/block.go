// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package staging implements the CPU-side interleaved vertex memory that
// backs one layout bucket.
//
// A Block owns a single growable byte slice of count×stride bytes and a set
// of typed views at fixed byte offsets inside each vertex record. Views are
// addressed in component units, the same way a typed array laid over the
// block at the view's offset would be.
package staging

import "fmt"

// Codec converts one component value to and from its byte representation.
type Codec interface {
	// Size returns the component size in bytes.
	Size() int

	// Put encodes v into b[:Size()].
	Put(b []byte, v float64)

	// Get decodes b[:Size()].
	Get(b []byte) float64
}

// ViewSpec places a typed view inside the vertex record.
type ViewSpec struct {
	OffsetInBytes int
	Codec         Codec
}

// View is a typed window over a Block.
type View struct {
	// OffsetInBytes is the view start inside each vertex record.
	OffsetInBytes int

	// StrideInComponents is the record stride measured in this view's
	// component size.
	StrideInComponents int

	codec Codec
	size  int
}

// Block is the staging memory for one bucket.
type Block struct {
	stride int
	count  int
	raw    []byte
	views  []View
}

// NewBlock allocates a block of count records of stride bytes with one view
// per spec. Every codec size must divide stride.
func NewBlock(stride, count int, specs []ViewSpec) *Block {
	b := &Block{
		stride: stride,
		views:  make([]View, len(specs)),
	}
	for i, s := range specs {
		size := s.Codec.Size()
		if stride%size != 0 {
			panic(fmt.Sprintf("staging: stride %d is not a multiple of component size %d", stride, size))
		}
		b.views[i] = View{
			OffsetInBytes:      s.OffsetInBytes,
			StrideInComponents: stride / size,
			codec:              s.Codec,
			size:               size,
		}
	}
	b.raw = make([]byte, count*stride)
	b.count = count
	return b
}

// Resize reallocates the block for count records. The previous content is
// copied into the prefix of the new memory; a shrink keeps the leading
// records that still fit.
func (b *Block) Resize(count int) {
	raw := make([]byte, count*b.stride)
	copy(raw, b.raw)
	b.raw = raw
	b.count = count
}

// Stride returns the record size in bytes.
func (b *Block) Stride() int { return b.stride }

// Len returns the number of records.
func (b *Block) Len() int { return b.count }

// Bytes returns the whole block. The slice is replaced on Resize.
func (b *Block) Bytes() []byte { return b.raw }

// Range returns the bytes of records [first, first+count).
func (b *Block) Range(first, count int) []byte {
	return b.raw[first*b.stride : (first+count)*b.stride]
}

// View returns view i.
func (b *Block) View(i int) View { return b.views[i] }

// NumViews returns the number of views.
func (b *Block) NumViews() int { return len(b.views) }

// Put stores component comp of record vertex through view i.
// Bounds are not checked beyond the slice bounds check.
func (b *Block) Put(i, vertex, comp int, v float64) {
	vw := &b.views[i]
	pos := vw.OffsetInBytes + (vertex*vw.StrideInComponents+comp)*vw.size
	vw.codec.Put(b.raw[pos:pos+vw.size], v)
}

// Get loads component comp of record vertex through view i.
func (b *Block) Get(i, vertex, comp int) float64 {
	vw := &b.views[i]
	pos := vw.OffsetInBytes + (vertex*vw.StrideInComponents+comp)*vw.size
	return vw.codec.Get(b.raw[pos : pos+vw.size])
}
