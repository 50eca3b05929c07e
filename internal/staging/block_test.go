// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package staging

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type f32 struct{}

func (f32) Size() int { return 4 }
func (f32) Put(b []byte, v float64) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
}
func (f32) Get(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

type u8 struct{}

func (u8) Size() int               { return 1 }
func (u8) Put(b []byte, v float64) { b[0] = uint8(v) }
func (u8) Get(b []byte) float64    { return float64(b[0]) }

// newTestBlock lays out position (3×f32 at 0) and color (4×u8 at 12), stride 16.
func newTestBlock(count int) *Block {
	return NewBlock(16, count, []ViewSpec{
		{OffsetInBytes: 0, Codec: f32{}},
		{OffsetInBytes: 12, Codec: u8{}},
	})
}

func TestNewBlock(t *testing.T) {
	b := newTestBlock(10)
	assert.Equal(t, 16, b.Stride())
	assert.Equal(t, 10, b.Len())
	assert.Len(t, b.Bytes(), 160)
	require.Equal(t, 2, b.NumViews())
	assert.Equal(t, 4, b.View(0).StrideInComponents)
	assert.Equal(t, 16, b.View(1).StrideInComponents)
	assert.Equal(t, 12, b.View(1).OffsetInBytes)
}

func TestNewBlockMisalignedStride(t *testing.T) {
	assert.Panics(t, func() {
		NewBlock(6, 1, []ViewSpec{{Codec: f32{}}})
	})
}

func TestPutGet(t *testing.T) {
	b := newTestBlock(3)
	b.Put(0, 2, 0, 1.5)
	b.Put(0, 2, 2, -3)
	b.Put(1, 2, 3, 200)

	assert.Equal(t, 1.5, b.Get(0, 2, 0))
	assert.Equal(t, -3.0, b.Get(0, 2, 2))
	assert.Equal(t, 200.0, b.Get(1, 2, 3))

	// Record 2 starts at byte 32; alpha of color is at 32+12+3.
	assert.Equal(t, byte(200), b.Bytes()[47])
	// Other records untouched.
	assert.Equal(t, 0.0, b.Get(0, 1, 0))
}

func TestResizePreservesPrefix(t *testing.T) {
	b := newTestBlock(4)
	for v := 0; v < 4; v++ {
		for c := 0; c < 3; c++ {
			b.Put(0, v, c, float64(v*10+c))
		}
		b.Put(1, v, 0, float64(v))
	}
	before := append([]byte(nil), b.Bytes()...)

	b.Resize(9)
	assert.Equal(t, 9, b.Len())
	assert.Len(t, b.Bytes(), 144)
	assert.Equal(t, before, b.Bytes()[:len(before)])
	assert.Equal(t, 31.0, b.Get(0, 3, 1))
	assert.Equal(t, 3.0, b.Get(1, 3, 0))

	b.Resize(2)
	assert.Equal(t, before[:32], b.Bytes())
}

func TestRange(t *testing.T) {
	b := newTestBlock(5)
	b.Put(1, 3, 0, 7)
	r := b.Range(3, 2)
	assert.Len(t, r, 32)
	assert.Equal(t, byte(7), r[12])
}
