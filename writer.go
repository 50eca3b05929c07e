// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

// Writer stores per-vertex values of one attribute into staging memory.
//
// Vertex indices are not bounds-checked beyond Go's slice bounds check:
// writing at or past Size panics. Every write marks the owning Buffer as
// needing commit.
type Writer struct {
	buf        *Buffer
	view       int
	components int
}

// Writers maps purpose to attribute index to Writer.
type Writers map[string]map[int]*Writer

// Components returns the attribute's component count.
func (w *Writer) Components() int { return w.components }

// Write stores the attribute value of vertex index. It takes exactly
// Components values; missing values panic and extra values are ignored.
func (w *Writer) Write(index int, values ...float64) {
	switch w.components {
	case 1:
		w.Write1(index, values[0])
	case 2:
		w.Write2(index, values[0], values[1])
	case 3:
		w.Write3(index, values[0], values[1], values[2])
	case 4:
		w.Write4(index, values[0], values[1], values[2], values[3])
	}
}

// Write1 stores a scalar attribute.
func (w *Writer) Write1(index int, x float64) {
	blk := w.buf.block
	blk.Put(w.view, index, 0, x)
	w.buf.needsCommit = true
}

// Write2 stores a 2-component attribute.
func (w *Writer) Write2(index int, x, y float64) {
	blk := w.buf.block
	blk.Put(w.view, index, 0, x)
	blk.Put(w.view, index, 1, y)
	w.buf.needsCommit = true
}

// Write3 stores a 3-component attribute.
func (w *Writer) Write3(index int, x, y, z float64) {
	blk := w.buf.block
	blk.Put(w.view, index, 0, x)
	blk.Put(w.view, index, 1, y)
	blk.Put(w.view, index, 2, z)
	w.buf.needsCommit = true
}

// Write4 stores a 4-component attribute.
func (w *Writer) Write4(index int, x, y, z, v float64) {
	blk := w.buf.block
	blk.Put(w.view, index, 0, x)
	blk.Put(w.view, index, 1, y)
	blk.Put(w.view, index, 2, z)
	blk.Put(w.view, index, 3, v)
	w.buf.needsCommit = true
}

// Read returns the staged value of vertex index, decoded to float64.
func (w *Writer) Read(index int) []float64 {
	out := make([]float64, w.components)
	for c := range out {
		out[c] = w.buf.block.Get(w.view, index, c)
	}
	return out
}

// newWriters issues one writer per staged attribute.
func newWriters(buffers []*Buffer) Writers {
	ws := make(Writers)
	for _, b := range buffers {
		m := ws[b.purpose]
		if m == nil {
			m = make(map[int]*Writer)
			ws[b.purpose] = m
		}
		for i := range b.views {
			m[b.views[i].Index] = &Writer{
				buf:        b,
				view:       i,
				components: b.views[i].ComponentsPerAttribute,
			}
		}
	}
	return ws
}
