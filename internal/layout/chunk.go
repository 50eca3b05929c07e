// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

// Chunk is a contiguous vertex range addressable by one index buffer.
type Chunk struct {
	// Index is the chunk position, starting at 0.
	Index int

	// First is the first vertex of the chunk.
	First int

	// Count is the number of vertices in the chunk.
	Count int
}

// Last reports whether c is the final chunk of a split of size vertices.
func (c Chunk) Last(size int) bool { return c.First+c.Count >= size }

// Chunks splits [0, size) into consecutive ranges of at most limit vertices.
// Every chunk but the last holds exactly limit vertices. A size of zero
// yields no chunks; a limit below one is treated as one.
func Chunks(size, limit int) []Chunk {
	if size <= 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}
	n := (size + limit - 1) / limit
	chunks := make([]Chunk, n)
	for i := range chunks {
		first := i * limit
		chunks[i] = Chunk{
			Index: i,
			First: first,
			Count: min(limit, size-first),
		}
	}
	return chunks
}
