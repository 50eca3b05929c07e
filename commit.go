// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"fmt"
	"math"

	"github.com/gogpu/vstage/internal/layout"
)

// CommitResult reports what a Commit did.
type CommitResult struct {
	// BuffersCreated counts GPU vertex buffers created or recreated.
	BuffersCreated int

	// BuffersUpdated counts GPU vertex buffers updated in place.
	BuffersUpdated int

	// BytesUploaded is the total number of bytes sent to the device.
	BytesUploaded int

	// Rebuilt reports whether vertex arrays were rebuilt.
	Rebuilt bool

	// VertexArrays counts the vertex arrays created by the rebuild.
	VertexArrays int
}

// Commit uploads every dirty buffer and rebuilds the vertex arrays when
// needed. indexBuffer is passed to every vertex array as is.
//
// A dirty buffer whose GPU buffer is missing or too small gets a new GPU
// buffer holding the whole staging block; otherwise the block is copied in
// place. Vertex arrays are rebuilt when a GPU buffer was replaced, the
// vertex count changed since the last build, or none were built yet, as
// soon as the stage owns at least one GPU buffer.
//
// On error the stage keeps its previous GPU objects and the failed buffer
// stays dirty.
func (s *Stage) Commit(indexBuffer any) (CommitResult, error) {
	var res CommitResult
	rebuild := false

	for _, b := range s.buffers {
		if !b.needsCommit {
			continue
		}
		if b.stride == 0 {
			if len(b.views) > 0 {
				panic(fmt.Sprintf("vstage: buffer %s/%s has attributes and zero stride", b.purpose, b.usage))
			}
			continue
		}
		data := b.block.Bytes()
		if len(data) == 0 {
			b.needsCommit = false
			continue
		}
		if b.gpu == nil || b.gpu.SizeInBytes() < len(data) {
			if err := s.createGPU(b); err != nil {
				return res, err
			}
			res.BuffersCreated++
			rebuild = true
		} else {
			if err := b.gpu.CopyFrom(data, 0); err != nil {
				return res, fmt.Errorf("vstage: upload %s/%s: %w", b.purpose, b.usage, err)
			}
			res.BuffersUpdated++
		}
		res.BytesUploaded += len(data)
		b.needsCommit = false
	}

	if !rebuild && s.built && s.builtSize == s.size {
		return res, nil
	}
	if !s.canBuild() {
		return res, nil
	}
	n, err := s.rebuild(indexBuffer, &res)
	if err != nil {
		return res, err
	}
	res.Rebuilt = true
	res.VertexArrays = n

	Logger().Debug("vstage: committed",
		"label", s.cfg.Label,
		"created", res.BuffersCreated,
		"updated", res.BuffersUpdated,
		"bytes", res.BytesUploaded,
		"vertexArrays", res.VertexArrays)
	return res, nil
}

// canBuild reports whether vertex arrays can be built: at least one GPU
// buffer exists, or nothing is staged at all.
func (s *Stage) canBuild() bool {
	if len(s.buffers) == 0 {
		return true
	}
	for _, b := range s.buffers {
		if b.gpu != nil {
			return true
		}
	}
	return false
}

// createGPU replaces the GPU buffer of b with one holding the whole staging
// block. The old buffer is destroyed only after the new one exists.
func (s *Stage) createGPU(b *Buffer) error {
	label := fmt.Sprintf("%s/%s/%s", s.cfg.Label, b.purpose, b.usage)
	vb, err := s.device.CreateVertexBuffer(label, b.block.Bytes(), b.usage)
	if err != nil {
		return fmt.Errorf("vstage: create vertex buffer %s: %w", label, err)
	}
	b.destroyGPU()
	b.gpu = vb
	return nil
}

// rebuild destroys the current vertex arrays and creates one per purpose per
// chunk. It returns the number of vertex arrays created.
func (s *Stage) rebuild(indexBuffer any, res *CommitResult) (int, error) {
	if s.size > 0 {
		for _, b := range s.buffers {
			if b.gpu != nil || b.stride == 0 {
				continue
			}
			if err := s.createGPU(b); err != nil {
				return 0, err
			}
			res.BuffersCreated++
			res.BytesUploaded += len(b.block.Bytes())
			b.needsCommit = false
		}
	}

	s.destroyVertexArrays()

	chunks := layout.Chunks(s.size, s.cfg.IndexAddressingWidth)
	groups := make(map[string][]VertexArrayGroup, len(s.purposes))
	created := 0
	for _, p := range s.purposes {
		list := make([]VertexArrayGroup, 0, len(chunks))
		for _, c := range chunks {
			desc := &VertexArrayDescriptor{
				Label:       fmt.Sprintf("%s/%s/%d", s.cfg.Label, p, c.Index),
				Attributes:  s.bindings(p, c.First),
				IndexBuffer: indexBuffer,
			}
			va, err := s.device.CreateVertexArray(desc)
			if err != nil {
				s.groups = groups
				s.groups[p] = list
				s.destroyVertexArrays()
				return created, fmt.Errorf("vstage: create vertex array %s: %w", desc.Label, err)
			}
			created++
			list = append(list, VertexArrayGroup{
				VertexArray:  va,
				IndicesCount: s.chunkIndices(c),
				FirstVertex:  c.First,
				VertexCount:  c.Count,
			})
		}
		groups[p] = list
	}

	s.groups = groups
	s.built = true
	s.builtSize = s.size
	return created, nil
}

// bindings collects the attribute bindings of purpose for a chunk starting
// at vertex first: "all" attributes, then the purpose's own, then every
// precreated attribute unchanged.
func (s *Stage) bindings(purpose string, first int) []AttributeBinding {
	var out []AttributeBinding
	for _, b := range s.buffers {
		if b.purpose == PurposeAll {
			out = b.bindings(out, first)
		}
	}
	if purpose != PurposeAll {
		for _, b := range s.buffers {
			if b.purpose == purpose {
				out = b.bindings(out, first)
			}
		}
	}
	for _, i := range s.precreated {
		a := &s.attrs[i]
		out = append(out, AttributeBinding{
			Index:                  a.Index,
			Enabled:                a.Enabled(),
			Buffer:                 a.External.Buffer,
			ComponentsPerAttribute: a.ComponentsPerAttribute,
			Datatype:               a.Datatype,
			Normalize:              a.Normalize,
			OffsetInBytes:          a.External.OffsetInBytes,
			StrideInBytes:          a.External.StrideInBytes,
		})
	}
	return out
}

// chunkIndices returns the index count of chunk c. Full chunks address
// the whole width; the final chunk addresses the vertices it holds, which
// is the whole width again when the size is an exact multiple of it.
func (s *Stage) chunkIndices(c layout.Chunk) int {
	vertices := s.cfg.IndexAddressingWidth
	if c.Last(s.size) {
		vertices = c.Count
	}
	return int(math.Floor(s.cfg.IndicesPerVertex * float64(vertices)))
}
