// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"fmt"

	"github.com/gogpu/vstage/internal/layout"
)

// VertexArrayGroup is one drawable vertex array of a purpose, covering at
// most Config.IndexAddressingWidth vertices.
type VertexArrayGroup struct {
	VertexArray  VertexArray
	IndicesCount int

	// FirstVertex and VertexCount locate the group in the stage.
	FirstVertex int
	VertexCount int
}

// Stage stages per-vertex attribute data on the CPU and keeps it mirrored in
// interleaved GPU vertex buffers.
//
// The layout is planned once by New. Resize changes capacity only. Writers
// fill staging memory; Commit and SubCommit upload it; Commit also builds
// the vertex arrays a renderer draws with.
//
// A Stage is not safe for concurrent use.
type Stage struct {
	device Device
	cfg    Config

	attrs      []Attribute
	purposes   []string
	buffers    []*Buffer
	precreated []int

	size    int
	writers Writers

	groups    map[string][]VertexArrayGroup
	built     bool
	builtSize int

	destroyed bool
}

// New validates attrs, plans their layout and allocates staging memory.
// No GPU object is created until the first Commit.
func New(device Device, attrs []Attribute, opts ...Option) (*Stage, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.initialSize < 0 {
		return nil, fmt.Errorf("%w: initial size %d", ErrInvalidArgument, o.initialSize)
	}
	cfg, err := o.resolve()
	if err != nil {
		return nil, err
	}
	norm, err := normalizeAttributes(attrs)
	if err != nil {
		return nil, err
	}

	s := &Stage{
		device:   device,
		cfg:      cfg,
		attrs:    norm,
		purposes: purposesOf(norm),
		size:     o.initialSize,
	}

	entries := make([]layout.Entry, 0, len(norm))
	for i := range norm {
		a := &norm[i]
		if a.Precreated() {
			s.precreated = append(s.precreated, i)
			continue
		}
		entries = append(entries, layout.Entry{
			Index:         a.Index,
			Purpose:       a.Purpose,
			Usage:         a.Usage.Key(),
			Components:    a.ComponentsPerAttribute,
			ComponentSize: a.ComponentSize(),
			Ref:           i,
		})
	}
	for _, bk := range layout.Plan(entries) {
		s.buffers = append(s.buffers, newBuffer(bk, norm, s.size))
		Logger().Debug("vstage: bucket planned",
			"label", cfg.Label,
			"purpose", bk.Purpose,
			"usage", bk.Usage,
			"stride", bk.Stride,
			"attributes", len(bk.Placements))
	}
	s.writers = newWriters(s.buffers)
	return s, nil
}

// Label returns the debug label prefix.
func (s *Stage) Label() string { return s.cfg.Label }

// Config returns the effective configuration.
func (s *Stage) Config() Config { return s.cfg }

// Size returns the vertex capacity.
func (s *Stage) Size() int { return s.size }

// Attributes returns the normalized attribute declarations.
func (s *Stage) Attributes() []Attribute { return s.attrs }

// Purposes returns the distinct attribute purposes in declaration order.
func (s *Stage) Purposes() []string { return s.purposes }

// PurposeAttributes returns the attributes bound into the vertex arrays of
// purpose, in binding order: "all" attributes, then the purpose's own, then
// precreated ones.
func (s *Stage) PurposeAttributes(purpose string) []Attribute {
	var out []Attribute
	appendBuffers := func(p string) {
		for _, b := range s.buffers {
			if b.purpose != p {
				continue
			}
			for _, v := range b.views {
				out = append(out, s.stagedAttribute(p, v.Index))
			}
		}
	}
	appendBuffers(PurposeAll)
	if purpose != PurposeAll {
		appendBuffers(purpose)
	}
	for _, i := range s.precreated {
		out = append(out, s.attrs[i])
	}
	return out
}

// stagedAttribute finds the staged attribute of purpose at index.
func (s *Stage) stagedAttribute(purpose string, index int) Attribute {
	for i := range s.attrs {
		a := &s.attrs[i]
		if a.Purpose == purpose && a.Index == index && !a.Precreated() {
			return *a
		}
	}
	panic(fmt.Sprintf("vstage: no staged attribute %d in purpose %q", index, purpose))
}

// Buffers returns the planned buffers, grouped by purpose then usage.
func (s *Stage) Buffers() []*Buffer { return s.buffers }

// Writers returns the current writers, by purpose then attribute index.
// Resize issues a new set.
func (s *Stage) Writers() Writers { return s.writers }

// Writer returns the writer of one attribute, or nil if the purpose has no
// staged attribute at index.
func (s *Stage) Writer(purpose string, index int) *Writer {
	return s.writers[purpose][index]
}

// VertexArrays returns the groups of purpose built by the last Commit.
// Groups stay valid until the next Resize, rebuilding Commit or Destroy.
func (s *Stage) VertexArrays(purpose string) []VertexArrayGroup {
	return s.groups[purpose]
}

// VertexArraysByPurpose returns every group built by the last Commit.
func (s *Stage) VertexArraysByPurpose() map[string][]VertexArrayGroup {
	out := make(map[string][]VertexArrayGroup, len(s.groups))
	for p, g := range s.groups {
		out[p] = g
	}
	return out
}

// Resize changes the vertex capacity to n. Staged data of the first
// min(n, Size) vertices is kept. Built vertex arrays are destroyed and
// writers are reissued; the next Commit uploads and rebuilds.
func (s *Stage) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidArgument, n)
	}
	s.destroyVertexArrays()
	for _, b := range s.buffers {
		b.resize(n)
	}
	Logger().Debug("vstage: resized", "label", s.cfg.Label, "from", s.size, "to", n)
	s.size = n
	s.writers = newWriters(s.buffers)
	return nil
}

// Destroy releases every GPU buffer and vertex array the stage owns.
// External buffers of precreated attributes are left alone.
func (s *Stage) Destroy() {
	s.destroyVertexArrays()
	for _, b := range s.buffers {
		b.destroyGPU()
	}
	s.destroyed = true
	Logger().Debug("vstage: destroyed", "label", s.cfg.Label)
}

// IsDestroyed reports whether Destroy has been called.
func (s *Stage) IsDestroyed() bool { return s.destroyed }

func (s *Stage) destroyVertexArrays() {
	for _, groups := range s.groups {
		for _, g := range groups {
			g.VertexArray.Destroy()
		}
	}
	s.groups = nil
	s.built = false
}
