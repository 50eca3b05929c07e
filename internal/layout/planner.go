// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout plans interleaved vertex-buffer layouts.
//
// Entries are grouped by purpose, then by usage key, both in order of first
// appearance. Within a bucket entries are sorted by descending component size
// so wide components come first and padding is kept to the tail of the
// record. The record stride is padded to a multiple of the widest component.
package layout

import (
	"cmp"
	"slices"
)

// Entry is one attribute to place.
type Entry struct {
	// Index is the shader location. Informational only.
	Index int

	// Purpose and Usage select the bucket.
	Purpose string
	Usage   string

	// Components is the vector width.
	Components int

	// ComponentSize is the byte size of one component.
	ComponentSize int

	// Ref is an opaque caller reference, usually the declaration position.
	Ref int
}

// Size returns the byte size of one element.
func (e Entry) Size() int { return e.Components * e.ComponentSize }

// Placement is an entry with its byte offset inside the record.
type Placement struct {
	Entry
	OffsetInBytes int
}

// Bucket is the layout of one interleaved buffer.
type Bucket struct {
	Purpose string
	Usage   string

	// Placements are sorted by descending component size.
	Placements []Placement

	// Stride is the padded record size in bytes.
	Stride int

	// MaxComponentSize is the widest component in the bucket.
	MaxComponentSize int
}

// Plan groups entries into buckets and lays each one out.
// The result is deterministic for a given input order.
func Plan(entries []Entry) []Bucket {
	type key struct{ purpose, usage string }

	var order []key
	groups := make(map[key][]Entry)
	for _, e := range entries {
		k := key{e.Purpose, e.Usage}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	// Buckets of one purpose stay adjacent, in first-appearance order of the
	// purpose, then of the usage within it.
	purposeRank := make(map[string]int)
	for _, k := range order {
		if _, ok := purposeRank[k.purpose]; !ok {
			purposeRank[k.purpose] = len(purposeRank)
		}
	}
	slices.SortStableFunc(order, func(a, b key) int {
		return cmp.Compare(purposeRank[a.purpose], purposeRank[b.purpose])
	})

	buckets := make([]Bucket, 0, len(order))
	for _, k := range order {
		buckets = append(buckets, layoutBucket(k.purpose, k.usage, groups[k]))
	}
	return buckets
}

// layoutBucket sorts one group and assigns offsets.
func layoutBucket(purpose, usage string, entries []Entry) Bucket {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(b.ComponentSize, a.ComponentSize)
	})

	b := Bucket{
		Purpose:    purpose,
		Usage:      usage,
		Placements: make([]Placement, len(sorted)),
	}
	offset := 0
	for i, e := range sorted {
		b.Placements[i] = Placement{Entry: e, OffsetInBytes: offset}
		offset += e.Size()
		b.MaxComponentSize = max(b.MaxComponentSize, e.ComponentSize)
	}
	b.Stride = AlignUp(offset, b.MaxComponentSize)
	return b
}

// AlignUp rounds n up to a multiple of align. An align of zero or less
// returns n unchanged.
func AlignUp(n, align int) int {
	if align <= 0 {
		return n
	}
	return (n + align - 1) / align * align
}
