// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import "fmt"

// PurposeAll is the purpose shared by every draw group.
const PurposeAll = "all"

// AutoIndex asks the validator to use the attribute's declaration position
// as its shader location.
const AutoIndex = -1

// Attribute declares one per-vertex attribute.
//
// The zero value of every optional field selects its default: an enabled
// attribute with float components, static usage and purpose "all". A zero
// Index is location 0; set it to AutoIndex to take the declaration position.
type Attribute struct {
	// Name is used for debug labels and generated shader fields.
	Name string

	// Index is the shader location, or AutoIndex.
	Index int

	// Disabled keeps the attribute in the layout but turns off fetching.
	Disabled bool

	// ComponentsPerAttribute is the vector width, 1 to 4.
	ComponentsPerAttribute int

	// Datatype is the component element type. Default DatatypeFloat.
	Datatype ComponentDatatype

	// Normalize maps integer components to [0, 1] or [-1, 1].
	Normalize bool

	// Purpose selects the draw group. Default PurposeAll.
	Purpose string

	// Usage is the update-frequency hint. Default UsageStatic.
	Usage UsageHint

	// External binds the attribute to a caller-owned buffer. Such an
	// attribute gets no staging memory and no writer, and is passed
	// through unchanged into every vertex array.
	External *ExternalBinding
}

// ExternalBinding locates a precreated attribute in a caller-owned buffer.
type ExternalBinding struct {
	Buffer        VertexBuffer
	OffsetInBytes int
	StrideInBytes int
}

// Precreated reports whether the attribute lives in an external buffer.
func (a *Attribute) Precreated() bool { return a.External != nil }

// Enabled reports whether the attribute is fetched.
func (a *Attribute) Enabled() bool { return !a.Disabled }

// ComponentSize returns the byte size of one component.
func (a *Attribute) ComponentSize() int { return a.Datatype.Size() }

// ElementSize returns the byte size of one attribute element.
func (a *Attribute) ElementSize() int {
	return a.ComponentsPerAttribute * a.Datatype.Size()
}

// label returns a printable identifier for error messages.
func (a *Attribute) label(pos int) string {
	if a.Name != "" {
		return fmt.Sprintf("attribute %d (%s)", pos, a.Name)
	}
	return fmt.Sprintf("attribute %d", pos)
}

// normalizeAttributes applies defaults to a copy of attrs and validates the
// result. The input slice is never modified.
func normalizeAttributes(attrs []Attribute) ([]Attribute, error) {
	if len(attrs) == 0 {
		return nil, ErrNoAttributes
	}

	out := make([]Attribute, len(attrs))
	for i := range attrs {
		a := attrs[i]

		switch {
		case a.Index == AutoIndex:
			a.Index = i
		case a.Index < 0:
			return nil, fmt.Errorf("%s: %w: %d", a.label(i), ErrNegativeIndex, a.Index)
		}
		if a.Datatype == DatatypeUnspecified {
			a.Datatype = DatatypeFloat
		}
		if a.Usage == UsageUnspecified {
			a.Usage = UsageStatic
		}
		if a.Purpose == "" {
			a.Purpose = PurposeAll
		}

		if a.ComponentsPerAttribute < 1 || a.ComponentsPerAttribute > 4 {
			return nil, fmt.Errorf("%s: %w: got %d", a.label(i), ErrComponentCount, a.ComponentsPerAttribute)
		}
		if !a.Datatype.Valid() {
			return nil, fmt.Errorf("%s: %w: %v", a.label(i), ErrInvalidDatatype, a.Datatype)
		}
		if !a.Usage.Valid() {
			return nil, fmt.Errorf("%s: %w: %v", a.label(i), ErrInvalidUsage, a.Usage)
		}
		if a.External != nil {
			if a.External.Buffer == nil {
				return nil, fmt.Errorf("%s: %w", a.label(i), ErrInvalidExternal)
			}
			if a.External.OffsetInBytes < 0 || a.External.StrideInBytes < 0 {
				return nil, fmt.Errorf("%s: %w: negative offset or stride", a.label(i), ErrInvalidExternal)
			}
			ext := *a.External
			a.External = &ext
		}
		out[i] = a
	}

	if err := checkIndices(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkIndices enforces index uniqueness. Two attributes of the same purpose
// may not share an index, and an "all" attribute may not share its index
// with any attribute at all, since "all" attributes join every group.
func checkIndices(attrs []Attribute) error {
	type key struct {
		purpose string
		index   int
	}
	seen := make(map[key]int, len(attrs))
	allIndex := make(map[int]int)
	anyIndex := make(map[int]int)

	for i := range attrs {
		a := &attrs[i]
		k := key{a.Purpose, a.Index}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("%s: %w: index %d already used by %s in purpose %q",
				a.label(i), ErrDuplicateIndex, a.Index, attrs[j].label(j), a.Purpose)
		}
		seen[k] = i

		if a.Purpose == PurposeAll {
			if j, ok := anyIndex[a.Index]; ok {
				return fmt.Errorf("%s: %w: index %d already used by %s",
					a.label(i), ErrDuplicateIndex, a.Index, attrs[j].label(j))
			}
			allIndex[a.Index] = i
		} else if j, ok := allIndex[a.Index]; ok {
			return fmt.Errorf("%s: %w: index %d already used by %s in purpose %q",
				a.label(i), ErrDuplicateIndex, a.Index, attrs[j].label(j), PurposeAll)
		}
		if _, ok := anyIndex[a.Index]; !ok {
			anyIndex[a.Index] = i
		}
	}
	return nil
}

// purposesOf returns the distinct purposes of attrs in first-appearance order.
func purposesOf(attrs []Attribute) []string {
	var out []string
	seen := make(map[string]bool)
	for i := range attrs {
		p := attrs[i].Purpose
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
