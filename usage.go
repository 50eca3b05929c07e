// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// UsageHint tells the device how often an attribute is expected to change.
// Attributes with different hints never share a GPU buffer.
type UsageHint uint8

const (
	// UsageUnspecified resolves to UsageStatic during validation.
	UsageUnspecified UsageHint = iota

	// UsageStatic data is written once and drawn many times.
	UsageStatic

	// UsageDynamic data is rewritten occasionally.
	UsageDynamic

	// UsageStream data is rewritten every frame.
	UsageStream

	usageCount
)

var usageNames = [...]string{
	UsageUnspecified: "unspecified",
	UsageStatic:      "static",
	UsageDynamic:     "dynamic",
	UsageStream:      "stream",
}

// String returns the hint name.
func (u UsageHint) String() string {
	if u < usageCount {
		return usageNames[u]
	}
	return fmt.Sprintf("UsageHint(%d)", uint8(u))
}

// Valid reports whether u names a concrete hint.
func (u UsageHint) Valid() bool {
	return u > UsageUnspecified && u < usageCount
}

// Key returns the stable grouping key used by the layout planner.
func (u UsageHint) Key() string {
	return u.String()
}

// ParseUsageHint parses a hint name as returned by String.
// The empty string yields UsageUnspecified.
func ParseUsageHint(s string) (UsageHint, error) {
	if s == "" {
		return UsageUnspecified, nil
	}
	for u := UsageStatic; u < usageCount; u++ {
		if usageNames[u] == s {
			return u, nil
		}
	}
	return UsageUnspecified, fmt.Errorf("%w: %q", ErrInvalidUsage, s)
}

// BufferUsage returns the GPU buffer usage flags for a vertex buffer
// created under this hint. Every vertex buffer is a copy destination so it
// can be updated in place; streamed buffers are also copy sources so a
// backend may ring-copy them.
func (u UsageHint) BufferUsage() gputypes.BufferUsage {
	usage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	if u == UsageStream {
		usage |= gputypes.BufferUsageCopySrc
	}
	return usage
}
