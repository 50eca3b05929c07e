// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import "errors"

// Construction and validation errors.
//
// All of them describe caller mistakes. They are returned before any state
// is built or mutated, so a failed call leaves a Stage exactly as it was.
var (
	// ErrNilDevice is returned when New is called without a Device.
	ErrNilDevice = errors.New("vstage: device is nil")

	// ErrNoAttributes is returned when New is called with an empty attribute list.
	ErrNoAttributes = errors.New("vstage: at least one attribute is required")

	// ErrComponentCount is returned when ComponentsPerAttribute is outside [1, 4].
	ErrComponentCount = errors.New("vstage: components per attribute must be in [1, 4]")

	// ErrInvalidDatatype is returned for an unknown component datatype.
	ErrInvalidDatatype = errors.New("vstage: invalid component datatype")

	// ErrInvalidUsage is returned for an unknown usage hint.
	ErrInvalidUsage = errors.New("vstage: invalid usage hint")

	// ErrDuplicateIndex is returned when two attributes share an index within
	// a purpose, or when an "all" attribute index collides with any other.
	ErrDuplicateIndex = errors.New("vstage: duplicate attribute index")

	// ErrNegativeIndex is returned for an explicit index below zero other than AutoIndex.
	ErrNegativeIndex = errors.New("vstage: attribute index must not be negative")

	// ErrInvalidExternal is returned when an external binding has no buffer.
	ErrInvalidExternal = errors.New("vstage: external binding has no buffer")

	// ErrInvalidArgument is returned for out-of-range sizes, offsets and lengths.
	ErrInvalidArgument = errors.New("vstage: invalid argument")

	// ErrNotCommitted is returned by SubCommit when a dirty buffer has no GPU
	// buffer with enough capacity yet. Call Commit first.
	ErrNotCommitted = errors.New("vstage: buffer has not been committed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("vstage: invalid config")

	// ErrUnknownDevice is returned by OpenDevice for an unregistered name.
	ErrUnknownDevice = errors.New("vstage: unknown device")
)
