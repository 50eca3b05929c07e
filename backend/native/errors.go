// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a device or queue is missing.
	ErrNilDevice = errors.New("native: hal device or queue is nil")

	// ErrBufferDestroyed is returned when operating on a destroyed buffer.
	ErrBufferDestroyed = errors.New("native: buffer has been destroyed")

	// ErrOutOfRange is returned when a copy does not fit the buffer.
	ErrOutOfRange = errors.New("native: copy out of range")

	// ErrForeignBuffer is returned when a binding refers to a buffer that
	// does not expose a hal.Buffer.
	ErrForeignBuffer = errors.New("native: buffer does not belong to a HAL device")

	// ErrUnsupportedFormat is returned for attribute formats WebGPU cannot fetch.
	ErrUnsupportedFormat = errors.New("native: unsupported vertex format")

	// ErrMemoryBudgetExceeded is returned when an allocation would exceed
	// the configured budget.
	ErrMemoryBudgetExceeded = errors.New("native: memory budget exceeded")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL types.
	ErrNoHALProvider = errors.New("native: provider does not expose HAL types")
)
