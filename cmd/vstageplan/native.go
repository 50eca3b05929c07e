// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package main

// Registers the "noop" device: the native backend over the no-op HAL.
import _ "github.com/gogpu/vstage/backend/native"
