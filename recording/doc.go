// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording provides an in-memory vstage.Device.
//
// The recording device keeps every vertex buffer's content in host memory
// and records each call as a typed command instead of talking to a GPU.
// Tests use it to assert on uploads and vertex-array churn; tools use it to
// plan layouts without a GPU.
//
// Design follows typed command structs for inspectability, the same way a
// display list records drawing operations.
//
// # Example
//
//	dev := recording.NewDevice()
//	s, _ := vstage.New(dev, attrs, vstage.WithInitialSize(3))
//	s.Writer(vstage.PurposeAll, 0).Write3(0, 1, 2, 3)
//	s.Commit(nil)
//
//	for _, cmd := range dev.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
// Importing the package registers the "recording" device with
// vstage.Register.
package recording
