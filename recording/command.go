// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import "github.com/gogpu/vstage"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Buffer commands
	CmdCreateBuffer  CommandType = iota // Create a vertex buffer
	CmdCopy                             // Copy bytes into a vertex buffer
	CmdDestroyBuffer                    // Destroy a vertex buffer

	// Vertex array commands
	CmdCreateVertexArray  // Create a vertex array
	CmdDestroyVertexArray // Destroy a vertex array
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateBuffer:       "CreateBuffer",
	CmdCopy:               "Copy",
	CmdDestroyBuffer:      "DestroyBuffer",
	CmdCreateVertexArray:  "CreateVertexArray",
	CmdDestroyVertexArray: "DestroyVertexArray",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BufferRef identifies a buffer created by a Device, in creation order.
type BufferRef uint32

// VertexArrayRef identifies a vertex array created by a Device, in
// creation order.
type VertexArrayRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r BufferRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r VertexArrayRef) IsValid() bool { return uint32(r) != InvalidRef }

// CreateBufferCommand records a vertex buffer creation.
type CreateBufferCommand struct {
	Buffer BufferRef
	Label  string
	Size   int
	Usage  vstage.UsageHint
}

// Type implements Command.
func (CreateBufferCommand) Type() CommandType { return CmdCreateBuffer }

// CopyCommand records an upload into an existing buffer.
type CopyCommand struct {
	Buffer        BufferRef
	OffsetInBytes int
	Size          int
}

// Type implements Command.
func (CopyCommand) Type() CommandType { return CmdCopy }

// DestroyBufferCommand records a buffer release.
type DestroyBufferCommand struct {
	Buffer BufferRef
}

// Type implements Command.
func (DestroyBufferCommand) Type() CommandType { return CmdDestroyBuffer }

// CreateVertexArrayCommand records a vertex array creation.
type CreateVertexArrayCommand struct {
	VertexArray VertexArrayRef
	Label       string

	// Attributes is the number of attribute bindings.
	Attributes int
}

// Type implements Command.
func (CreateVertexArrayCommand) Type() CommandType { return CmdCreateVertexArray }

// DestroyVertexArrayCommand records a vertex array release.
type DestroyVertexArrayCommand struct {
	VertexArray VertexArrayRef
}

// Type implements Command.
func (DestroyVertexArrayCommand) Type() CommandType { return CmdDestroyVertexArray }
