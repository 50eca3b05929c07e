// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"testing"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdCreateBuffer, "CreateBuffer"},
		{CmdCopy, "Copy"},
		{CmdDestroyBuffer, "DestroyBuffer"},
		{CmdCreateVertexArray, "CreateVertexArray"},
		{CmdDestroyVertexArray, "DestroyVertexArray"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandInterface(t *testing.T) {
	commands := []struct {
		cmd  Command
		want CommandType
	}{
		{CreateBufferCommand{Buffer: 0, Size: 16}, CmdCreateBuffer},
		{CopyCommand{Buffer: 0, Size: 16}, CmdCopy},
		{DestroyBufferCommand{Buffer: 0}, CmdDestroyBuffer},
		{CreateVertexArrayCommand{VertexArray: 0}, CmdCreateVertexArray},
		{DestroyVertexArrayCommand{VertexArray: 0}, CmdDestroyVertexArray},
	}
	for _, tt := range commands {
		if got := tt.cmd.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestRefValidity(t *testing.T) {
	if !BufferRef(0).IsValid() {
		t.Error("BufferRef(0).IsValid() = false, want true")
	}
	if BufferRef(InvalidRef).IsValid() {
		t.Error("BufferRef(InvalidRef).IsValid() = true, want false")
	}
	if VertexArrayRef(InvalidRef).IsValid() {
		t.Error("VertexArrayRef(InvalidRef).IsValid() = true, want false")
	}
}
