// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vstage"
)

// Device errors.
var (
	// ErrOutOfRange is returned when a copy does not fit the buffer.
	ErrOutOfRange = errors.New("recording: copy out of range")

	// ErrBufferDestroyed is returned when copying into a destroyed buffer.
	ErrBufferDestroyed = errors.New("recording: buffer has been destroyed")
)

func init() {
	vstage.Register("recording", func() (vstage.Device, error) {
		return NewDevice(), nil
	})
}

// Device is an in-memory vstage.Device that records every call.
//
// Device is safe for concurrent use.
type Device struct {
	mu       sync.Mutex
	commands []Command
	buffers  []*Buffer
	arrays   []*VertexArray
	failures map[CommandType]error
}

// Compile-time interface checks.
var (
	_ vstage.Device       = (*Device)(nil)
	_ vstage.VertexBuffer = (*Buffer)(nil)
	_ vstage.VertexArray  = (*VertexArray)(nil)
)

// NewDevice creates an empty recording device.
func NewDevice() *Device {
	return &Device{
		commands: make([]Command, 0, 64),
		failures: make(map[CommandType]error),
	}
}

// CreateVertexBuffer implements vstage.Device. The data is copied.
func (d *Device) CreateVertexBuffer(label string, data []byte, usage vstage.UsageHint) (vstage.VertexBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateBuffer); err != nil {
		return nil, err
	}
	b := &Buffer{
		device: d,
		// #nosec G115 -- buffer count is bounded by available memory
		ref:      BufferRef(uint32(len(d.buffers))),
		label:    label,
		usage:    usage,
		contents: append([]byte(nil), data...),
	}
	d.buffers = append(d.buffers, b)
	d.commands = append(d.commands, CreateBufferCommand{
		Buffer: b.ref,
		Label:  label,
		Size:   len(data),
		Usage:  usage,
	})
	return b, nil
}

// CreateVertexArray implements vstage.Device. The descriptor is copied.
func (d *Device) CreateVertexArray(desc *vstage.VertexArrayDescriptor) (vstage.VertexArray, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateVertexArray); err != nil {
		return nil, err
	}
	cp := *desc
	cp.Attributes = append([]vstage.AttributeBinding(nil), desc.Attributes...)
	va := &VertexArray{
		device: d,
		// #nosec G115 -- vertex array count is bounded by available memory
		ref:  VertexArrayRef(uint32(len(d.arrays))),
		desc: cp,
	}
	d.arrays = append(d.arrays, va)
	d.commands = append(d.commands, CreateVertexArrayCommand{
		VertexArray: va.ref,
		Label:       desc.Label,
		Attributes:  len(desc.Attributes),
	})
	return va, nil
}

// FailNext makes the next command of type t fail with err instead of
// executing. Only creation commands and CmdCopy can fail.
func (d *Device) FailNext(t CommandType, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[t] = err
}

func (d *Device) takeFailure(t CommandType) error {
	err, ok := d.failures[t]
	if !ok {
		return nil
	}
	delete(d.failures, t)
	return err
}

// Commands returns a copy of the recorded commands, oldest first.
func (d *Device) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// Count returns the number of recorded commands of type t.
func (d *Device) Count(t CommandType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset clears the command log. Buffers and vertex arrays are kept.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = d.commands[:0]
}

// Buffer returns the buffer with the given reference, or nil.
func (d *Device) Buffer(ref BufferRef) *Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(ref) >= len(d.buffers) {
		return nil
	}
	return d.buffers[ref]
}

// VertexArray returns the vertex array with the given reference, or nil.
func (d *Device) VertexArray(ref VertexArrayRef) *VertexArray {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(ref) >= len(d.arrays) {
		return nil
	}
	return d.arrays[ref]
}

// LiveBuffers returns the number of buffers not yet destroyed.
func (d *Device) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, b := range d.buffers {
		if !b.destroyed {
			n++
		}
	}
	return n
}

// LiveVertexArrays returns the number of vertex arrays not yet destroyed.
func (d *Device) LiveVertexArrays() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, va := range d.arrays {
		if !va.destroyed {
			n++
		}
	}
	return n
}

// Buffer is a host-memory vertex buffer.
type Buffer struct {
	device    *Device
	ref       BufferRef
	label     string
	usage     vstage.UsageHint
	contents  []byte
	destroyed bool
}

// CopyFrom implements vstage.VertexBuffer.
func (b *Buffer) CopyFrom(data []byte, byteOffset int) error {
	d := b.device
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCopy); err != nil {
		return err
	}
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if byteOffset < 0 || byteOffset+len(data) > len(b.contents) {
		return fmt.Errorf("%w: [%d, %d) in %d bytes", ErrOutOfRange, byteOffset, byteOffset+len(data), len(b.contents))
	}
	copy(b.contents[byteOffset:], data)
	d.commands = append(d.commands, CopyCommand{
		Buffer:        b.ref,
		OffsetInBytes: byteOffset,
		Size:          len(data),
	})
	return nil
}

// SizeInBytes implements vstage.VertexBuffer.
func (b *Buffer) SizeInBytes() int { return len(b.contents) }

// Destroy implements vstage.VertexBuffer. Destroying twice is a no-op.
func (b *Buffer) Destroy() {
	d := b.device
	d.mu.Lock()
	defer d.mu.Unlock()
	if b.destroyed {
		return
	}
	b.destroyed = true
	d.commands = append(d.commands, DestroyBufferCommand{Buffer: b.ref})
}

// Ref returns the buffer reference.
func (b *Buffer) Ref() BufferRef { return b.ref }

// Label returns the creation label.
func (b *Buffer) Label() string { return b.label }

// Usage returns the creation usage hint.
func (b *Buffer) Usage() vstage.UsageHint { return b.usage }

// Contents returns a copy of the buffer content.
func (b *Buffer) Contents() []byte {
	b.device.mu.Lock()
	defer b.device.mu.Unlock()
	return append([]byte(nil), b.contents...)
}

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool {
	b.device.mu.Lock()
	defer b.device.mu.Unlock()
	return b.destroyed
}

// VertexArray is a recorded vertex array.
type VertexArray struct {
	device    *Device
	ref       VertexArrayRef
	desc      vstage.VertexArrayDescriptor
	destroyed bool
}

// Destroy implements vstage.VertexArray. Destroying twice is a no-op.
func (va *VertexArray) Destroy() {
	d := va.device
	d.mu.Lock()
	defer d.mu.Unlock()
	if va.destroyed {
		return
	}
	va.destroyed = true
	d.commands = append(d.commands, DestroyVertexArrayCommand{VertexArray: va.ref})
}

// Ref returns the vertex array reference.
func (va *VertexArray) Ref() VertexArrayRef { return va.ref }

// Descriptor returns the creation descriptor.
func (va *VertexArray) Descriptor() vstage.VertexArrayDescriptor { return va.desc }

// Destroyed reports whether Destroy has been called.
func (va *VertexArray) Destroyed() bool {
	va.device.mu.Lock()
	defer va.device.mu.Unlock()
	return va.destroyed
}
