// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package webgpu implements vstage.Device on wgpu-native through the
// cogentcore/webgpu bindings.
//
// It mirrors backend/native: vertex buffers keep a host shadow so partial
// updates can be widened to the 4-byte queue write alignment, and a
// VertexArray is the set of vertex buffer slots a render pass binds.
package webgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/vstage"
)

// Errors returned by the webgpu backend.
var (
	// ErrNilDevice is returned when the wgpu device or queue is nil.
	ErrNilDevice = errors.New("webgpu: nil device or queue")

	// ErrBufferDestroyed is returned when writing to a destroyed buffer.
	ErrBufferDestroyed = errors.New("webgpu: buffer destroyed")

	// ErrOutOfRange is returned when a write does not fit the buffer.
	ErrOutOfRange = errors.New("webgpu: write out of range")

	// ErrForeignBuffer is returned when a binding references a buffer
	// that is not backed by a *wgpu.Buffer.
	ErrForeignBuffer = errors.New("webgpu: buffer not created by this backend")

	// ErrUnsupportedFormat is returned for attribute formats WebGPU
	// cannot fetch.
	ErrUnsupportedFormat = errors.New("webgpu: unsupported vertex format")
)

// copyAlignment is COPY_BUFFER_ALIGNMENT.
const copyAlignment = 4

// Device implements vstage.Device over a wgpu-native device and queue.
//
// Thread Safety: Device is safe for concurrent use. Buffers are not.
type Device struct {
	mu      sync.Mutex
	device  *wgpu.Device
	queue   *wgpu.Queue
	buffers int
}

// Compile-time interface checks.
var (
	_ vstage.Device       = (*Device)(nil)
	_ vstage.VertexBuffer = (*Buffer)(nil)
	_ vstage.VertexArray  = (*VertexArray)(nil)
)

// NewDevice wraps a wgpu device and its queue. The caller keeps ownership
// of both.
func NewDevice(device *wgpu.Device, queue *wgpu.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// WGPUDevice returns the wrapped device.
func (d *Device) WGPUDevice() *wgpu.Device { return d.device }

// LiveBuffers returns the number of buffers created and not yet destroyed.
func (d *Device) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffers
}

// CreateVertexBuffer implements vstage.Device.
func (d *Device) CreateVertexBuffer(label string, data []byte, usage vstage.UsageHint) (vstage.VertexBuffer, error) {
	size := alignUp(len(data), copyAlignment)
	if size == 0 {
		size = copyAlignment
	}
	shadow := make([]byte, size)
	copy(shadow, data)

	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: shadow,
		Usage:    bufferUsage(usage),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create buffer %q: %w", label, err)
	}

	d.mu.Lock()
	d.buffers++
	d.mu.Unlock()

	vstage.Logger().Debug("webgpu: vertex buffer created", "label", label, "size", len(data), "usage", usage)
	return &Buffer{device: d, buf: buf, size: len(data), shadow: shadow}, nil
}

// CreateVertexArray implements vstage.Device.
func (d *Device) CreateVertexArray(desc *vstage.VertexArrayDescriptor) (vstage.VertexArray, error) {
	slots, err := buildSlots(desc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("webgpu: vertex array %q: %w", desc.Label, err)
	}
	va := &VertexArray{label: desc.Label, slots: slots}
	if ib, ok := desc.IndexBuffer.(*wgpu.Buffer); ok {
		va.index = ib
	}
	return va, nil
}

// Buffer is a wgpu vertex buffer with a host shadow copy.
type Buffer struct {
	device    *Device
	buf       *wgpu.Buffer
	size      int
	shadow    []byte
	destroyed bool
}

// CopyFrom implements vstage.VertexBuffer.
func (b *Buffer) CopyFrom(data []byte, byteOffset int) error {
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if byteOffset < 0 || byteOffset+len(data) > b.size {
		return fmt.Errorf("%w: [%d, %d) in %d bytes", ErrOutOfRange, byteOffset, byteOffset+len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	copy(b.shadow[byteOffset:], data)

	start, end := alignedRange(byteOffset, len(data))
	if err := b.device.queue.WriteBuffer(b.buf, uint64(start), b.shadow[start:end]); err != nil {
		return fmt.Errorf("webgpu: write buffer: %w", err)
	}
	return nil
}

// SizeInBytes implements vstage.VertexBuffer.
func (b *Buffer) SizeInBytes() int { return b.size }

// Destroy implements vstage.VertexBuffer. Destroying twice is a no-op.
func (b *Buffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.buf.Release()
	b.buf = nil
	b.shadow = nil

	b.device.mu.Lock()
	b.device.buffers--
	b.device.mu.Unlock()
}

// WGPUBuffer returns the underlying buffer, or nil after Destroy.
func (b *Buffer) WGPUBuffer() *wgpu.Buffer { return b.buf }

// bufferUsage returns the buffer usage flags for a hint.
func bufferUsage(u vstage.UsageHint) wgpu.BufferUsage {
	usage := wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	if u == vstage.UsageStream {
		usage |= wgpu.BufferUsageCopySrc
	}
	return usage
}

// alignedRange widens [offset, offset+n) to copyAlignment on both ends.
func alignedRange(offset, n int) (start, end int) {
	start = offset &^ (copyAlignment - 1)
	end = alignUp(offset+n, copyAlignment)
	return start, end
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
