// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package native implements vstage.Device on the Pure Go WebGPU HAL of
// gogpu/wgpu.
//
// Vertex buffers are hal.Buffer objects uploaded through hal.Queue.
// WebGPU has no vertex-array object, so a VertexArray here is the binding
// set a render pass needs: one vertex buffer slot per distinct buffer
// range, with a gputypes.VertexBufferLayout describing its attributes.
package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vstage"
)

// copyAlignment is the WebGPU alignment for queue writes.
const copyAlignment = 4

// DeviceConfig holds configuration for creating a Device.
type DeviceConfig struct {
	// MaxMemoryMB caps the total size of live vertex buffers.
	// Zero means unlimited.
	MaxMemoryMB int
}

// Device implements vstage.Device using gogpu/wgpu/hal directly.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// Resource bookkeeping is protected by a mutex.
type Device struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	memory memoryTracker

	// close releases resources the Device created itself (see OpenNoop).
	close func()
}

// Compile-time interface checks.
var (
	_ vstage.Device       = (*Device)(nil)
	_ vstage.VertexBuffer = (*Buffer)(nil)
	_ vstage.VertexArray  = (*VertexArray)(nil)
)

// NewDevice wraps the given HAL device and queue. The caller keeps
// ownership of both.
func NewDevice(device hal.Device, queue hal.Queue, config DeviceConfig) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	d := &Device{
		device: device,
		queue:  queue,
	}
	if config.MaxMemoryMB > 0 {
		d.memory.budget = uint64(config.MaxMemoryMB) * 1024 * 1024
	}
	return d, nil
}

// HalDevice returns the underlying HAL device.
func (d *Device) HalDevice() hal.Device { return d.device }

// HalQueue returns the underlying HAL queue.
func (d *Device) HalQueue() hal.Queue { return d.queue }

// Stats returns current memory statistics.
func (d *Device) Stats() MemoryStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memory.stats()
}

// Close releases a device opened by OpenNoop. It is a no-op for devices
// created with NewDevice or NewDeviceFromProvider.
func (d *Device) Close() {
	d.mu.Lock()
	closeFn := d.close
	d.close = nil
	d.mu.Unlock()
	if closeFn != nil {
		closeFn()
	}
}

// CreateVertexBuffer implements vstage.Device.
//
// The HAL buffer is padded to a multiple of 4 bytes; SizeInBytes still
// reports len(data).
func (d *Device) CreateVertexBuffer(label string, data []byte, usage vstage.UsageHint) (vstage.VertexBuffer, error) {
	size := alignUp(len(data), copyAlignment)
	if size == 0 {
		size = copyAlignment
	}

	d.mu.Lock()
	err := d.memory.reserve(uint64(size))
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: usage.BufferUsage(),
	})
	if err != nil {
		d.mu.Lock()
		d.memory.release(uint64(size))
		d.mu.Unlock()
		return nil, fmt.Errorf("native: create buffer %q: %w", label, err)
	}

	b := &Buffer{
		device: d,
		buf:    buf,
		size:   len(data),
		shadow: make([]byte, size),
	}
	copy(b.shadow, data)
	if len(data) > 0 {
		d.queue.WriteBuffer(buf, 0, b.shadow)
	}
	vstage.Logger().Debug("native: vertex buffer created", "label", label, "size", len(data), "usage", usage)
	return b, nil
}

// CreateVertexArray implements vstage.Device. It resolves every enabled
// binding to a HAL buffer slot and vertex format.
func (d *Device) CreateVertexArray(desc *vstage.VertexArrayDescriptor) (vstage.VertexArray, error) {
	slots, err := buildSlots(desc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("native: vertex array %q: %w", desc.Label, err)
	}
	va := &VertexArray{
		label: desc.Label,
		slots: slots,
	}
	if ib, ok := desc.IndexBuffer.(hal.Buffer); ok {
		va.index = ib
	}
	return va, nil
}

// Buffer is a HAL vertex buffer with a host shadow copy.
//
// The shadow lets CopyFrom widen unaligned writes to the 4-byte alignment
// WebGPU requires without reading back from the GPU.
type Buffer struct {
	device    *Device
	buf       hal.Buffer
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

	start := byteOffset &^ (copyAlignment - 1)
	end := alignUp(byteOffset+len(data), copyAlignment)
	b.device.queue.WriteBuffer(b.buf, uint64(start), b.shadow[start:end])
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
	d := b.device
	d.device.DestroyBuffer(b.buf)
	d.mu.Lock()
	d.memory.release(uint64(len(b.shadow)))
	d.mu.Unlock()
	b.shadow = nil
}

// HalBuffer returns the underlying HAL buffer.
func (b *Buffer) HalBuffer() hal.Buffer { return b.buf }

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// vertexFormat resolves the WebGPU format of a binding.
func vertexFormat(a *vstage.AttributeBinding) (gputypes.VertexFormat, error) {
	f, ok := a.Datatype.VertexFormat(a.ComponentsPerAttribute, a.Normalize)
	if !ok {
		return f, fmt.Errorf("%w: %d×%v normalize=%v at location %d",
			ErrUnsupportedFormat, a.ComponentsPerAttribute, a.Datatype, a.Normalize, a.Index)
	}
	return f, nil
}
