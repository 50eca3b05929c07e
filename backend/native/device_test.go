// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vstage"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func newTestDevice(t *testing.T, config DeviceConfig) *Device {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	d, err := NewDevice(device, queue, config)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	return d
}

func TestNewDeviceNil(t *testing.T) {
	if _, err := NewDevice(nil, nil, DeviceConfig{}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDevice(nil, nil) error = %v, want ErrNilDevice", err)
	}
}

func TestVertexBufferLifecycle(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{})

	vb, err := d.CreateVertexBuffer("test", make([]byte, 10), vstage.UsageStatic)
	if err != nil {
		t.Fatalf("CreateVertexBuffer() error = %v", err)
	}
	if got := vb.SizeInBytes(); got != 10 {
		t.Errorf("SizeInBytes() = %d, want 10", got)
	}
	b := vb.(*Buffer)
	if b.HalBuffer() == nil {
		t.Fatal("HalBuffer() = nil")
	}
	if len(b.shadow) != 12 {
		t.Errorf("shadow length = %d, want 12 (padded)", len(b.shadow))
	}

	if err := vb.CopyFrom([]byte{1, 2, 3}, 5); err != nil {
		t.Errorf("CopyFrom() error = %v", err)
	}
	if b.shadow[5] != 1 || b.shadow[7] != 3 {
		t.Errorf("shadow = %v, want bytes 5..7 = 1 2 3", b.shadow)
	}
	if err := vb.CopyFrom([]byte{1, 2, 3}, 8); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("CopyFrom() past end error = %v, want ErrOutOfRange", err)
	}

	stats := d.Stats()
	if stats.BufferCount != 1 || stats.UsedBytes != 12 {
		t.Errorf("Stats() = %+v, want 1 buffer, 12 bytes", stats)
	}

	vb.Destroy()
	vb.Destroy()
	if err := vb.CopyFrom([]byte{1}, 0); !errors.Is(err, ErrBufferDestroyed) {
		t.Errorf("CopyFrom() after Destroy error = %v, want ErrBufferDestroyed", err)
	}
	stats = d.Stats()
	if stats.BufferCount != 0 || stats.UsedBytes != 0 || stats.PeakBytes != 12 {
		t.Errorf("Stats() after Destroy = %+v", stats)
	}
}

func TestMemoryBudget(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{MaxMemoryMB: 1})

	vb, err := d.CreateVertexBuffer("half", make([]byte, 512*1024), vstage.UsageStatic)
	if err != nil {
		t.Fatalf("CreateVertexBuffer() error = %v", err)
	}
	if _, err := d.CreateVertexBuffer("too much", make([]byte, 600*1024), vstage.UsageStatic); !errors.Is(err, ErrMemoryBudgetExceeded) {
		t.Errorf("CreateVertexBuffer() over budget error = %v, want ErrMemoryBudgetExceeded", err)
	}

	stats := d.Stats()
	if stats.Utilization != 0.5 {
		t.Errorf("Utilization = %v, want 0.5", stats.Utilization)
	}
	if !strings.Contains(stats.String(), "50.0% used") {
		t.Errorf("String() = %q", stats.String())
	}

	vb.Destroy()
	if _, err := d.CreateVertexBuffer("fits now", make([]byte, 600*1024), vstage.UsageStatic); err != nil {
		t.Errorf("CreateVertexBuffer() after release error = %v", err)
	}
}

func TestMemoryStatsUnlimited(t *testing.T) {
	s := memoryTracker{}
	_ = s.reserve(2048)
	if got := s.stats().String(); got != "Memory[2 KB used, 1 buffers, peak 2 KB]" {
		t.Errorf("String() = %q", got)
	}
}

func TestStageOnNoopDevice(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{})

	s, err := vstage.New(d, []vstage.Attribute{
		{Name: "position", Index: 0, ComponentsPerAttribute: 3},
		{Name: "color", Index: 1, ComponentsPerAttribute: 4, Datatype: vstage.DatatypeUnsignedByte, Normalize: true},
		{Name: "pick", Index: 2, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeUnsignedInt, Purpose: "pick"},
	}, vstage.WithInitialSize(10), vstage.WithIndexAddressingWidth(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Writer(vstage.PurposeAll, 0).Write3(9, 1, 2, 3)
	if _, err := s.Commit(nil); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	groups := s.VertexArrays("pick")
	if len(groups) != 2 {
		t.Fatalf("len(VertexArrays(pick)) = %d, want 2", len(groups))
	}
	va := groups[1].VertexArray.(*VertexArray)
	slots := va.Slots()
	if len(slots) != 2 {
		t.Fatalf("len(Slots()) = %d, want 2", len(slots))
	}
	// Shared buffer: stride 16, second chunk starts at vertex 8.
	if slots[0].OffsetInBytes != 8*16 || slots[0].Layout.ArrayStride != 16 {
		t.Errorf("slot 0 = offset %d stride %d, want 128, 16", slots[0].OffsetInBytes, slots[0].Layout.ArrayStride)
	}
	attrs := slots[0].Layout.Attributes
	if len(attrs) != 2 || attrs[0].Format != gputypes.VertexFormatFloat32x3 || attrs[1].Format != gputypes.VertexFormatUnorm8x4 || attrs[1].Offset != 12 {
		t.Errorf("slot 0 attributes = %+v", attrs)
	}
	if got := slots[1].Layout.Attributes[0].Format; got != gputypes.VertexFormatUint32 {
		t.Errorf("slot 1 format = %v, want Uint32", got)
	}
	if len(va.Layouts()) != 2 {
		t.Errorf("len(Layouts()) = %d, want 2", len(va.Layouts()))
	}

	s.Destroy()
	if got := d.Stats().BufferCount; got != 0 {
		t.Errorf("BufferCount after Destroy = %d, want 0", got)
	}
}

func TestCreateVertexArrayErrors(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{})
	vb, err := d.CreateVertexBuffer("", make([]byte, 16), vstage.UsageStatic)
	if err != nil {
		t.Fatalf("CreateVertexBuffer() error = %v", err)
	}

	tests := []struct {
		name    string
		binding vstage.AttributeBinding
		wantErr error
	}{
		{
			name:    "no vertex format",
			binding: vstage.AttributeBinding{Enabled: true, Buffer: vb, ComponentsPerAttribute: 3, Datatype: vstage.DatatypeUnsignedByte},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "double",
			binding: vstage.AttributeBinding{Enabled: true, Buffer: vb, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeDouble},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "foreign buffer",
			binding: vstage.AttributeBinding{Enabled: true, Buffer: foreignBuffer{}, ComponentsPerAttribute: 1, Datatype: vstage.DatatypeFloat},
			wantErr: ErrForeignBuffer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.CreateVertexArray(&vstage.VertexArrayDescriptor{Attributes: []vstage.AttributeBinding{tt.binding}})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateVertexArray() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Disabled bindings are skipped even when unmappable.
	disabled := vstage.AttributeBinding{Buffer: foreignBuffer{}, ComponentsPerAttribute: 3, Datatype: vstage.DatatypeDouble}
	va, err := d.CreateVertexArray(&vstage.VertexArrayDescriptor{Attributes: []vstage.AttributeBinding{disabled}})
	if err != nil {
		t.Fatalf("CreateVertexArray() with disabled binding error = %v", err)
	}
	if len(va.(*VertexArray).Slots()) != 0 {
		t.Error("disabled binding produced a slot")
	}
}

func TestOpenNoopRegistered(t *testing.T) {
	dev, err := vstage.OpenDevice("noop")
	if err != nil {
		t.Fatalf("OpenDevice(noop) error = %v", err)
	}
	d, ok := dev.(*Device)
	if !ok {
		t.Fatalf("OpenDevice(noop) = %T, want *Device", dev)
	}
	d.Close()
	d.Close()
}

type foreignBuffer struct{}

func (foreignBuffer) CopyFrom([]byte, int) error { return nil }
func (foreignBuffer) SizeInBytes() int           { return 0 }
func (foreignBuffer) Destroy()                   {}
