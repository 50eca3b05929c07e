// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vstage"
)

func init() {
	vstage.Register("noop", func() (vstage.Device, error) {
		d, err := OpenNoop()
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}

// NewDeviceFromProvider creates a Device sharing the GPU device of a host
// application (e.g., gogpu). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider, config DeviceConfig) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	vstage.Logger().Debug("native: using shared GPU device", "surfaceFormat", provider.SurfaceFormat())
	return NewDevice(device, queue, config)
}

// OpenNoop opens a Device on the noop HAL backend, which accepts every call
// without a GPU. Call Close to release it.
func OpenNoop() (*Device, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("native: noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("native: noop backend has no adapter")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open noop adapter: %w", err)
	}
	d, err := NewDevice(openDev.Device, openDev.Queue, DeviceConfig{})
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	d.close = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	vstage.Logger().Info("native: noop device opened")
	return d, nil
}
