// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"fmt"
	"sort"
	"sync"
)

// DeviceFactory creates a ready-to-use Device.
// Factories are registered via Register and called by OpenDevice.
type DeviceFactory func() (Device, error)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]DeviceFactory)
)

// Register registers a device factory under name.
// Backends call it from init(), following the database/sql driver pattern:
//
//	func init() {
//	    vstage.Register("recording", func() (vstage.Device, error) {
//	        return NewDevice(), nil
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("vstage: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("vstage: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a factory. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// OpenDevice creates a device with the factory registered under name.
func OpenDevice(name string) (Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownDevice, name)
	}
	dev, err := factory()
	if err != nil {
		return nil, fmt.Errorf("vstage: open device %q: %w", name, err)
	}
	return dev, nil
}

// Devices returns the registered names, sorted.
func Devices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
