// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry(t *testing.T) {
	const name = "registry-test"
	t.Cleanup(func() { Unregister(name) })

	Register(name, func() (Device, error) { return &fakeDevice{}, nil })
	if !IsRegistered(name) {
		t.Fatalf("IsRegistered(%q) = false after Register", name)
	}
	if !slices.Contains(Devices(), name) {
		t.Errorf("Devices() = %v, missing %q", Devices(), name)
	}

	dev, err := OpenDevice(name)
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	if _, ok := dev.(*fakeDevice); !ok {
		t.Errorf("OpenDevice() = %T, want *fakeDevice", dev)
	}

	Unregister(name)
	if _, err := OpenDevice(name); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("OpenDevice() after Unregister error = %v, want ErrUnknownDevice", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	const name = "registry-dup"
	t.Cleanup(func() { Unregister(name) })

	mustPanic := func(what string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", what)
			}
		}()
		f()
	}
	mustPanic("nil factory", func() { Register(name, nil) })

	Register(name, func() (Device, error) { return &fakeDevice{}, nil })
	mustPanic("duplicate", func() {
		Register(name, func() (Device, error) { return &fakeDevice{}, nil })
	})
}

func TestOpenDeviceFactoryError(t *testing.T) {
	const name = "registry-err"
	t.Cleanup(func() { Unregister(name) })

	boom := errors.New("no adapter")
	Register(name, func() (Device, error) { return nil, boom })
	if _, err := OpenDevice(name); !errors.Is(err, boom) {
		t.Errorf("OpenDevice() error = %v, want %v", err, boom)
	}
}
