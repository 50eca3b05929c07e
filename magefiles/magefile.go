// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified.
var Default = Test

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the test suite with the race detector.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// NoGPU runs the tests that do not need a GPU backend.
func NoGPU() error {
	return sh.RunV("go", "test", "-tags", "nogpu", ".", "./internal/...", "./recording/...", "./wgsl/...")
}

type Plan mg.Namespace

// Example plans the worked example declaration and prints its shaders.
func (Plan) Example() error {
	fmt.Println("Planning testdata/points.toml...")
	return sh.RunV("go", "run", "./cmd/vstageplan", "-wgsl", "testdata/points.toml")
}

// Watch re-plans the given declaration file on every save.
func (Plan) Watch(path string) error {
	return sh.RunV("go", "run", "./cmd/vstageplan", "-watch", "-v", path)
}
