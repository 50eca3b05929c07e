// Package vstage stages per-vertex attribute data on the CPU and lays it out
// in interleaved GPU vertex buffers.
//
// # Overview
//
// A Stage takes a list of attribute declarations, plans one interleaved
// buffer per purpose and usage hint, and hands out a Writer per attribute.
// Commit uploads what changed and builds the vertex arrays a renderer draws
// with, split so no array addresses more vertices than a 16-bit index can.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vstage"
//	    "github.com/gogpu/vstage/backend/native"
//	)
//
//	dev, err := native.NewDevice(halDevice, halQueue, native.DeviceConfig{})
//	if err != nil {
//	    return err
//	}
//	s, err := vstage.New(dev, []vstage.Attribute{
//	    {Name: "position", Index: 0, ComponentsPerAttribute: 3},
//	    {Name: "color", Index: 1, ComponentsPerAttribute: 4,
//	        Datatype: vstage.DatatypeUnsignedByte, Normalize: true},
//	}, vstage.WithInitialSize(4))
//
//	pos := s.Writer(vstage.PurposeAll, 0)
//	pos.Write3(0, -1, -1, 0)
//
//	if _, err := s.Commit(indexBuffer); err != nil {
//	    return err
//	}
//	for _, g := range s.VertexArrays(vstage.PurposeAll) {
//	    // draw g.VertexArray with g.IndicesCount indices
//	}
//
// # Layout
//
// Attributes are bucketed by purpose, then by usage hint. Inside a bucket
// they are sorted by descending component size and packed; the record
// stride is padded to a multiple of the widest component. Attributes with
// an ExternalBinding are not staged and appear unchanged in every vertex
// array.
//
// # Purposes
//
// Attributes with purpose "all" are shared: they are bound into the vertex
// arrays of every purpose. Each other purpose adds its own attributes.
//
// # Backends
//
//   - backend/native: pure Go WebGPU HAL (gogpu/wgpu)
//   - backend/webgpu: wgpu-native through cogentcore/webgpu
//   - recording: in-memory device for tests and tools
//
// Backends register themselves by name, so tools can pick one at run time:
//
//	import _ "github.com/gogpu/vstage/recording"
//
//	dev, err := vstage.OpenDevice("recording")
//
// # Shaders
//
// Package wgsl generates the WGSL vertex input struct matching a purpose's
// attributes; Stage.PurposeAttributes lists them in binding order.
package vstage

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
