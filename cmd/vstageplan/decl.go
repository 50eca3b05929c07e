// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/vstage"
)

// declaration is the contents of an attribute declaration file.
type declaration struct {
	// Size is the vertex count to plan for when -size is not given.
	Size int `toml:"size" yaml:"size"`

	Attributes []attributeDecl `toml:"attributes" yaml:"attributes"`
}

type attributeDecl struct {
	Name       string        `toml:"name" yaml:"name"`
	Index      *int          `toml:"index" yaml:"index"`
	Components int           `toml:"components" yaml:"components"`
	Datatype   string        `toml:"datatype" yaml:"datatype"`
	Normalize  bool          `toml:"normalize" yaml:"normalize"`
	Purpose    string        `toml:"purpose" yaml:"purpose"`
	Usage      string        `toml:"usage" yaml:"usage"`
	Disabled   bool          `toml:"disabled" yaml:"disabled"`
	External   *externalDecl `toml:"external" yaml:"external"`
}

// externalDecl makes the attribute precreated. The tool allocates a zeroed
// buffer on the device to stand in for the caller-owned one.
type externalDecl struct {
	Offset int `toml:"offset" yaml:"offset"`
	Stride int `toml:"stride" yaml:"stride"`
}

var errDeclaration = errors.New("invalid declaration")

// loadDeclaration reads a declaration file, picking the format by extension.
func loadDeclaration(path string) (*declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := parseDeclaration(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func parseDeclaration(data []byte, ext string) (*declaration, error) {
	var d declaration
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: %w", errDeclaration, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", errDeclaration, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown extension %q", errDeclaration, ext)
	}
	if len(d.Attributes) == 0 {
		return nil, fmt.Errorf("%w: no attributes", errDeclaration)
	}
	if d.Size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", errDeclaration, d.Size)
	}
	return &d, nil
}

// attributes converts the declaration for a stage of size vertices.
// External buffers are created on dev.
func (d *declaration) attributes(dev vstage.Device, size int) ([]vstage.Attribute, error) {
	out := make([]vstage.Attribute, len(d.Attributes))
	for i, ad := range d.Attributes {
		dt, err := vstage.ParseComponentDatatype(ad.Datatype)
		if err != nil {
			releaseExternal(out[:i])
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		usage, err := vstage.ParseUsageHint(ad.Usage)
		if err != nil {
			releaseExternal(out[:i])
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		a := vstage.Attribute{
			Name:                   ad.Name,
			Index:                  vstage.AutoIndex,
			Disabled:               ad.Disabled,
			ComponentsPerAttribute: ad.Components,
			Datatype:               dt,
			Normalize:              ad.Normalize,
			Purpose:                ad.Purpose,
			Usage:                  usage,
		}
		if ad.Index != nil {
			a.Index = *ad.Index
		}
		if ad.External != nil {
			buf, err := externalBuffer(dev, &a, ad.External, size)
			if err != nil {
				releaseExternal(out[:i])
				return nil, fmt.Errorf("attribute %d: %w", i, err)
			}
			a.External = &vstage.ExternalBinding{
				Buffer:        buf,
				OffsetInBytes: ad.External.Offset,
				StrideInBytes: ad.External.Stride,
			}
		}
		out[i] = a
	}
	return out, nil
}

// releaseExternal destroys the external buffers created by attributes.
func releaseExternal(attrs []vstage.Attribute) {
	for _, a := range attrs {
		if a.External != nil && a.External.Buffer != nil {
			a.External.Buffer.Destroy()
		}
	}
}

// externalBuffer allocates a zeroed buffer large enough for size elements.
func externalBuffer(dev vstage.Device, a *vstage.Attribute, ext *externalDecl, size int) (vstage.VertexBuffer, error) {
	if ext.Offset < 0 || ext.Stride < 0 {
		return nil, fmt.Errorf("%w: negative external offset or stride", errDeclaration)
	}
	dt := a.Datatype
	if dt == vstage.DatatypeUnspecified {
		dt = vstage.DatatypeFloat
	}
	elem := a.ComponentsPerAttribute * dt.Size()
	stride := ext.Stride
	if stride == 0 {
		stride = elem
	}
	n := ext.Offset + size*stride
	if n <= 0 {
		n = 4
	}
	return dev.CreateVertexBuffer("external/"+a.Name, make([]byte, n), vstage.UsageStatic)
}
