// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	// DefaultIndexAddressingWidth is the vertex count addressable by 16-bit
	// unsigned indices.
	DefaultIndexAddressingWidth = 65536

	// DefaultIndicesPerVertex is the index-to-vertex expansion ratio used to
	// derive per-group index counts.
	DefaultIndicesPerVertex = 1.5
)

// Config holds the tunables of a Stage.
type Config struct {
	// IndexAddressingWidth is the maximum number of vertices in one vertex
	// array. Defaults to DefaultIndexAddressingWidth if <= 0.
	IndexAddressingWidth int `toml:"index_addressing_width" yaml:"index_addressing_width"`

	// IndicesPerVertex converts a group's vertex count into its index count.
	// Defaults to DefaultIndicesPerVertex if <= 0.
	IndicesPerVertex float64 `toml:"indices_per_vertex" yaml:"indices_per_vertex"`

	// Label prefixes every GPU object label. Defaults to "vstage-<uuid>".
	Label string `toml:"label" yaml:"label"`
}

// DefaultConfig returns the default configuration with an empty label.
func DefaultConfig() Config {
	return Config{
		IndexAddressingWidth: DefaultIndexAddressingWidth,
		IndicesPerVertex:     DefaultIndicesPerVertex,
	}
}

// withDefaults fills zero numeric fields from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.IndexAddressingWidth <= 0 {
		c.IndexAddressingWidth = DefaultIndexAddressingWidth
	}
	if c.IndicesPerVertex <= 0 {
		c.IndicesPerVertex = DefaultIndicesPerVertex
	}
	return c
}

// Validate reports whether c can drive a Stage as given.
func (c Config) Validate() error {
	if c.IndexAddressingWidth < 1 {
		return fmt.Errorf("%w: index addressing width %d", ErrInvalidConfig, c.IndexAddressingWidth)
	}
	if c.IndicesPerVertex <= 0 || math.IsNaN(c.IndicesPerVertex) || math.IsInf(c.IndicesPerVertex, 0) {
		return fmt.Errorf("%w: indices per vertex %v", ErrInvalidConfig, c.IndicesPerVertex)
	}
	return nil
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over
// DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("vstage: load config: %w", err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("vstage: load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the format named by ext (".toml", ".yaml"
// or ".yml") over DefaultConfig and validates the result. Numeric fields
// set to zero or below take their defaults, as with WithConfig.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, ext)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
