// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import "github.com/google/uuid"

// Option configures a Stage during creation.
//
// Example:
//
//	s, err := vstage.New(dev, attrs,
//	    vstage.WithInitialSize(1024),
//	    vstage.WithIndexAddressingWidth(1<<32-1),
//	)
type Option func(*options)

// options holds optional configuration for Stage creation.
type options struct {
	initialSize int
	config      Config
}

// defaultOptions returns the default stage options.
func defaultOptions() options {
	return options{
		initialSize: 0,
		config:      DefaultConfig(),
	}
}

// resolve returns the effective config, generating a label when none is set.
func (o *options) resolve() (Config, error) {
	cfg := o.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Label == "" {
		cfg.Label = "vstage-" + uuid.NewString()
	}
	return cfg, nil
}

// WithInitialSize sets the initial vertex capacity. Default 0.
func WithInitialSize(n int) Option {
	return func(o *options) {
		o.initialSize = n
	}
}

// WithConfig replaces the whole configuration, for example one returned by
// LoadConfig. Zero numeric fields take their defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithIndexAddressingWidth sets the maximum vertex count of one vertex array.
// Use 65536 for 16-bit indices.
func WithIndexAddressingWidth(w int) Option {
	return func(o *options) {
		o.config.IndexAddressingWidth = w
	}
}

// WithIndicesPerVertex sets the ratio used to derive index counts.
func WithIndicesPerVertex(r float64) Option {
	return func(o *options) {
		o.config.IndicesPerVertex = r
	}
}

// WithLabel sets the debug label prefix for every GPU object.
func WithLabel(label string) Option {
	return func(o *options) {
		o.config.Label = label
	}
}
