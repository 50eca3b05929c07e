// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestUsageHint(t *testing.T) {
	tests := []struct {
		u     UsageHint
		name  string
		valid bool
	}{
		{UsageUnspecified, "unspecified", false},
		{UsageStatic, "static", true},
		{UsageDynamic, "dynamic", true},
		{UsageStream, "stream", true},
		{UsageHint(9), "UsageHint(9)", false},
	}
	for _, tt := range tests {
		if got := tt.u.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.u.Valid(); got != tt.valid {
			t.Errorf("%v.Valid() = %v, want %v", tt.u, got, tt.valid)
		}
	}
}

func TestParseUsageHint(t *testing.T) {
	for _, u := range []UsageHint{UsageStatic, UsageDynamic, UsageStream} {
		got, err := ParseUsageHint(u.Key())
		if err != nil || got != u {
			t.Errorf("ParseUsageHint(%q) = %v, %v; want %v", u.Key(), got, err, u)
		}
	}
	if got, err := ParseUsageHint(""); err != nil || got != UsageUnspecified {
		t.Errorf("ParseUsageHint(\"\") = %v, %v", got, err)
	}
	if _, err := ParseUsageHint("unspecified"); !errors.Is(err, ErrInvalidUsage) {
		t.Errorf("ParseUsageHint(unspecified) error = %v, want ErrInvalidUsage", err)
	}
}

func TestBufferUsage(t *testing.T) {
	base := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	if got := UsageStatic.BufferUsage(); got != base {
		t.Errorf("UsageStatic.BufferUsage() = %v, want %v", got, base)
	}
	if got := UsageStream.BufferUsage(); got&gputypes.BufferUsageCopySrc == 0 {
		t.Errorf("UsageStream.BufferUsage() = %v, want CopySrc set", got)
	}
}
