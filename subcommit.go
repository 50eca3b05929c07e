// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vstage

import "fmt"

// SubCommit uploads vertices [offset, offset+length) of every dirty buffer
// into its existing GPU buffer.
//
// It never grows a GPU buffer, never rebuilds vertex arrays and never clears
// the dirty flag; call EndSubCommits once a batch is complete. Every dirty
// buffer must already own a large enough GPU buffer from a prior Commit,
// otherwise ErrNotCommitted is returned and nothing is uploaded.
func (s *Stage) SubCommit(offset, length int) error {
	if offset < 0 || offset >= s.size || length < 0 || offset+length > s.size {
		return fmt.Errorf("%w: sub-commit range [%d, %d+%d) outside [0, %d)",
			ErrInvalidArgument, offset, offset, length, s.size)
	}

	end := offset + length
	for _, b := range s.buffers {
		if !b.needsCommit || b.stride == 0 {
			continue
		}
		if b.gpu == nil || b.gpu.SizeInBytes() < end*b.stride {
			return fmt.Errorf("%w: %s/%s", ErrNotCommitted, b.purpose, b.usage)
		}
	}

	for _, b := range s.buffers {
		if !b.needsCommit || b.stride == 0 {
			continue
		}
		if err := b.gpu.CopyFrom(b.block.Range(offset, length), offset*b.stride); err != nil {
			return fmt.Errorf("vstage: sub-commit %s/%s: %w", b.purpose, b.usage, err)
		}
	}
	return nil
}

// EndSubCommits marks every buffer as committed without uploading.
func (s *Stage) EndSubCommits() {
	for _, b := range s.buffers {
		b.needsCommit = false
	}
}
