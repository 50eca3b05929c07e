// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import "fmt"

// MemoryStats contains vertex buffer memory usage statistics.
type MemoryStats struct {
	// TotalBytes is the memory budget in bytes, or 0 when unlimited.
	TotalBytes uint64

	// UsedBytes is the currently allocated memory in bytes.
	UsedBytes uint64

	// AvailableBytes is the remaining budget, or 0 when unlimited.
	AvailableBytes uint64

	// BufferCount is the number of live vertex buffers.
	BufferCount int

	// PeakBytes is the highest UsedBytes seen.
	PeakBytes uint64

	// Utilization is the fraction of the budget in use (0.0 to 1.0), or 0
	// when unlimited.
	Utilization float64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	if s.TotalBytes == 0 {
		return fmt.Sprintf("Memory[%d KB used, %d buffers, peak %d KB]",
			s.UsedBytes/1024, s.BufferCount, s.PeakBytes/1024)
	}
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d KB, %d buffers, peak %d KB]",
		s.Utilization*100,
		s.UsedBytes/1024,
		s.TotalBytes/1024,
		s.BufferCount,
		s.PeakBytes/1024)
}

// memoryTracker accounts vertex buffer allocations against a budget.
// Callers hold Device.mu.
type memoryTracker struct {
	budget uint64
	used   uint64
	peak   uint64
	count  int
}

func (m *memoryTracker) reserve(size uint64) error {
	if m.budget > 0 && m.used+size > m.budget {
		return fmt.Errorf("%w: %d + %d > %d bytes", ErrMemoryBudgetExceeded, m.used, size, m.budget)
	}
	m.used += size
	m.peak = max(m.peak, m.used)
	m.count++
	return nil
}

func (m *memoryTracker) release(size uint64) {
	m.used -= size
	m.count--
}

func (m *memoryTracker) stats() MemoryStats {
	s := MemoryStats{
		TotalBytes:  m.budget,
		UsedBytes:   m.used,
		BufferCount: m.count,
		PeakBytes:   m.peak,
	}
	if m.budget > 0 {
		s.AvailableBytes = m.budget - m.used
		s.Utilization = float64(m.used) / float64(m.budget)
	}
	return s
}
