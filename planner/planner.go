// Package planner computes static memory layouts for short-lived buffers
// whose lifetimes are known ahead of time.
//
// Given each buffer's byte size and the inclusive range of execution steps
// during which it must remain valid, the planner assigns every buffer a
// fixed byte offset inside a single arena such that no two buffers that are
// live at the same time overlap in address space. Buffers with disjoint
// lifetimes may share the same address range, which is what keeps the arena
// small.
//
// Key properties:
//   - All working storage is preallocated at a fixed capacity chosen at
//     construction; planning performs no heap allocation
//   - The plan is recomputed lazily, only when buffers were added since the
//     last computation
//   - Placement is deterministic: identical registrations always produce
//     identical offsets
//
// Finding the smallest possible layout is NP-complete, so the concrete
// GreedyPlanner trades optimality for a fast O(n²) heuristic that works
// well for the modest buffer counts of embedded inference graphs.
package planner

import "errors"

// Sentinel errors returned by planner operations.
var (
	// ErrCapacityExceeded is returned by AddBuffer when the planner's fixed
	// buffer capacity is exhausted. Previously registered buffers remain
	// valid and queryable.
	ErrCapacityExceeded = errors.New("planner: buffer capacity exceeded")

	// ErrIndexOutOfRange is returned by GetOffsetForBuffer for an index
	// outside [0, GetBufferCount()).
	ErrIndexOutOfRange = errors.New("planner: buffer index out of range")
)

// Reporter is the diagnostic sink consumed when the planner detects a
// recoverable usage error. It is fire-and-forget: reporting never alters
// control flow beyond the immediate error return.
type Reporter interface {
	Report(format string, args ...any)
}

// MemoryPlanner is the contract for arranging buffers inside a memory
// arena. GreedyPlanner is the only conforming implementation today; the
// interface leaves room for alternative strategies (e.g. optimal but
// slower) without changing the caller contract.
type MemoryPlanner interface {
	// AddBuffer records a buffer that needs size bytes of arena space and
	// must stay valid from firstTimeUsed through lastTimeUsed inclusive.
	// It invalidates any previously computed plan.
	AddBuffer(size, firstTimeUsed, lastTimeUsed int) error

	// GetBufferCount returns the number of buffers registered so far.
	GetBufferCount() int

	// GetMaximumMemorySize returns the high-water mark of the computed
	// plan: the minimum arena size that holds every buffer at its assigned
	// offset. Zero registered buffers yield zero.
	GetMaximumMemorySize() int

	// GetOffsetForBuffer returns the resolved arena offset of the buffer
	// identified by its registration order.
	GetOffsetForBuffer(bufferIndex int) (int, error)
}
