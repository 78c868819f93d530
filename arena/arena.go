// Package arena materializes a computed memory plan into a single
// pre-allocated backing buffer.
//
// The planner decides where each buffer lives; the arena is the region
// those decisions apply to. It allocates one cache-line aligned byte slice
// sized to the plan's high-water mark and hands out per-buffer views at
// the planned offsets. Buffers with disjoint lifetimes deliberately share
// backing bytes, so a view's contents are only meaningful during its
// buffer's live range.
//
// An arena snapshots the plan at construction: registering more buffers
// with the planner afterwards does not change an existing arena. Build a
// new one when the plan changes.
package arena

import (
	"fmt"

	"github.com/sbl8/arenaplan/planner"
)

// Arena is a contiguous memory region holding every planned buffer at its
// fixed offset.
type Arena struct {
	buffer  []byte
	offsets []int
	sizes   []int
}

// New lays out an arena for the plan held by p. sizes must list each
// registered buffer's byte size in registration order; the planner itself
// only answers offset queries, so the caller (which registered the
// buffers) supplies the sizes back.
func New(p planner.MemoryPlanner, sizes []int) (*Arena, error) {
	count := p.GetBufferCount()
	if len(sizes) != count {
		return nil, fmt.Errorf("arena: got %d sizes for %d planned buffers", len(sizes), count)
	}

	total := p.GetMaximumMemorySize()
	a := &Arena{
		buffer:  AlignedBytes(total),
		offsets: make([]int, count),
		sizes:   make([]int, count),
	}
	copy(a.sizes, sizes)

	for i := 0; i < count; i++ {
		offset, err := p.GetOffsetForBuffer(i)
		if err != nil {
			return nil, fmt.Errorf("arena: resolving buffer %d: %w", i, err)
		}
		if offset+sizes[i] > total {
			return nil, fmt.Errorf("arena: buffer %d ends at %d beyond arena size %d", i, offset+sizes[i], total)
		}
		a.offsets[i] = offset
	}
	return a, nil
}

// Buffer returns the view for the buffer registered at index. The view
// aliases the arena; buffers with disjoint lifetimes alias each other.
func (a *Arena) Buffer(index int) ([]byte, error) {
	if index < 0 || index >= len(a.offsets) {
		return nil, fmt.Errorf("arena: buffer index %d is outside range 0 to %d: %w",
			index, len(a.offsets), planner.ErrIndexOutOfRange)
	}
	start := a.offsets[index]
	return a.buffer[start : start+a.sizes[index] : start+a.sizes[index]], nil
}

// Offset returns the byte offset of the buffer registered at index.
func (a *Arena) Offset(index int) (int, error) {
	if index < 0 || index >= len(a.offsets) {
		return 0, fmt.Errorf("arena: buffer index %d is outside range 0 to %d: %w",
			index, len(a.offsets), planner.ErrIndexOutOfRange)
	}
	return a.offsets[index], nil
}

// BufferCount returns the number of planned buffers.
func (a *Arena) BufferCount() int {
	return len(a.offsets)
}

// Size returns the total arena size in bytes, the plan's high-water mark.
func (a *Arena) Size() int {
	return len(a.buffer)
}

// Reset zeroes the entire arena.
func (a *Arena) Reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
}
