package planner

// DefaultCapacity is the buffer capacity used when NewGreedyPlanner is
// given a non-positive one. Embedded inference graphs rarely come close to
// this many live tensors.
const DefaultCapacity = 1024

// bufferRequirements records the client-provided facts about one buffer.
type bufferRequirements struct {
	size          int
	firstTimeUsed int
	lastTimeUsed  int
}

// listEntry is one node of the offset-ordered list of placed buffers.
// Entries live in a flat preallocated slice and link to each other by
// index; -1 marks the end of the list.
type listEntry struct {
	offset            int
	requirementsIndex int
	nextEntryIndex    int
}

const noEntry = -1

// GreedyPlanner arranges buffers with a greedy heuristic that keeps the
// overall arena small.
//
// The algorithm works like this:
//   - The client enters buffer facts through AddBuffer
//   - Any query triggers calculateOffsetsIfNeeded, which recomputes the
//     plan only if buffers were added since the last computation
//   - Buffers are sorted in descending order of size; equal sizes keep
//     their registration order (the documented tie-break, which makes the
//     plan reproducible)
//   - The largest buffer is placed at offset zero
//   - Each remaining buffer, largest to smallest, is placed in the first
//     gap between already-placed buffers that are live during its lifetime
//     and large enough to hold it; failing that, after the last such
//     buffer; failing that, at offset zero
//
// Placing large buffers first minimizes fragmentation: small buffers are
// far more likely to fit into whatever gaps remain. The result is not
// guaranteed minimal (that problem is NP-complete) but is decent in
// practice.
//
// GreedyPlanner is not safe for concurrent use. All storage is allocated
// once at construction; planning itself allocates nothing.
type GreedyPlanner struct {
	reporter Reporter

	requirements []bufferRequirements
	bufferCount  int

	// Working storage for the layout pass.
	sortedSizes   []int
	sortedIDs     []int
	entries       []listEntry
	nextFreeEntry int

	// Outcome of the plan: arena offset per original buffer index.
	offsets []int

	needsCalculation bool
}

var _ MemoryPlanner = (*GreedyPlanner)(nil)

// NewGreedyPlanner creates a planner that can hold up to capacity buffers.
// A non-positive capacity falls back to DefaultCapacity. A nil reporter
// discards diagnostics.
func NewGreedyPlanner(capacity int, reporter Reporter) *GreedyPlanner {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if reporter == nil {
		reporter = Discard
	}
	return &GreedyPlanner{
		reporter:         reporter,
		requirements:     make([]bufferRequirements, capacity),
		sortedSizes:      make([]int, capacity),
		sortedIDs:        make([]int, capacity),
		entries:          make([]listEntry, capacity),
		offsets:          make([]int, capacity),
		needsCalculation: true,
	}
}

// Capacity returns the fixed maximum number of buffers.
func (g *GreedyPlanner) Capacity() int {
	return len(g.requirements)
}

// AddBuffer records a buffer of size bytes live during the inclusive step
// range [firstTimeUsed, lastTimeUsed]. The buffer's index, for later
// offset queries, is its registration order.
func (g *GreedyPlanner) AddBuffer(size, firstTimeUsed, lastTimeUsed int) error {
	if g.bufferCount >= len(g.requirements) {
		g.reporter.Report("too many buffers (max is %d)", len(g.requirements))
		return ErrCapacityExceeded
	}
	g.requirements[g.bufferCount] = bufferRequirements{
		size:          size,
		firstTimeUsed: firstTimeUsed,
		lastTimeUsed:  lastTimeUsed,
	}
	g.bufferCount++
	g.needsCalculation = true
	return nil
}

// GetBufferCount returns how many buffers have been recorded.
func (g *GreedyPlanner) GetBufferCount() int {
	return g.bufferCount
}

// GetMaximumMemorySize returns the high-water mark of used memory: the
// minimum arena size that holds every buffer at its planned offset.
func (g *GreedyPlanner) GetMaximumMemorySize() int {
	g.calculateOffsetsIfNeeded()
	if g.bufferCount == 0 {
		return 0
	}
	maxSize := 0
	for index := 0; index != noEntry; index = g.entries[index].nextEntryIndex {
		entry := &g.entries[index]
		end := entry.offset + g.requirements[entry.requirementsIndex].size
		if end > maxSize {
			maxSize = end
		}
	}
	return maxSize
}

// GetOffsetForBuffer returns where the buffer registered at bufferIndex
// should be placed in the arena.
func (g *GreedyPlanner) GetOffsetForBuffer(bufferIndex int) (int, error) {
	if bufferIndex < 0 || bufferIndex >= g.bufferCount {
		g.reporter.Report("buffer index %d is outside range 0 to %d", bufferIndex, g.bufferCount)
		return 0, ErrIndexOutOfRange
	}
	g.calculateOffsetsIfNeeded()
	return g.offsets[bufferIndex], nil
}

// doesEntryOverlapInTime reports whether the placed buffer behind entry is
// live at any point of the inclusive range [firstTimeUsed, lastTimeUsed].
func (g *GreedyPlanner) doesEntryOverlapInTime(entry *listEntry, firstTimeUsed, lastTimeUsed int) bool {
	placed := &g.requirements[entry.requirementsIndex]
	if placed.firstTimeUsed > lastTimeUsed {
		return false
	}
	if firstTimeUsed > placed.lastTimeUsed {
		return false
	}
	return true
}

// nextValidEntry walks the offset-ordered list from the entry after start
// and returns the index of the next entry live during the given time
// range, or noEntry if there are none. A start of noEntry yields noEntry.
func (g *GreedyPlanner) nextValidEntry(start, firstTimeUsed, lastTimeUsed int) int {
	if start == noEntry {
		return noEntry
	}
	for index := g.entries[start].nextEntryIndex; index != noEntry; index = g.entries[index].nextEntryIndex {
		if g.doesEntryOverlapInTime(&g.entries[index], firstTimeUsed, lastTimeUsed) {
			return index
		}
	}
	return noEntry
}

// sortBySizeDescending orders the parallel sortedSizes/sortedIDs arrays by
// descending size. The insertion sort is stable, so buffers of equal size
// keep their registration order; this is the tie-break that makes plans
// reproducible run to run. Quadratic, like the rest of the layout pass,
// which is fine for the bounded buffer counts this planner targets.
func (g *GreedyPlanner) sortBySizeDescending() {
	sizes, ids := g.sortedSizes, g.sortedIDs
	for i := 1; i < g.bufferCount; i++ {
		size, id := sizes[i], ids[i]
		j := i - 1
		for j >= 0 && sizes[j] < size {
			sizes[j+1], ids[j+1] = sizes[j], ids[j]
			j--
		}
		sizes[j+1], ids[j+1] = size, id
	}
}

// calculateOffsetsIfNeeded computes a fresh plan if the current one is
// stale. Repeated queries without intervening AddBuffer calls reuse the
// previous result untouched.
func (g *GreedyPlanner) calculateOffsetsIfNeeded() {
	if !g.needsCalculation || g.bufferCount == 0 {
		return
	}
	g.needsCalculation = false

	for i := 0; i < g.bufferCount; i++ {
		g.sortedSizes[i] = g.requirements[i].size
		g.sortedIDs[i] = i
	}
	g.sortBySizeDescending()

	// Seed the offset-ordered list with the largest buffer at offset zero.
	first := &g.entries[0]
	first.offset = 0
	first.requirementsIndex = g.sortedIDs[0]
	first.nextEntryIndex = noEntry
	g.nextFreeEntry = 1
	g.offsets[g.sortedIDs[0]] = 0

	for i := 1; i < g.bufferCount; i++ {
		bufferID := g.sortedIDs[i]
		wanted := &g.requirements[bufferID]

		// Find the first placed buffer live during our time range.
		// Buffers inactive during it are transparent: their address
		// ranges may legally coincide with ours.
		candidate := noEntry
		if g.doesEntryOverlapInTime(&g.entries[0], wanted.firstTimeUsed, wanted.lastTimeUsed) {
			candidate = 0
		} else {
			candidate = g.nextValidEntry(0, wanted.firstTimeUsed, wanted.lastTimeUsed)
		}

		// Scan the live placed buffers in offset order for the first gap
		// big enough to hold us.
		for {
			next := g.nextValidEntry(candidate, wanted.firstTimeUsed, wanted.lastTimeUsed)
			if next == noEntry {
				// End of the list; appending here always works.
				break
			}
			candidateEnd := g.entries[candidate].offset + g.requirements[g.entries[candidate].requirementsIndex].size
			if g.entries[next].offset-candidateEnd >= wanted.size {
				// The gap before next is big enough, use it.
				break
			}
			candidate = next
		}

		// Either a usable gap was found (possibly at the end of the list),
		// or no placed buffer is live during our time range and offset
		// zero is free.
		offset := 0
		if candidate != noEntry {
			candidateEntry := &g.entries[candidate]
			offset = candidateEntry.offset + g.requirements[candidateEntry.requirementsIndex].size
		}
		g.offsets[bufferID] = offset

		// Splice the new placement into the offset-ordered list so later
		// buffers fit around it.
		newIndex := g.nextFreeEntry
		g.nextFreeEntry++
		g.entries[newIndex] = listEntry{
			offset:            offset,
			requirementsIndex: bufferID,
			nextEntryIndex:    noEntry,
		}
		for current := 0; ; {
			nextIndex := g.entries[current].nextEntryIndex
			if nextIndex == noEntry {
				g.entries[current].nextEntryIndex = newIndex
				break
			}
			if g.entries[nextIndex].offset > offset {
				g.entries[newIndex].nextEntryIndex = nextIndex
				g.entries[current].nextEntryIndex = newIndex
				break
			}
			current = nextIndex
		}
	}
}
