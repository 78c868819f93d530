// Package arenaplan computes static memory layouts for pre-allocated
// arenas.
//
// Arenaplan targets environments without dynamic heap allocation, such as
// embedded inference execution, where every buffer's placement must be
// decided once, ahead of time. Given each buffer's size and the execution
// steps during which it is live, the planner assigns fixed byte offsets so
// that buffers live at the same time never overlap, while buffers with
// disjoint lifetimes reuse the same address range. Optimal layout is
// NP-complete, so a fast deterministic greedy heuristic is used instead.
//
// # Package Structure
//
//   - planner: the MemoryPlanner contract, the greedy placement engine,
//     and the ascii layout diagram
//   - arena: materializes a plan into one cache-line aligned buffer with
//     per-buffer views
//   - model: execution graphs whose tensor liveness produces the buffer
//     facts the planner consumes
//   - trace: the text format for recording and replaying planner inputs
//   - cmd/planviz: command-line tool to plan traces and draw layouts
//
// # Basic Usage
//
//	p := planner.NewGreedyPlanner(64, nil)
//	p.AddBuffer(2048, 0, 1) // size, first step, last step
//	p.AddBuffer(4096, 1, 2)
//	p.AddBuffer(1024, 2, 3)
//
//	size := p.GetMaximumMemorySize()
//	offset, err := p.GetOffsetForBuffer(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To hand out real memory at the planned offsets:
//
//	a, err := arena.New(p, []int{2048, 4096, 1024})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, err := a.Buffer(0)
//
// Planning is single-threaded, allocation-free, and O(n²) in the buffer
// count, which is bounded by a capacity fixed at construction.
package arenaplan
