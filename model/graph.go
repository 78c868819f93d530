// Package model defines the execution-graph representation that produces
// buffer facts for the planner.
//
// A Graph is a linear schedule of compute nodes over a set of tensors.
// Each node runs at one execution step (its position in Nodes) and names
// the tensors it consumes and produces. From that schedule the package
// derives each tensor's liveness window: the inclusive range of steps
// during which its bytes must stay valid. Those windows, together with the
// tensor byte sizes, are exactly what the planner needs to lay the tensors
// out in a shared arena.
//
// Liveness rules:
//   - A tensor produced by a node is first used at that node's step
//   - A tensor produced by no node is a graph input, live from step 0
//   - A tensor's last use is the step of its final consumer
//   - A tensor listed in Graph.Outputs stays live through the final step
//
// The graph is immutable once built; derive lifetimes and plans as often
// as needed.
package model

import (
	"fmt"

	"github.com/sbl8/arenaplan/planner"
)

// Tensor describes one buffer the graph needs: just its byte size. Its
// identity is its index in Graph.Tensors.
type Tensor struct {
	Name string // optional, for diagnostics
	Size int    // byte count, must be positive
}

// Node is one scheduled compute step. Inputs and Outputs hold tensor
// indices into Graph.Tensors.
type Node struct {
	Name    string // optional, for diagnostics
	Inputs  []int
	Outputs []int
}

// Graph is a complete schedule: nodes execute in slice order, one step
// each. Outputs lists the tensor indices that must survive to the end of
// execution.
type Graph struct {
	Tensors []Tensor
	Nodes   []Node
	Outputs []int
}

// Lifetime is one tensor's inclusive live range in execution steps.
type Lifetime struct {
	FirstTimeUsed int
	LastTimeUsed  int
}

// Validate checks graph consistency: positive tensor sizes, in-range
// tensor references, single assignment (at most one producer per tensor),
// and no tensor that nothing references.
func (g *Graph) Validate() error {
	producer := make([]int, len(g.Tensors))
	for i := range producer {
		producer[i] = -1
	}
	referenced := make([]bool, len(g.Tensors))

	for i, tensor := range g.Tensors {
		if tensor.Size <= 0 {
			return fmt.Errorf("model: tensor %d has non-positive size %d", i, tensor.Size)
		}
	}
	for step, node := range g.Nodes {
		for _, idx := range node.Inputs {
			if idx < 0 || idx >= len(g.Tensors) {
				return fmt.Errorf("model: node %d reads unknown tensor %d", step, idx)
			}
			referenced[idx] = true
		}
		for _, idx := range node.Outputs {
			if idx < 0 || idx >= len(g.Tensors) {
				return fmt.Errorf("model: node %d writes unknown tensor %d", step, idx)
			}
			if producer[idx] != -1 {
				return fmt.Errorf("model: tensor %d produced by both node %d and node %d", idx, producer[idx], step)
			}
			producer[idx] = step
			referenced[idx] = true
		}
	}
	for _, idx := range g.Outputs {
		if idx < 0 || idx >= len(g.Tensors) {
			return fmt.Errorf("model: graph output references unknown tensor %d", idx)
		}
		referenced[idx] = true
	}
	for i, ok := range referenced {
		if !ok {
			return fmt.Errorf("model: tensor %d is referenced by no node", i)
		}
	}
	return nil
}

// Lifetimes derives each tensor's live range from the schedule. The
// result is indexed like Graph.Tensors. Call Validate first; Lifetimes
// assumes a consistent graph.
func (g *Graph) Lifetimes() []Lifetime {
	lifetimes := make([]Lifetime, len(g.Tensors))
	seen := make([]bool, len(g.Tensors))

	touch := func(idx, step int) {
		lt := &lifetimes[idx]
		if !seen[idx] {
			seen[idx] = true
			lt.FirstTimeUsed = step
			lt.LastTimeUsed = step
			return
		}
		if step < lt.FirstTimeUsed {
			lt.FirstTimeUsed = step
		}
		if step > lt.LastTimeUsed {
			lt.LastTimeUsed = step
		}
	}

	producer := make([]bool, len(g.Tensors))
	for step, node := range g.Nodes {
		for _, idx := range node.Outputs {
			touch(idx, step)
			producer[idx] = true
		}
		for _, idx := range node.Inputs {
			touch(idx, step)
		}
	}

	// Graph inputs have no producer: their bytes must be in place before
	// the first step runs.
	for i := range lifetimes {
		if seen[i] && !producer[i] {
			lifetimes[i].FirstTimeUsed = 0
		}
	}

	// Graph outputs must survive to the end of the schedule.
	lastStep := len(g.Nodes) - 1
	if lastStep < 0 {
		lastStep = 0
	}
	for _, idx := range g.Outputs {
		if !seen[idx] {
			seen[idx] = true
			lifetimes[idx] = Lifetime{FirstTimeUsed: 0, LastTimeUsed: lastStep}
			continue
		}
		if lastStep > lifetimes[idx].LastTimeUsed {
			lifetimes[idx].LastTimeUsed = lastStep
		}
	}
	return lifetimes
}

// Sizes returns the tensor byte sizes in index order, the shape arena.New
// expects.
func (g *Graph) Sizes() []int {
	sizes := make([]int, len(g.Tensors))
	for i, tensor := range g.Tensors {
		sizes[i] = tensor.Size
	}
	return sizes
}

// Plan validates the graph and registers every tensor with p in index
// order, so tensor indices double as planner buffer indices.
func (g *Graph) Plan(p planner.MemoryPlanner) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for i, lifetime := range g.Lifetimes() {
		if err := p.AddBuffer(g.Tensors[i].Size, lifetime.FirstTimeUsed, lifetime.LastTimeUsed); err != nil {
			return fmt.Errorf("model: registering tensor %d: %w", i, err)
		}
	}
	return nil
}
