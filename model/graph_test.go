package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/arenaplan/planner"
)

// A small three-step pipeline: input -> hidden -> activated -> output.
func pipelineGraph() *Graph {
	return &Graph{
		Tensors: []Tensor{
			{Name: "input", Size: 64},
			{Name: "hidden", Size: 128},
			{Name: "activated", Size: 128},
			{Name: "output", Size: 32},
		},
		Nodes: []Node{
			{Name: "dense", Inputs: []int{0}, Outputs: []int{1}},
			{Name: "relu", Inputs: []int{1}, Outputs: []int{2}},
			{Name: "project", Inputs: []int{2}, Outputs: []int{3}},
		},
		Outputs: []int{3},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, pipelineGraph().Validate())
}

func TestValidateRejectsBadGraphs(t *testing.T) {
	t.Parallel()

	g := pipelineGraph()
	g.Tensors[1].Size = 0
	assert.Error(t, g.Validate(), "non-positive tensor size")

	g = pipelineGraph()
	g.Nodes[0].Inputs = []int{9}
	assert.Error(t, g.Validate(), "unknown input tensor")

	g = pipelineGraph()
	g.Nodes[2].Outputs = []int{1}
	assert.Error(t, g.Validate(), "double-produced tensor")

	g = pipelineGraph()
	g.Outputs = []int{-1}
	assert.Error(t, g.Validate(), "unknown graph output")

	g = pipelineGraph()
	g.Tensors = append(g.Tensors, Tensor{Name: "orphan", Size: 8})
	assert.Error(t, g.Validate(), "unreferenced tensor")
}

func TestLifetimes(t *testing.T) {
	t.Parallel()
	lifetimes := pipelineGraph().Lifetimes()
	require.Len(t, lifetimes, 4)

	// input is a graph input: live from step 0 until its only consumer.
	assert.Equal(t, Lifetime{FirstTimeUsed: 0, LastTimeUsed: 0}, lifetimes[0])
	// hidden: produced at step 0, consumed at step 1.
	assert.Equal(t, Lifetime{FirstTimeUsed: 0, LastTimeUsed: 1}, lifetimes[1])
	// activated: produced at step 1, consumed at step 2.
	assert.Equal(t, Lifetime{FirstTimeUsed: 1, LastTimeUsed: 2}, lifetimes[2])
	// output: produced at the final step and kept alive as a graph output.
	assert.Equal(t, Lifetime{FirstTimeUsed: 2, LastTimeUsed: 2}, lifetimes[3])
}

func TestLifetimesOutputExtension(t *testing.T) {
	t.Parallel()
	g := pipelineGraph()
	// Mark the early hidden tensor as a graph output too: it must now
	// survive through the final step.
	g.Outputs = append(g.Outputs, 1)

	lifetimes := g.Lifetimes()
	assert.Equal(t, Lifetime{FirstTimeUsed: 0, LastTimeUsed: 2}, lifetimes[1])
}

func TestPlan(t *testing.T) {
	t.Parallel()
	g := pipelineGraph()
	p := planner.NewGreedyPlanner(16, nil)
	require.NoError(t, g.Plan(p))

	assert.Equal(t, len(g.Tensors), p.GetBufferCount())

	// hidden and activated are both live at step 1 and must not overlap;
	// input dies before activated is born, so they may share space.
	offsets := make([]int, len(g.Tensors))
	for i := range offsets {
		off, err := p.GetOffsetForBuffer(i)
		require.NoError(t, err)
		offsets[i] = off
	}
	hiddenEnd := offsets[1] + g.Tensors[1].Size
	activatedEnd := offsets[2] + g.Tensors[2].Size
	disjoint := hiddenEnd <= offsets[2] || activatedEnd <= offsets[1]
	assert.True(t, disjoint, "hidden %d and activated %d overlap", offsets[1], offsets[2])

	// hidden seeds at 0, activated lands at 128, and output is appended
	// after activated (the greedy scan starts at the first live entry, so
	// the hole left by the dead hidden tensor is not revisited).
	assert.Equal(t, 288, p.GetMaximumMemorySize())
}

func TestPlanInvalidGraph(t *testing.T) {
	t.Parallel()
	g := pipelineGraph()
	g.Tensors[0].Size = -1
	p := planner.NewGreedyPlanner(16, nil)
	assert.Error(t, g.Plan(p))
	assert.Zero(t, p.GetBufferCount(), "invalid graph must register nothing")
}

func TestPlanCapacity(t *testing.T) {
	t.Parallel()
	g := pipelineGraph()
	p := planner.NewGreedyPlanner(2, nil)
	err := g.Plan(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrCapacityExceeded)
}

func TestSizes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{64, 128, 32, 32}, (&Graph{
		Tensors: []Tensor{{Size: 64}, {Size: 128}, {Size: 32}, {Size: 32}},
	}).Sizes())
}
