package scp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/scp"
	"github.com/katalvlaran/costsat/task"
)

func TestCostPartitioningHeuristic(t *testing.T) {
	cp := scp.NewCostPartitioningHeuristic()
	cp.AddHValues(0, cost.Finites(0, 0, 0))
	cp.AddHValues(1, []cost.Cost{cost.Finite(2), cost.Inf, cost.Zero})
	cp.AddHValues(2, cost.Finites(5, 1))

	assert.Equal(t, 2, cp.NumLookupTables(), "all-zero distances are dropped")
	assert.Equal(t, 5, cp.NumHeuristicValues())
	assert.Nil(t, cp.HValues(0))

	assert.Equal(t, cost.Finite(7), cp.Value([]int{2, 0, 0}))
	assert.Equal(t, cost.Finite(1), cp.Value([]int{0, 2, 1}))
	assert.Equal(t, cost.Inf, cp.Value([]int{0, 1, 0}))

	other := scp.NewCostPartitioningHeuristic()
	other.AddHValues(2, cost.Finites(1, 1))
	other.AddHValues(3, cost.Finites(3))
	cp.Add(other)

	assert.Equal(t, cost.Finites(6, 2), cp.HValues(2))
	assert.Equal(t, cost.Finites(3), cp.HValues(3))
	assert.Equal(t, cost.Finite(11), cp.Value([]int{0, 0, 0, 0}))

	// Merged tables are copies.
	other.HValues(3)[0] = cost.Finite(9)
	assert.Equal(t, cost.Finites(3), cp.HValues(3))
}

type firstValue struct{}

func (firstValue) AbstractStateID(s task.State) int { return s[0] }

func TestHeuristicMax(t *testing.T) {
	a := scp.NewCostPartitioningHeuristic()
	a.AddHValues(0, cost.Finites(4, 1, 0))
	b := scp.NewCostPartitioningHeuristic()
	b.AddHValues(0, []cost.Cost{cost.Finite(2), cost.Finite(3), cost.Inf})

	h := scp.NewHeuristic([]abstraction.Function{firstValue{}}, []*scp.CostPartitioningHeuristic{a, b})
	assert.Equal(t, 2, h.NumCostPartitionings())
	assert.Equal(t, []int{1}, h.AbstractStateIDs(task.State{1, 0}))
	assert.Equal(t, cost.Finite(4), h.Evaluate(task.State{0}))
	assert.Equal(t, cost.Finite(3), h.Evaluate(task.State{1}))
	assert.True(t, h.IsDeadEnd(task.State{2}))
	assert.False(t, h.IsDeadEnd(task.State{0}))
}
