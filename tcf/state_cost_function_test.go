package tcf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
	"github.com/katalvlaran/costsat/tcf"
)

func newBuilder(t *testing.T) *bdd.Builder {
	t.Helper()
	info, err := task.NewInfo(&task.Task{
		Domains:   []int{4},
		Operators: []task.Operator{{Name: "o", Cost: 1, Eff: []task.Fact{{Var: 0, Value: 3}}}},
		Init:      []int{0},
		Goal:      []task.Fact{{Var: 0, Value: 3}},
	})
	require.NoError(t, err)
	b, err := bdd.New(info)
	require.NoError(t, err)

	return b
}

func TestStateCostFunction_InsertKeepsOrder(t *testing.T) {
	b := newBuilder(t)
	f := tcf.NewStateCostFunction(b)
	f.Insert(cost.Inf, b.Fact(0, 3))
	f.Insert(cost.Finite(5), b.Fact(0, 1))
	f.Insert(cost.Finite(-2), b.Fact(0, 0))
	f.Insert(cost.Finite(5), b.Fact(0, 2))

	require.Equal(t, 3, f.Len())
	var got []cost.Cost
	for _, bk := range f.Buckets() {
		got = append(got, bk.Cost)
	}
	assert.Equal(t, []cost.Cost{cost.Finite(-2), cost.Finite(5), cost.Inf}, got)
	assert.True(t, f.Buckets()[1].States.Equal(b.Var(0, []int{1, 2})))
	assert.Equal(t, cost.Finite(-2), f.Min())
	assert.False(t, f.IsNonNegative())

	c, ok := f.CostOf(task.State{2})
	require.True(t, ok)
	assert.Equal(t, cost.Finite(5), c)

	f.Clear()
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.IsNonNegative())
	assert.Panics(t, func() { f.Min() })
}

func TestStateCostFunction_VerifyCompleteness(t *testing.T) {
	b := newBuilder(t)

	complete := tcf.NewStateCostFunction(b)
	complete.Insert(cost.Finite(1), b.Var(0, []int{0, 1}))
	complete.Insert(cost.Finite(2), b.Var(0, []int{2, 3}))
	require.NoError(t, complete.VerifyCompleteness())

	gap := tcf.NewStateCostFunction(b)
	gap.Insert(cost.Finite(1), b.Var(0, []int{0, 1}))
	require.ErrorIs(t, gap.VerifyCompleteness(), tcf.ErrIncomplete)

	overlap := tcf.NewStateCostFunction(b)
	overlap.Insert(cost.Finite(1), b.Var(0, []int{0, 1}))
	overlap.Insert(cost.Finite(2), b.One())
	require.ErrorIs(t, overlap.VerifyCompleteness(), tcf.ErrOverlappingBuckets)

	empty := tcf.NewStateCostFunction(b)
	empty.Insert(cost.Finite(1), b.One())
	empty.Insert(cost.Finite(2), b.Zero())
	require.ErrorIs(t, empty.VerifyCompleteness(), tcf.ErrEmptyBucket)
}

func TestAbstract(t *testing.T) {
	a := tcf.NewAbstract(2, 3)
	assert.Equal(t, []bool{true, true}, a.SI)
	assert.True(t, a.IsNonNegative())
	assert.Equal(t, 0, a.NumStateDependent())

	a.SD[1] = cost.Inf
	assert.True(t, a.IsNonNegative())
	a.SD[2] = cost.NegInf
	assert.False(t, a.IsNonNegative())
	a.SD[2] = cost.Zero
	a.SICosts[0] = cost.Finite(-1)
	a.SI[1] = false
	assert.False(t, a.IsNonNegative())
	assert.Equal(t, 1, a.NumStateDependent())
}
