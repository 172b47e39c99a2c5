package projection_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/projection"
	"github.com/katalvlaran/costsat/task"
)

// setup builds a two-variable task:
//
//	v0 ∈ {0,1,2}, v1 ∈ {0,1}; init (0,0); goal v0=2 ∧ v1=1
//	o0: v0=0 → v0=1 (2)   o1: v0=1 → v0=2 (3)
//	o2: v1=0 → v1=1 (1)   o3: v0=0 ∧ v1=1 → v0=2 (4)
func setup(t *testing.T) (*task.Info, *bdd.Builder) {
	t.Helper()
	info, err := task.NewInfo(&task.Task{
		Domains: []int{3, 2},
		Operators: []task.Operator{
			{Name: "o0", Cost: 2, Pre: []task.Fact{{Var: 0, Value: 0}}, Eff: []task.Fact{{Var: 0, Value: 1}}},
			{Name: "o1", Cost: 3, Pre: []task.Fact{{Var: 0, Value: 1}}, Eff: []task.Fact{{Var: 0, Value: 2}}},
			{Name: "o2", Cost: 1, Pre: []task.Fact{{Var: 1, Value: 0}}, Eff: []task.Fact{{Var: 1, Value: 1}}},
			{Name: "o3", Cost: 4, Pre: []task.Fact{{Var: 0, Value: 0}, {Var: 1, Value: 1}}, Eff: []task.Fact{{Var: 0, Value: 2}}},
		},
		Init: []int{0, 0},
		Goal: []task.Fact{{Var: 0, Value: 2}, {Var: 1, Value: 1}},
	})
	require.NoError(t, err)
	b, err := bdd.New(info)
	require.NoError(t, err)

	return info, b
}

func TestNew_Validation(t *testing.T) {
	info, b := setup(t)

	_, err := projection.New(nil, b, []int{0})
	require.ErrorIs(t, err, projection.ErrNilInfo)
	_, err = projection.New(info, nil, []int{0})
	require.ErrorIs(t, err, projection.ErrNilBuilder)
	_, err = projection.New(info, b, nil)
	require.ErrorIs(t, err, projection.ErrEmptyPattern)
	_, err = projection.New(info, b, []int{0, 2})
	require.ErrorIs(t, err, projection.ErrVariableOutOfRange)
	_, err = projection.New(info, b, []int{0, 1}, projection.WithMaxStates(5))
	require.ErrorIs(t, err, projection.ErrTooManyStates)

	_, err = projection.New(info, b, []int{0, 1}, projection.WithMaxStates(6))
	require.NoError(t, err)
}

// Operators that cannot change the pattern only contribute self-loops.
//
//	keep:  v0=1 → v0=1   reset: → v0=0   other: v1=0 → v1=1
func TestProjection_LoopOnlyOperators(t *testing.T) {
	info, err := task.NewInfo(&task.Task{
		Domains: []int{2, 2},
		Operators: []task.Operator{
			{Name: "keep", Cost: 1, Pre: []task.Fact{{Var: 0, Value: 1}}, Eff: []task.Fact{{Var: 0, Value: 1}}},
			{Name: "reset", Cost: 1, Eff: []task.Fact{{Var: 0, Value: 0}}},
			{Name: "other", Cost: 1, Pre: []task.Fact{{Var: 1, Value: 0}}, Eff: []task.Fact{{Var: 1, Value: 1}}},
		},
		Init: []int{1, 0},
		Goal: []task.Fact{{Var: 0, Value: 0}},
	})
	require.NoError(t, err)
	b, err := bdd.New(info)
	require.NoError(t, err)

	p, err := projection.New(info, b, []int{0})
	require.NoError(t, err)

	assert.Equal(t, 1, p.NumTransitions())
	assert.Equal(t, 1, p.NumTransitionsOf(1))
	for op := 0; op < 3; op++ {
		assert.True(t, p.OperatorInducesSelfLoop(op), "op %d", op)
	}
	assert.False(t, p.OperatorIsActive(0))
	assert.True(t, p.OperatorIsActive(1))
	assert.False(t, p.OperatorIsActive(2))

	h, err := p.GoalDistances(cost.Finites(info.OperatorCosts()...))
	require.NoError(t, err)
	assert.Equal(t, cost.Finites(0, 1), h)
}

func TestAtomicProjection(t *testing.T) {
	info, b := setup(t)
	p, err := projection.New(info, b, []int{0})
	require.NoError(t, err)

	assert.Equal(t, 3, p.NumStates())
	assert.Equal(t, 3, p.NumTransitions())
	assert.Equal(t, 0, p.InitialStateID())
	assert.Equal(t, []int{2}, p.GoalStates())

	// o2 never touches v0 and loops everywhere.
	assert.True(t, p.OperatorInducesSelfLoop(2))
	assert.False(t, p.OperatorIsActive(2))
	for _, op := range []int{0, 1, 3} {
		assert.False(t, p.OperatorInducesSelfLoop(op), "op %d", op)
		assert.Equal(t, 1, p.NumTransitionsOf(op), "op %d", op)
	}

	h, err := p.GoalDistances(cost.Finites(info.OperatorCosts()...))
	require.NoError(t, err)
	assert.Equal(t, cost.Finites(4, 3, 0), h)
	assert.Equal(t, cost.Finites(1, 3, 0, 4), p.SaturatedCosts(h))
}

func TestTransitionAndStateSets(t *testing.T) {
	info, b := setup(t)
	p, err := projection.New(info, b, []int{0})
	require.NoError(t, err)

	assert.True(t, p.StateSet(1).Equal(b.Fact(0, 1)))

	var found bool
	p.ForEachTransition(func(tr abstraction.Transition) {
		if tr.Op != 3 {
			return
		}
		found = true
		assert.Equal(t, 0, tr.Src)
		assert.Equal(t, 2, tr.Target)
		want := b.Facts([]task.Fact{{Var: 0, Value: 0}, {Var: 1, Value: 1}})
		assert.True(t, p.TransitionSet(tr).Equal(want))
	})
	assert.True(t, found)
}

func TestPatternHash(t *testing.T) {
	info, b := setup(t)
	p, err := projection.New(info, b, []int{1, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, 6, p.NumStates())
	assert.Equal(t, []int{5}, p.GoalStates())
	assert.Equal(t, 5, p.AbstractStateID(task.State{2, 1}))
	assert.Equal(t, 1, p.AbstractStateID(task.State{1, 0}))

	fn, ok := p.ExtractFunction()
	require.True(t, ok)
	hash, ok := fn.(*projection.Hash)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, hash.Pattern())

	// Full projection: h equals the perfect heuristic.
	h, err := p.GoalDistances(cost.Finites(info.OperatorCosts()...))
	require.NoError(t, err)
	assert.Equal(t, cost.Finite(5), h[0], "o2 then o3")
	assert.Equal(t, cost.Finite(4), h[1], "o2 then o1")
}

func TestGenerator(t *testing.T) {
	info, b := setup(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	abs, err := projection.NewGenerator(projection.WithLogger(logger)).Generate(info, b)
	require.NoError(t, err)
	require.Len(t, abs, 2)
	assert.Equal(t, 3, abs[0].NumStates())
	assert.Equal(t, 2, abs[1].NumStates())
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "projection built", hook.LastEntry().Message)

	abs, err = projection.NewGenerator(projection.WithPatterns([]int{0, 1})).Generate(info, b)
	require.NoError(t, err)
	require.Len(t, abs, 1)
	assert.Equal(t, 6, abs[0].NumStates())

	_, err = projection.NewGenerator(projection.WithPatterns([]int{7})).Generate(info, b)
	require.ErrorIs(t, err, projection.ErrVariableOutOfRange)
}
