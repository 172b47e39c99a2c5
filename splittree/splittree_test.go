package splittree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/splittree"
	"github.com/katalvlaran/costsat/task"
)

// TreeSuite refines the two-variable task
//
//	v0 ∈ {0,1,2}, v1 ∈ {0,1}; init (0,0); goal v0=2 ∧ v1=1
//	o0: v0=0 → v0=1 (2)   o1: v0=1 → v0=2 (3)
//	o2: v1=0 → v1=1 (1)   o3: v0=0 ∧ v1=1 → v0=2 (4)
//
// into the Cartesian states
//
//	0: {0,1}×{0,1}   1: {2}×{0}   2: {2}×{1}
type TreeSuite struct {
	suite.Suite
	info *task.Info
	b    *bdd.Builder
	tree *splittree.Tree
}

func (s *TreeSuite) SetupTest() {
	var err error
	s.info, err = task.NewInfo(&task.Task{
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
	s.Require().NoError(err)
	s.b, err = bdd.New(s.info)
	s.Require().NoError(err)

	s.tree, err = splittree.NewTree(s.info)
	s.Require().NoError(err)
	id, err := s.tree.Split(0, 0, []int{1, 0}, []int{2})
	s.Require().NoError(err)
	s.Require().Equal(1, id)
	id, err = s.tree.Split(1, 1, []int{0}, []int{1})
	s.Require().NoError(err)
	s.Require().Equal(2, id)
}

func (s *TreeSuite) TestSplitValidation() {
	_, err := s.tree.Split(3, 0, []int{0}, []int{1})
	s.ErrorIs(err, splittree.ErrStateOutOfRange)
	_, err = s.tree.Split(0, 2, []int{0}, []int{1})
	s.ErrorIs(err, splittree.ErrVariableOutOfRange)
	_, err = s.tree.Split(0, 1, nil, []int{0, 1})
	s.ErrorIs(err, splittree.ErrBadSplit)
	_, err = s.tree.Split(0, 1, []int{0, 1}, []int{1})
	s.ErrorIs(err, splittree.ErrBadSplit, "overlap")
	_, err = s.tree.Split(0, 0, []int{0}, []int{2})
	s.ErrorIs(err, splittree.ErrBadSplit, "outside the state's values")
	_, err = s.tree.Split(1, 1, []int{0}, []int{1})
	s.ErrorIs(err, splittree.ErrBadSplit, "already a singleton")
	s.Equal(3, s.tree.NumStates())

	_, err = splittree.NewTree(nil)
	s.ErrorIs(err, splittree.ErrNilInfo)
}

func (s *TreeSuite) TestCartesianSets() {
	s.Equal([]int{0, 1}, s.tree.Values(0, 0))
	s.Equal([]int{0, 1}, s.tree.Values(0, 1))
	s.Equal([]int{2}, s.tree.Values(1, 0))
	s.Equal([]int{0}, s.tree.Values(1, 1))
	s.Equal([]int{1}, s.tree.Values(2, 1))
	s.True(s.tree.Contains(2, 0, 2))
	s.False(s.tree.Contains(2, 1, 0))

	s.Equal(0, s.tree.AbstractStateID(task.State{0, 1}))
	s.Equal(0, s.tree.AbstractStateID(task.State{1, 0}))
	s.Equal(1, s.tree.AbstractStateID(task.State{2, 0}))
	s.Equal(2, s.tree.AbstractStateID(task.State{2, 1}))
}

func (s *TreeSuite) TestAbstraction() {
	abs, err := splittree.New(s.info, s.b, s.tree)
	s.Require().NoError(err)

	s.Equal(3, abs.NumStates())
	s.Equal(0, abs.InitialStateID())
	s.Equal([]int{2}, abs.GoalStates())
	s.Equal(4, abs.NumTransitions())
	s.True(abs.OperatorInducesSelfLoop(0))
	s.True(abs.OperatorInducesSelfLoop(2))
	s.False(abs.OperatorIsActive(0))
	s.Equal(2, abs.NumTransitionsOf(1))

	h, err := abs.GoalDistances(cost.Finites(s.info.OperatorCosts()...))
	s.Require().NoError(err)
	s.Equal(cost.Finites(3, 1, 0), h)
	s.Equal(cost.Finites(0, 3, 1, 3), abs.SaturatedCosts(h))
}

func (s *TreeSuite) TestRegression() {
	abs, err := splittree.New(s.info, s.b, s.tree)
	s.Require().NoError(err)

	want := s.b.Fact(0, 2).And(s.b.Fact(1, 0))
	s.True(abs.StateSet(1).Equal(want))
	s.True(abs.StateSet(0).Equal(s.b.Var(0, []int{0, 1})))

	var checked int
	abs.ForEachTransition(func(tr abstraction.Transition) {
		switch {
		case tr.Op == 1 && tr.Target == 1:
			// v0 is a precondition variable; v1 is fixed by the target.
			s.True(abs.TransitionSet(tr).Equal(s.b.Fact(1, 0)))
			checked++
		case tr.Op == 2:
			// v1 is a precondition variable; v0 keeps the source values.
			s.Equal(1, tr.Src)
			s.True(abs.TransitionSet(tr).Equal(s.b.Fact(0, 2)))
			checked++
		}
	})
	s.Equal(2, checked)
}

func (s *TreeSuite) TestGenerator() {
	other, err := task.NewInfo(&task.Task{Domains: []int{2}, Init: []int{0}})
	s.Require().NoError(err)
	foreign, err := splittree.NewTree(other)
	s.Require().NoError(err)

	abs, err := splittree.NewGenerator(nil, s.tree).Generate(s.info, s.b)
	s.Require().NoError(err)
	s.Len(abs, 1)

	_, err = splittree.NewGenerator(nil, s.tree, foreign).Generate(s.info, s.b)
	s.ErrorIs(err, splittree.ErrTaskMismatch)
	_, err = splittree.New(s.info, s.b, nil)
	s.ErrorIs(err, splittree.ErrNilTree)
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeSuite))
}

// An unsplit tree is the trivial abstraction: one state that loops on
// every applicable operator.
func TestTrivialTree(t *testing.T) {
	info, err := task.NewInfo(&task.Task{
		Domains:   []int{2},
		Operators: []task.Operator{{Name: "flip", Cost: 1, Pre: []task.Fact{{Var: 0, Value: 0}}, Eff: []task.Fact{{Var: 0, Value: 1}}}},
		Init:      []int{0},
		Goal:      []task.Fact{{Var: 0, Value: 1}},
	})
	require.NoError(t, err)
	b, err := bdd.New(info)
	require.NoError(t, err)
	tree, err := splittree.NewTree(info)
	require.NoError(t, err)

	abs, err := splittree.New(info, b, tree)
	require.NoError(t, err)
	assert.Equal(t, 1, abs.NumStates())
	assert.Zero(t, abs.NumTransitions())
	assert.True(t, abs.OperatorInducesSelfLoop(0))
	assert.True(t, abs.IsGoalState(0))
	assert.True(t, abs.StateSet(0).IsOne())
}
