package splittree

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/task"
)

// New builds the Cartesian abstraction described by tree. The tree becomes
// the abstraction function and must not be split afterwards.
func New(info *task.Info, b *bdd.Builder, tree *Tree) (*abstraction.Explicit, error) {
	switch {
	case info == nil:
		return nil, ErrNilInfo
	case b == nil:
		return nil, ErrNilBuilder
	case tree == nil:
		return nil, ErrNilTree
	case tree.info.Task() != info.Task():
		return nil, ErrTaskMismatch
	}

	n := tree.NumStates()
	sb := abstraction.NewSystemBuilder(n, info.NumOperators())
	sb.SetInitialState(tree.AbstractStateID(info.InitialState()))
	for id := 0; id < n; id++ {
		if tree.isGoal(id) {
			sb.AddGoalState(id)
		}
	}
	for src := 0; src < n; src++ {
		for op := 0; op < info.NumOperators(); op++ {
			if !tree.isApplicable(src, op) {
				continue
			}
			for target := 0; target < n; target++ {
				if tree.induces(op, src, target) {
					sb.AddTransition(op, src, target)
				}
			}
		}
	}

	return abstraction.NewExplicit(info, b, sb.System(), tree, &regressor{tree: tree, b: b})
}

// isGoal reports whether abstract state id contains a goal state.
func (t *Tree) isGoal(id int) bool {
	for _, g := range t.info.Goal() {
		if !t.Contains(id, g.Var, g.Value) {
			return false
		}
	}

	return true
}

// isApplicable reports whether op is applicable in some state of id.
func (t *Tree) isApplicable(id, op int) bool {
	for _, f := range t.info.Preconditions(op) {
		if !t.Contains(id, f.Var, f.Value) {
			return false
		}
	}

	return true
}

// induces reports whether op leads from some state of src into target,
// assuming op is applicable in src. Per variable:
//
//	effect e:        e ∈ target
//	precondition p:  p ∈ target (the value stays p)
//	untouched:       src ∩ target ≠ ∅
func (t *Tree) induces(op, src, target int) bool {
	for v := 0; v < t.info.NumVariables(); v++ {
		if eff, ok := t.info.EffectValue(op, v); ok {
			if !t.Contains(target, v, eff) {
				return false
			}
			continue
		}
		if pre, ok := t.info.PreconditionValue(op, v); ok {
			if !t.Contains(target, v, pre) {
				return false
			}
			continue
		}
		if !t.intersects(src, target, v) {
			return false
		}
	}

	return true
}

// intersects reports whether src and target share a value of v.
func (t *Tree) intersects(src, target, v int) bool {
	for _, val := range t.Values(src, v) {
		if t.Contains(target, v, val) {
			return true
		}
	}

	return false
}

// regressor describes Cartesian states and transitions as BDD sets over the
// variables split in the tree.
type regressor struct {
	tree *Tree
	b    *bdd.Builder
}

// StateSet returns the Cartesian product of the finest value sets of id.
func (r *regressor) StateSet(id int) bdd.Set {
	set := r.b.One()
	r.tree.forEachSplit(id, func(v int, vals []int) {
		set = set.And(r.b.Var(v, vals))
	})

	return set
}

// TransitionSet constrains every split variable the operator has no
// precondition on: to the source values, and additionally to the target
// values when the operator does not mention the variable.
func (r *regressor) TransitionSet(tr abstraction.Transition) bdd.Set {
	info := r.tree.info
	set := r.b.One()
	r.tree.forEachSplit(tr.Src, func(v int, vals []int) {
		if info.HasPrecondition(tr.Op, v) {
			return
		}
		set = set.And(r.b.Var(v, vals))
	})
	r.tree.forEachSplit(tr.Target, func(v int, vals []int) {
		if info.Mentions(tr.Op, v) {
			return
		}
		set = set.And(r.b.Var(v, vals))
	})

	return set
}

// Generator turns prebuilt trees into Cartesian abstractions.
type Generator struct {
	trees []*Tree
	log   logrus.FieldLogger
}

var _ abstraction.Generator = (*Generator)(nil)

// NewGenerator returns a generator over trees. A nil logger selects the
// logrus standard logger.
func NewGenerator(log logrus.FieldLogger, trees ...*Tree) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Generator{trees: trees, log: log}
}

// Generate builds one abstraction per tree.
func (g *Generator) Generate(info *task.Info, b *bdd.Builder) ([]abstraction.Abstraction, error) {
	abs := make([]abstraction.Abstraction, 0, len(g.trees))
	for i, tree := range g.trees {
		e, err := New(info, b, tree)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		g.log.WithFields(logrus.Fields{
			"states":      e.NumStates(),
			"transitions": e.NumTransitions(),
		}).Debug("cartesian abstraction built")
		abs = append(abs, e)
	}

	return abs, nil
}
