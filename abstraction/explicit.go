package abstraction

import (
	"fmt"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/dijkstra"
	"github.com/katalvlaran/costsat/task"
	"github.com/katalvlaran/costsat/tcf"
)

// Explicit is an abstraction stored as a backward graph.
type Explicit struct {
	info *task.Info
	b    *bdd.Builder
	fn   Function
	reg  Regressor

	numStates      int
	numTransitions int
	init           int
	goals          []int
	isGoal         []bool

	graph        [][]dijkstra.Arc // incoming arcs per target state
	opTransition []int            // number of transitions per operator
	hasLoop      []bool
	hasOutgoing  []bool

	cache []bdd.Set // transition ID → concrete states, filled lazily
}

var _ Abstraction = (*Explicit)(nil)

// NewExplicit validates sys and builds the backward graph. fn maps concrete
// states into the abstraction and reg describes its states and transitions
// as BDD sets.
func NewExplicit(info *task.Info, b *bdd.Builder, sys System, fn Function, reg Regressor) (*Explicit, error) {
	if info == nil || b == nil || fn == nil || reg == nil {
		return nil, ErrNilDependency
	}
	numOps := info.NumOperators()
	if len(sys.SelfLoops) != numOps {
		return nil, fmt.Errorf("%w: %d self-loop flags for %d operators",
			ErrOperatorOutOfRange, len(sys.SelfLoops), numOps)
	}
	if sys.InitialState < 0 || sys.InitialState >= sys.NumStates {
		return nil, fmt.Errorf("%w: initial state %d", ErrStateOutOfRange, sys.InitialState)
	}

	e := &Explicit{
		info:           info,
		b:              b,
		fn:             fn,
		reg:            reg,
		numStates:      sys.NumStates,
		numTransitions: len(sys.Transitions),
		init:           sys.InitialState,
		isGoal:         make([]bool, sys.NumStates),
		graph:          make([][]dijkstra.Arc, sys.NumStates),
		opTransition:   make([]int, numOps),
		hasLoop:        append([]bool(nil), sys.SelfLoops...),
		hasOutgoing:    make([]bool, numOps),
		cache:          make([]bdd.Set, len(sys.Transitions)),
	}

	for _, g := range sys.GoalStates {
		if g < 0 || g >= sys.NumStates {
			return nil, fmt.Errorf("%w: goal state %d", ErrStateOutOfRange, g)
		}
		if !e.isGoal[g] {
			e.isGoal[g] = true
			e.goals = append(e.goals, g)
		}
	}

	usedID := make([]bool, len(sys.Transitions))
	seen := make(map[[3]int]bool, len(sys.Transitions))
	for _, t := range sys.Transitions {
		switch {
		case t.ID < 0 || t.ID >= len(sys.Transitions) || usedID[t.ID]:
			return nil, fmt.Errorf("%w: id %d", ErrTransitionID, t.ID)
		case t.Op < 0 || t.Op >= numOps:
			return nil, fmt.Errorf("%w: transition %d op %d", ErrOperatorOutOfRange, t.ID, t.Op)
		case t.Src < 0 || t.Src >= sys.NumStates || t.Target < 0 || t.Target >= sys.NumStates:
			return nil, fmt.Errorf("%w: transition %d (%d→%d)", ErrStateOutOfRange, t.ID, t.Src, t.Target)
		case t.Src == t.Target:
			return nil, fmt.Errorf("%w: transition %d op %d state %d", ErrSelfLoop, t.ID, t.Op, t.Src)
		}
		key := [3]int{t.Op, t.Src, t.Target}
		if seen[key] {
			return nil, fmt.Errorf("%w: op %d (%d→%d)", ErrDuplicateTransition, t.Op, t.Src, t.Target)
		}
		seen[key] = true
		usedID[t.ID] = true

		e.graph[t.Target] = append(e.graph[t.Target], dijkstra.Arc{ID: t.ID, Op: t.Op, Source: t.Src})
		e.opTransition[t.Op]++
		e.hasOutgoing[t.Op] = true
	}

	return e, nil
}

// NumStates returns the number of abstract states.
func (e *Explicit) NumStates() int { return e.numStates }

// NumTransitions returns the number of state-changing transitions.
func (e *Explicit) NumTransitions() int { return e.numTransitions }

// NumOperators returns the number of task operators.
func (e *Explicit) NumOperators() int { return len(e.hasLoop) }

// NumTransitionsOf returns the number of transitions labelled with op.
func (e *Explicit) NumTransitionsOf(op int) int { return e.opTransition[op] }

// InitialStateID returns the abstract initial state.
func (e *Explicit) InitialStateID() int { return e.init }

// GoalStates returns the goal states in insertion order. Do not modify.
func (e *Explicit) GoalStates() []int { return e.goals }

// IsGoalState reports whether id is a goal state.
func (e *Explicit) IsGoalState(id int) bool { return e.isGoal[id] }

// OperatorInducesSelfLoop reports whether op leaves some state unchanged.
func (e *Explicit) OperatorInducesSelfLoop(op int) bool { return e.hasLoop[op] }

// OperatorIsActive reports whether op induces a state-changing transition.
func (e *Explicit) OperatorIsActive(op int) bool { return e.hasOutgoing[op] }

// DefaultSaturatedCostFunction returns a zeroed function for this abstraction.
func (e *Explicit) DefaultSaturatedCostFunction() *tcf.Abstract {
	return tcf.NewAbstract(e.NumOperators(), e.numTransitions)
}

// ForEachTransition calls fn for every transition, grouped by target state.
func (e *Explicit) ForEachTransition(fn func(Transition)) {
	for target, arcs := range e.graph {
		for _, a := range arcs {
			fn(Transition{ID: a.ID, Op: a.Op, Src: a.Source, Target: target})
		}
	}
}

// ForEachStateDependentTransition calls fn for every transition whose
// operator is not marked in si.
func (e *Explicit) ForEachStateDependentTransition(si []bool, fn func(Transition)) {
	e.ForEachTransition(func(t Transition) {
		if !si[t.Op] {
			fn(t)
		}
	})
}

// StateSet returns the concrete states of abstract state id.
func (e *Explicit) StateSet(id int) bdd.Set { return e.reg.StateSet(id) }

// TransitionSet returns the concrete states in which t.Op induces t.
func (e *Explicit) TransitionSet(t Transition) bdd.Set { return e.reg.TransitionSet(t) }

// CachedTransitionSet returns TransitionSet(t), computing it at most once
// until ClearCaches.
func (e *Explicit) CachedTransitionSet(t Transition) bdd.Set {
	if !e.cache[t.ID].Valid() {
		e.cache[t.ID] = e.reg.TransitionSet(t)
	}
	return e.cache[t.ID]
}

// ClearCaches drops all memoized transition sets.
func (e *Explicit) ClearCaches() {
	e.cache = make([]bdd.Set, e.numTransitions)
}

// AbstractStateID maps s to its abstract state.
func (e *Explicit) AbstractStateID(s task.State) int {
	if e.fn == nil {
		panic("abstraction: abstract state requested after the function was extracted")
	}
	id := e.fn.AbstractStateID(s)
	if id < 0 || id >= e.numStates {
		panic(fmt.Sprintf("abstraction: abstract state %d out of range [0, %d)", id, e.numStates))
	}

	return id
}

// ExtractFunction transfers the abstraction function to the caller.
func (e *Explicit) ExtractFunction() (Function, bool) {
	if e.fn == nil {
		return nil, false
	}
	fn := e.fn
	e.fn = nil

	return fn, true
}
