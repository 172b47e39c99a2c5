// Package abstraction defines abstract transition systems and the
// operations saturated cost partitioning performs on them.
//
// An abstraction has dense state IDs [0, NumStates), a fixed initial state, a
// set of goal states and labelled state-changing transitions with dense IDs
// [0, NumTransitions). Self-loops are never materialized: an operator that
// leaves some abstract state unchanged is only flagged through
// OperatorInducesSelfLoop, because self-loops cannot change goal distances.
//
// Besides the transition system itself, every abstraction can
//
//   - compute goal distances under fixed operator costs or under the costs
//     still left in a tcf.Remaining pool,
//   - derive the saturated cost function that preserves given goal distances,
//   - subtract that function from the pool, operator by operator for
//     state-independent operators and bucket by bucket otherwise,
//   - regress abstract states and transitions to BDD sets of concrete states.
//
// Explicit is the only implementation: it stores a backward graph. The
// Abstraction interface stays narrow so that a purely symbolic family can be
// added without touching the driver in package scp.
//
// Errors (sentinel):
//
//	– ErrNilDependency       if info, builder, function or regressor is nil.
//	– ErrStateOutOfRange     if a state ID lies outside [0, NumStates).
//	– ErrOperatorOutOfRange  if an operator ID is unknown to the task.
//	– ErrTransitionID        if transition IDs are not a permutation of [0, n).
//	– ErrSelfLoop            if a transition has equal source and target.
//	– ErrDuplicateTransition if the same (op, src, target) appears twice.
//	– ErrCostLength          if a cost vector does not match the operator count.
package abstraction

import (
	"errors"
	"io"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
	"github.com/katalvlaran/costsat/tcf"
)

// Sentinel errors.
var (
	// ErrNilDependency indicates a missing collaborator.
	ErrNilDependency = errors.New("abstraction: nil dependency")

	// ErrStateOutOfRange indicates a state ID outside the abstraction.
	ErrStateOutOfRange = errors.New("abstraction: state out of range")

	// ErrOperatorOutOfRange indicates an unknown operator.
	ErrOperatorOutOfRange = errors.New("abstraction: operator out of range")

	// ErrTransitionID indicates transition IDs that are not dense and unique.
	ErrTransitionID = errors.New("abstraction: transition IDs must be dense and unique")

	// ErrSelfLoop indicates a materialized self-loop.
	ErrSelfLoop = errors.New("abstraction: self-loops must not be stored as transitions")

	// ErrDuplicateTransition indicates the same labelled transition twice.
	ErrDuplicateTransition = errors.New("abstraction: duplicate transition")

	// ErrCostLength indicates a cost vector of the wrong length.
	ErrCostLength = errors.New("abstraction: cost vector length mismatch")
)

// Transition is a labelled state-changing transition.
type Transition struct {
	ID     int
	Op     int
	Src    int
	Target int
}

// Function maps concrete states to abstract state IDs.
type Function interface {
	AbstractStateID(s task.State) int
}

// Regressor describes abstract states and transitions as sets of concrete
// states.
//
// StateSet returns the concrete states mapped to the abstract state id.
// TransitionSet returns the concrete states in which t.Op induces t, i.e. the
// regression of t.Target through t.Op intersected with t.Src.
type Regressor interface {
	StateSet(id int) bdd.Set
	TransitionSet(t Transition) bdd.Set
}

// Generator creates abstractions for a task.
type Generator interface {
	Generate(info *task.Info, b *bdd.Builder) ([]Abstraction, error)
}

// Abstraction is an abstract transition system together with the
// cost-partitioning operations performed on it.
type Abstraction interface {
	NumStates() int
	NumTransitions() int
	NumOperators() int
	NumTransitionsOf(op int) int
	InitialStateID() int
	GoalStates() []int
	IsGoalState(id int) bool

	// OperatorInducesSelfLoop reports whether op leaves some state unchanged.
	OperatorInducesSelfLoop(op int) bool
	// OperatorIsActive reports whether op induces a state-changing transition.
	OperatorIsActive(op int) bool

	// DefaultSaturatedCostFunction returns a zeroed tcf.Abstract sized for
	// this abstraction.
	DefaultSaturatedCostFunction() *tcf.Abstract

	// GoalDistances runs the goal-distance search with fixed operator costs.
	// Every cost must be non-negative.
	GoalDistances(costs []cost.Cost) ([]cost.Cost, error)
	// GoalDistancesWithRemaining runs the search with the costs left in rem,
	// recording the resolved cost of every relaxed transition in out.SD.
	GoalDistancesWithRemaining(rem *tcf.Remaining, out *tcf.Abstract) ([]cost.Cost, error)

	// SaturatedCosts returns the minimal operator costs preserving h.
	SaturatedCosts(h []cost.Cost) []cost.Cost
	// SaturateTransitions writes the saturated transition cost function
	// preserving h into out.
	SaturateTransitions(h []cost.Cost, out *tcf.Abstract)

	// ReduceRemainingCosts subtracts a saturated transition cost function.
	ReduceRemainingCosts(sat *tcf.Abstract, rem *tcf.Remaining)
	// ReduceRemainingCostsOperators subtracts saturated operator costs.
	ReduceRemainingCostsOperators(sat []cost.Cost, rem *tcf.Remaining)

	ForEachTransition(fn func(Transition))
	// ForEachStateDependentTransition skips transitions of operators marked in si.
	ForEachStateDependentTransition(si []bool, fn func(Transition))

	StateSet(id int) bdd.Set
	TransitionSet(t Transition) bdd.Set
	// CachedTransitionSet memoizes TransitionSet per transition ID.
	CachedTransitionSet(t Transition) bdd.Set
	ClearCaches()

	// AbstractStateID maps s through the abstraction function. It panics
	// once the function has been extracted.
	AbstractStateID(s task.State) int
	// ExtractFunction hands the abstraction function over to the caller.
	// It succeeds once; later calls return false.
	ExtractFunction() (Function, bool)

	// Dump writes the transition system in Graphviz DOT format.
	Dump(w io.Writer) error
}
