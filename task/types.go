// Package task defines the finite-domain planning task consumed by the
// cost-partitioning core, and Info, the read-only facade every other
// package queries for operator costs, preconditions and effects.
//
// A Task consists of:
//
//	– Domains:   one entry per variable, the number of values it can take.
//	– Operators: precondition and effect facts plus a non-negative cost.
//	– Init:      the initial state, one value per variable.
//	– Goal:      a partial assignment that every goal state must satisfy.
//
// Variables and operators are identified by their dense index in the
// respective slice. Info precomputes per-operator lookup tables so that
// HasPrecondition, Mentions and friends run in O(1).
//
// Errors (sentinel):
//
//	– ErrNilTask          if a nil *Task is passed to NewInfo.
//	– ErrNoVariables      if the task declares no variables.
//	– ErrBadDomain        if a domain size is smaller than 1.
//	– ErrFactOutOfRange   if a fact names an unknown variable or value.
//	– ErrDuplicateFact    if a condition constrains a variable twice.
//	– ErrNegativeCost     if an operator cost is negative.
//	– ErrBadInitialState  if Init does not assign every variable.
package task

import "errors"

// Sentinel errors returned by Validate and NewInfo.
var (
	// ErrNilTask indicates that a nil *Task was passed to NewInfo.
	ErrNilTask = errors.New("task: task is nil")

	// ErrNoVariables indicates that the task has no variables.
	ErrNoVariables = errors.New("task: no variables")

	// ErrBadDomain indicates that a variable has an empty domain.
	ErrBadDomain = errors.New("task: domain size must be positive")

	// ErrFactOutOfRange indicates a fact whose variable or value is unknown.
	ErrFactOutOfRange = errors.New("task: fact out of range")

	// ErrDuplicateFact indicates a condition mentioning a variable twice.
	ErrDuplicateFact = errors.New("task: variable constrained twice")

	// ErrNegativeCost indicates an operator with negative cost.
	ErrNegativeCost = errors.New("task: negative operator cost")

	// ErrBadInitialState indicates an initial state of the wrong length or with
	// out-of-range values.
	ErrBadInitialState = errors.New("task: invalid initial state")
)

// Fact is the assignment Var = Value.
type Fact struct {
	Var   int
	Value int
}

// Operator is a planning action. It is applicable in a state that satisfies
// every fact in Pre and sets every fact in Eff.
type Operator struct {
	Name string
	Cost int
	Pre  []Fact
	Eff  []Fact
}

// Task is a finite-domain planning task.
type Task struct {
	Domains   []int
	Operators []Operator
	Init      []int
	Goal      []Fact
}

// State is a complete assignment, one value per variable.
type State []int

// none marks "no precondition/effect on this variable" in Info lookup tables.
const none = -1
