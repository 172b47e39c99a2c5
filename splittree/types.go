// Package splittree represents Cartesian abstractions by their refinement
// hierarchy.
//
// A Tree starts with a single abstract state covering the whole state space.
// Every Split divides one abstract state along one variable into two states
// whose value sets partition the old one. Each abstract state is therefore a
// Cartesian product of value sets, one per variable; the set of a variable is
// the finest split on the path from its leaf to the root, or the whole domain
// if the variable was never split there.
//
// New turns a tree into an abstraction.Explicit: transitions are computed
// between Cartesian states, the tree walk is the abstraction function and the
// regression of transitions follows the tree's split variables.
//
// Errors (sentinel):
//
//	– ErrNilInfo            if a nil *task.Info is passed.
//	– ErrNilBuilder         if a nil *bdd.Builder is passed.
//	– ErrNilTree            if a nil *Tree is passed.
//	– ErrTaskMismatch       if a tree was grown for another task.
//	– ErrStateOutOfRange    if a split names an unknown abstract state.
//	– ErrVariableOutOfRange if a split names an unknown variable.
//	– ErrBadSplit           if the two value sets do not partition the state's set.
package splittree

import "errors"

// Sentinel errors.
var (
	// ErrNilInfo indicates that a nil *task.Info was passed.
	ErrNilInfo = errors.New("splittree: task info is nil")

	// ErrNilBuilder indicates that a nil *bdd.Builder was passed.
	ErrNilBuilder = errors.New("splittree: bdd builder is nil")

	// ErrNilTree indicates that a nil *Tree was passed.
	ErrNilTree = errors.New("splittree: tree is nil")

	// ErrTaskMismatch indicates a tree built for a different task.
	ErrTaskMismatch = errors.New("splittree: tree belongs to another task")

	// ErrStateOutOfRange indicates an unknown abstract state.
	ErrStateOutOfRange = errors.New("splittree: state out of range")

	// ErrVariableOutOfRange indicates an unknown variable.
	ErrVariableOutOfRange = errors.New("splittree: variable out of range")

	// ErrBadSplit indicates value sets that do not partition the split state.
	ErrBadSplit = errors.New("splittree: split values must partition the state's values")
)

// root marks the parent of the root node.
const root = -1

// node is one vertex of the refinement hierarchy. Leaves carry the abstract
// state ID; inner nodes carry the IDs of their two children.
type node struct {
	state    int
	parent   int
	v        int   // variable split on when this node was created
	vals     []int // sorted values of v in this subtree
	children [2]int
}

func (n *node) isLeaf() bool { return n.children[0] == 0 && n.children[1] == 0 }
