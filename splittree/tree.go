package splittree

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/task"
)

// Tree is the refinement hierarchy of a Cartesian abstraction.
type Tree struct {
	info  *task.Info
	nodes []node
	leaf  []int // abstract state → leaf node
}

var _ abstraction.Function = (*Tree)(nil)

// NewTree returns the trivial hierarchy with one abstract state.
func NewTree(info *task.Info) (*Tree, error) {
	if info == nil {
		return nil, ErrNilInfo
	}

	return &Tree{
		info:  info,
		nodes: []node{{state: 0, parent: root, v: -1}},
		leaf:  []int{0},
	}, nil
}

// NumStates returns the number of abstract states (leaves).
func (t *Tree) NumStates() int { return len(t.leaf) }

// Split divides abstract state id along variable v. The left part keeps id
// and the right part receives the returned new ID. left and right must be
// disjoint, non-empty and together equal the current values of v in id.
func (t *Tree) Split(id, v int, left, right []int) (int, error) {
	if id < 0 || id >= len(t.leaf) {
		return 0, fmt.Errorf("%w: %d", ErrStateOutOfRange, id)
	}
	if v < 0 || v >= t.info.NumVariables() {
		return 0, fmt.Errorf("%w: %d", ErrVariableOutOfRange, v)
	}
	l, r := normalize(left), normalize(right)
	if len(l) == 0 || len(r) == 0 {
		return 0, fmt.Errorf("%w: empty side", ErrBadSplit)
	}
	union := normalize(append(append([]int(nil), l...), r...))
	current := t.Values(id, v)
	if len(union) != len(l)+len(r) || !slices.Equal(union, current) {
		return 0, fmt.Errorf("%w: %v | %v against %v", ErrBadSplit, l, r, current)
	}

	parent := t.leaf[id]
	newID := len(t.leaf)
	li, ri := len(t.nodes), len(t.nodes)+1
	t.nodes = append(t.nodes,
		node{state: id, parent: parent, v: v, vals: l},
		node{state: newID, parent: parent, v: v, vals: r},
	)
	t.nodes[parent].children = [2]int{li, ri}
	t.leaf[id] = li
	t.leaf = append(t.leaf, ri)

	return newID, nil
}

// Values returns the sorted values of v in abstract state id: the finest
// split on v between the leaf and the root, or the whole domain.
func (t *Tree) Values(id, v int) []int {
	if vals, ok := t.splitValues(id, v); ok {
		return vals
	}
	all := make([]int, t.info.DomainSize(v))
	for i := range all {
		all[i] = i
	}

	return all
}

// splitValues walks from the leaf of id to the root and returns the first
// value set recorded for v.
func (t *Tree) splitValues(id, v int) ([]int, bool) {
	for n := t.leaf[id]; t.nodes[n].parent != root; n = t.nodes[n].parent {
		if t.nodes[n].v == v {
			return t.nodes[n].vals, true
		}
	}

	return nil, false
}

// forEachSplit calls fn with the finest value set of every variable split on
// the path from the leaf of id to the root.
func (t *Tree) forEachSplit(id int, fn func(v int, vals []int)) {
	seen := make(map[int]bool)
	for n := t.leaf[id]; t.nodes[n].parent != root; n = t.nodes[n].parent {
		nd := &t.nodes[n]
		if !seen[nd.v] {
			seen[nd.v] = true
			fn(nd.v, nd.vals)
		}
	}
}

// Contains reports whether abstract state id admits value val of v.
func (t *Tree) Contains(id, v, val int) bool {
	vals, ok := t.splitValues(id, v)
	if !ok {
		return true
	}
	i := sort.SearchInts(vals, val)

	return i < len(vals) && vals[i] == val
}

// AbstractStateID walks from the root to the leaf containing s.
func (t *Tree) AbstractStateID(s task.State) int {
	n := 0
	for !t.nodes[n].isLeaf() {
		left := t.nodes[n].children[0]
		nd := &t.nodes[left]
		i := sort.SearchInts(nd.vals, s[nd.v])
		if i < len(nd.vals) && nd.vals[i] == s[nd.v] {
			n = left
		} else {
			n = t.nodes[n].children[1]
		}
	}

	return t.nodes[n].state
}

// normalize returns the sorted distinct values of vals.
func normalize(vals []int) []int {
	out := append([]int(nil), vals...)
	sort.Ints(out)
	uniq := out[:0]
	for i, v := range out {
		if i == 0 || v != out[i-1] {
			uniq = append(uniq, v)
		}
	}

	return uniq
}
