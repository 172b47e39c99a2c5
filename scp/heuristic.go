package scp

import (
	"fmt"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
)

// lookupTable holds the goal distances one partitioning assigns to the
// states of one abstraction.
type lookupTable struct {
	abs int
	h   []cost.Cost
}

// CostPartitioningHeuristic stores the goal distances of one cost
// partitioning. Abstractions whose distances are all zero are not stored.
type CostPartitioningHeuristic struct {
	tables []lookupTable
}

// NewCostPartitioningHeuristic returns an empty partitioning.
func NewCostPartitioningHeuristic() *CostPartitioningHeuristic {
	return &CostPartitioningHeuristic{}
}

// AddHValues records the goal distances of abstraction pos. h must not be
// modified afterwards.
func (cp *CostPartitioningHeuristic) AddHValues(pos int, h []cost.Cost) {
	for _, v := range h {
		if !v.IsZero() {
			cp.tables = append(cp.tables, lookupTable{abs: pos, h: h})
			return
		}
	}
}

// Add merges other into cp. Distances of an abstraction present in both are
// added state by state.
func (cp *CostPartitioningHeuristic) Add(other *CostPartitioningHeuristic) {
	for _, t := range other.tables {
		i := cp.table(t.abs)
		if i < 0 {
			cp.tables = append(cp.tables, lookupTable{abs: t.abs, h: append([]cost.Cost(nil), t.h...)})
			continue
		}
		sum := cp.tables[i].h
		if len(sum) != len(t.h) {
			panic(fmt.Sprintf("scp: abstraction %d has %d and %d states", t.abs, len(sum), len(t.h)))
		}
		for s := range sum {
			sum[s] = cost.Add(sum[s], t.h[s])
		}
	}
}

func (cp *CostPartitioningHeuristic) table(abs int) int {
	for i, t := range cp.tables {
		if t.abs == abs {
			return i
		}
	}

	return -1
}

// NumLookupTables returns the number of stored abstractions.
func (cp *CostPartitioningHeuristic) NumLookupTables() int { return len(cp.tables) }

// NumHeuristicValues returns the number of stored goal distances.
func (cp *CostPartitioningHeuristic) NumHeuristicValues() int {
	n := 0
	for _, t := range cp.tables {
		n += len(t.h)
	}

	return n
}

// HValues returns the stored distances of abstraction pos, or nil.
func (cp *CostPartitioningHeuristic) HValues(pos int) []cost.Cost {
	if i := cp.table(pos); i >= 0 {
		return cp.tables[i].h
	}

	return nil
}

// Value sums the stored distances of ids[abs] over all abstractions. The sum
// stops at the first cost.Inf, which proves a dead end.
func (cp *CostPartitioningHeuristic) Value(ids []int) cost.Cost {
	sum := cost.Zero
	for _, t := range cp.tables {
		h := t.h[ids[t.abs]]
		if h.IsInf() {
			return cost.Inf
		}
		sum = cost.Add(sum, h)
	}

	return sum
}

// Heuristic is the maximum over several cost partitionings of the same
// abstractions. It owns the abstraction functions needed to evaluate
// concrete states.
type Heuristic struct {
	fns []abstraction.Function
	cps []*CostPartitioningHeuristic
}

// NewHeuristic combines cps; fns[i] maps concrete states into abstraction i.
func NewHeuristic(fns []abstraction.Function, cps []*CostPartitioningHeuristic) *Heuristic {
	return &Heuristic{fns: fns, cps: cps}
}

// NumCostPartitionings returns the number of combined partitionings.
func (h *Heuristic) NumCostPartitionings() int { return len(h.cps) }

// AbstractStateIDs maps s into every abstraction.
func (h *Heuristic) AbstractStateIDs(s task.State) []int {
	ids := make([]int, len(h.fns))
	for i, fn := range h.fns {
		ids[i] = fn.AbstractStateID(s)
	}

	return ids
}

// Evaluate returns the heuristic estimate of s: the maximum over the
// partitionings, or cost.Inf as soon as one of them proves a dead end.
func (h *Heuristic) Evaluate(s task.State) cost.Cost {
	return h.value(h.AbstractStateIDs(s))
}

// value is Evaluate for precomputed abstract state IDs.
func (h *Heuristic) value(ids []int) cost.Cost {
	best := cost.Zero
	for _, cp := range h.cps {
		v := cp.Value(ids)
		if v.IsInf() {
			return cost.Inf
		}
		best = cost.Max(best, v)
	}

	return best
}

// IsDeadEnd reports whether some partitioning proves s unsolvable.
func (h *Heuristic) IsDeadEnd(s task.State) bool {
	return h.Evaluate(s).IsInf()
}
