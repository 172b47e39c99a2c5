// Package dijkstra implements backward multi-source Dijkstra over abstract
// transition systems.
//
// Notes on implementation choices:
//
//   - All goal states are seeded with distance 0 before the main loop.
//   - An arc whose weight is cost.Inf is skipped: the source keeps whatever
//     distance other arcs give it, and stays at cost.Inf otherwise.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap
//     and ignoring entries whose distance is worse than the current label.
//   - Only finite distances ever enter the heap.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/costsat/cost"
)

// GoalDistances computes, for every state of the backward graph, the cost of
// a cheapest path to some goal state. Unreachable states get cost.Inf.
//
// Preconditions and validation (in order):
//  1. weight must be non-nil (ErrNilWeight).
//  2. Every goal must lie in [0, len(graph)) (ErrGoalOutOfRange).
//  3. Every relaxed arc must name a valid source (ErrArcOutOfRange).
//  4. weight must never return a negative cost (ErrNegativeWeight).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func GoalDistances(graph [][]Arc, weight Weight, opts ...Option) ([]cost.Cost, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if weight == nil {
		return nil, ErrNilWeight
	}
	for _, g := range cfg.Goals {
		if g < 0 || g >= len(graph) {
			return nil, fmt.Errorf("%w: goal %d, %d states", ErrGoalOutOfRange, g, len(graph))
		}
	}

	// 3) Initialize runner; every distance starts at +∞.
	r := &runner{
		graph:  graph,
		weight: weight,
		dist:   make([]cost.Cost, len(graph)),
		pq:     make(nodePQ, 0, len(graph)),
	}
	for s := range r.dist {
		r.dist[s] = cost.Inf
	}
	r.init(cfg.Goals)

	// 4) Run main loop
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.dist, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	graph  [][]Arc     // backward graph; read-only within the search
	weight Weight      // lazy arc weights
	dist   []cost.Cost // best known goal distance per state
	pq     nodePQ      // min-heap of *nodeItem
}

// init seeds every goal with distance 0.
func (r *runner) init(goals []int) {
	heap.Init(&r.pq)
	for _, g := range goals {
		if r.dist[g].IsZero() {
			continue
		}
		r.dist[g] = cost.Zero
		heap.Push(&r.pq, &nodeItem{id: g, dist: 0})
	}
}

// process repeatedly pops the closest state and relaxes its incoming arcs.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the smallest-distance item.
		item := heap.Pop(&r.pq).(*nodeItem)

		// 2) Skip stale entries.
		if cost.Finite(item.dist).Cmp(r.dist[item.id]) > 0 {
			continue
		}

		// 3) Relax all incoming arcs of the popped state.
		if err := r.relax(item.id, item.dist); err != nil {
			return err
		}
	}

	return nil
}

// relax resolves the weight of every arc entering target and improves the
// arc sources where possible.
func (r *runner) relax(target, d int) error {
	for _, a := range r.graph[target] {
		if a.Source < 0 || a.Source >= len(r.dist) {
			return fmt.Errorf("%w: arc %d (%d→%d)", ErrArcOutOfRange, a.ID, a.Source, target)
		}

		// How much the arc must at least cost to be useless for its source.
		required := cost.Diff(r.dist[a.Source], cost.Finite(d))

		w := r.weight(target, a, required)
		if !w.IsNonNegative() {
			return fmt.Errorf("%w: arc %d (%d→%d) op=%d weight=%s",
				ErrNegativeWeight, a.ID, a.Source, target, a.Op, w)
		}
		if w.IsInf() {
			continue
		}

		newDist := d + w.Int()
		if cost.Finite(newDist).Cmp(r.dist[a.Source]) >= 0 {
			continue
		}
		r.dist[a.Source] = cost.Finite(newDist)
		heap.Push(&r.pq, &nodeItem{id: a.Source, dist: newDist})
	}

	return nil
}

// nodeItem is a state and a tentative goal distance.
type nodeItem struct {
	id   int // abstract state ID
	dist int // tentative finite distance
}

// nodePQ is a min-heap of *nodeItem ordered by dist. Outdated entries stay in
// the heap and are skipped when popped.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element of the backing slice.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
