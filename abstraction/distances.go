package abstraction

import (
	"fmt"

	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/dijkstra"
	"github.com/katalvlaran/costsat/tcf"
)

// GoalDistances computes goal distances with costs[op] as the weight of every
// transition labelled op. cost.Inf makes a transition impassable.
func (e *Explicit) GoalDistances(costs []cost.Cost) ([]cost.Cost, error) {
	if len(costs) != e.NumOperators() {
		return nil, fmt.Errorf("%w: %d costs for %d operators", ErrCostLength, len(costs), e.NumOperators())
	}
	dist, err := dijkstra.GoalDistances(e.graph, dijkstra.OperatorWeights(costs), dijkstra.WithGoals(e.goals...))
	if err != nil {
		return nil, fmt.Errorf("abstraction: goal distances: %w", err)
	}

	return dist, nil
}

// GoalDistancesWithRemaining computes goal distances with the costs left in
// rem. out.SD is reset to zero and then receives the cost resolved for every
// transition the search relaxed.
//
// The weight of a transition s→t is only looked up when it could improve s
// (required > 0). The operator's cheapest remaining cost is tried first; the
// transition's concrete state set is built and intersected with the buckets
// only when that cheap bound is below required.
func (e *Explicit) GoalDistancesWithRemaining(rem *tcf.Remaining, out *tcf.Abstract) ([]cost.Cost, error) {
	if len(out.SD) != e.numTransitions {
		return nil, fmt.Errorf("%w: %d transition costs for %d transitions", ErrCostLength, len(out.SD), e.numTransitions)
	}
	for i := range out.SD {
		out.SD[i] = cost.Zero
	}

	weight := func(target int, a dijkstra.Arc, required cost.Cost) cost.Cost {
		c := cost.Zero
		if cost.Zero.Less(required) {
			c = rem.MinCost(a.Op)
			if c.Less(required) {
				t := Transition{ID: a.ID, Op: a.Op, Src: a.Source, Target: target}
				c = rem.MinCostFor(a.Op, e.CachedTransitionSet(t), required)
			}
		}
		out.SD[a.ID] = c

		return c
	}
	dist, err := dijkstra.GoalDistances(e.graph, weight, dijkstra.WithGoals(e.goals...))
	if err != nil {
		return nil, fmt.Errorf("abstraction: goal distances with remaining costs: %w", err)
	}

	return dist, nil
}
