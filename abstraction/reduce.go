package abstraction

import (
	"fmt"

	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/tcf"
)

// ReduceRemainingCostsOperators subtracts sat[op] from every bucket of op.
func (e *Explicit) ReduceRemainingCostsOperators(sat []cost.Cost, rem *tcf.Remaining) {
	for op, s := range sat {
		rem.SubtractOperator(op, s)
	}
}

// ReduceRemainingCosts subtracts a saturated transition cost function:
// state-independent operators lose their SICosts everywhere, the others lose
// the saturated cost of each transition in the concrete states it covers.
func (e *Explicit) ReduceRemainingCosts(sat *tcf.Abstract, rem *tcf.Remaining) {
	e.reduceStateIndependent(sat, rem)
	e.reduceTransitions(sat, rem)
}

func (e *Explicit) reduceStateIndependent(sat *tcf.Abstract, rem *tcf.Remaining) {
	for op, si := range sat.SI {
		if si {
			rem.SubtractOperator(op, sat.SICosts[op])
		}
	}
}

// reduceTransitions groups the saturated costs of state-dependent operators
// into one StateCostFunction per operator and hands them to the pool.
// Transitions needing 0, cost.Inf or cost.NegInf leave the pool untouched.
func (e *Explicit) reduceTransitions(sat *tcf.Abstract, rem *tcf.Remaining) {
	saturated := make([]*tcf.StateCostFunction, e.NumOperators())
	e.ForEachStateDependentTransition(sat.SI, func(t Transition) {
		s := sat.SD[t.ID]
		if s.IsNegInf() || s.IsZero() || s.IsInf() {
			return
		}
		rem.CountSubtraction()

		states := e.CachedTransitionSet(t)
		if rem.Checks() && !e.b.IsApplicable(states, t.Op) {
			panic(fmt.Sprintf("abstraction: transition %d (%d→%d) of %s has no applicable concrete state",
				t.ID, t.Src, t.Target, e.info.OperatorName(t.Op)))
		}
		if saturated[t.Op] == nil {
			saturated[t.Op] = tcf.NewStateCostFunction(e.b)
		}
		saturated[t.Op].Insert(s, states)
	})
	rem.SubtractTransitions(sat.SI, saturated)
}
