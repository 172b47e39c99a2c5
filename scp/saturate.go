package scp

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/tcf"
)

// Compute saturates the abstractions in order and preserves all goal
// distances.
func Compute(abs []abstraction.Abstraction, order []int, rem *tcf.Remaining,
	ids []int, maxNumTransitions cost.Cost, opts ...Option) (*CostPartitioningHeuristic, error) {
	if err := checkOrder(abs, order); err != nil {
		return nil, err
	}
	d := driver{abs: abs, rem: rem, max: maxNumTransitions, log: applyOptions(opts).Logger}

	return d.run(order, nil)
}

// ComputePerim saturates the abstractions in order after capping every
// finite goal distance of abs[i] at the distance of ids[i].
func ComputePerim(abs []abstraction.Abstraction, order []int, rem *tcf.Remaining,
	ids []int, maxNumTransitions cost.Cost, opts ...Option) (*CostPartitioningHeuristic, error) {
	if err := checkOrder(abs, order); err != nil {
		return nil, err
	}
	if err := checkStateIDs(abs, ids); err != nil {
		return nil, err
	}
	d := driver{abs: abs, rem: rem, max: maxNumTransitions, log: applyOptions(opts).Logger}

	return d.run(order, ids)
}

// ComputePerimstar runs ComputePerim and then Compute on the costs it left
// in rem. The result is the sum of both partitionings.
func ComputePerimstar(abs []abstraction.Abstraction, order []int, rem *tcf.Remaining,
	ids []int, maxNumTransitions cost.Cost, opts ...Option) (*CostPartitioningHeuristic, error) {
	cp, err := ComputePerim(abs, order, rem, ids, maxNumTransitions, opts...)
	if err != nil {
		return nil, err
	}
	rest, err := Compute(abs, order, rem, ids, maxNumTransitions, opts...)
	if err != nil {
		return nil, err
	}
	cp.Add(rest)

	return cp, nil
}

// driver holds the state of one pass over an order.
type driver struct {
	abs []abstraction.Abstraction
	rem *tcf.Remaining
	max cost.Cost
	log logrus.FieldLogger
}

// run saturates every abstraction of order. A non-nil caps selects the
// perimeter variant.
func (d *driver) run(order []int, caps []int) (*CostPartitioningHeuristic, error) {
	cp := NewCostPartitioningHeuristic()
	for _, pos := range order {
		a := d.abs[pos]
		stateIndependent := d.max.Less(cost.Finite(a.NumTransitions()))

		var (
			h   []cost.Cost
			err error
		)
		if stateIndependent {
			h, err = d.saturateOperators(a, pos, caps)
		} else {
			h, err = d.saturateTransitions(a, pos, caps)
		}
		if err != nil {
			return nil, fmt.Errorf("abstraction %d: %w", pos, err)
		}

		entry := d.log.WithFields(logrus.Fields{
			"abstraction": pos,
			"si":          stateIndependent,
			"transitions": a.NumTransitions(),
		})
		if caps != nil {
			entry = entry.WithField("h", h[caps[pos]])
		}
		entry.Debug("abstraction saturated")

		cp.AddHValues(pos, h)
	}

	return cp, nil
}

// saturateOperators takes the cheapest remaining cost of every operator as
// its scalar cost and subtracts one saturated scalar per operator.
func (d *driver) saturateOperators(a abstraction.Abstraction, pos int, caps []int) ([]cost.Cost, error) {
	h, err := a.GoalDistances(d.rem.MinCosts())
	if err != nil {
		return nil, err
	}
	capDistances(h, caps, pos)
	a.ReduceRemainingCostsOperators(a.SaturatedCosts(h), d.rem)

	return h, nil
}

// saturateTransitions searches directly on the remaining pool and subtracts
// a saturated cost per transition.
func (d *driver) saturateTransitions(a abstraction.Abstraction, pos int, caps []int) ([]cost.Cost, error) {
	sat := a.DefaultSaturatedCostFunction()
	h, err := a.GoalDistancesWithRemaining(d.rem, sat)
	if err != nil {
		return nil, err
	}
	capDistances(h, caps, pos)
	a.SaturateTransitions(h, sat)
	a.ReduceRemainingCosts(sat, d.rem)

	return h, nil
}

// capDistances lowers every finite distance to h[caps[pos]].
func capDistances(h []cost.Cost, caps []int, pos int) {
	if caps == nil {
		return
	}
	limit := h[caps[pos]]
	for i, v := range h {
		if v.IsFinite() {
			h[i] = cost.Min(v, limit)
		}
	}
}

func checkOrder(abs []abstraction.Abstraction, order []int) error {
	if len(abs) == 0 {
		return ErrNoAbstractions
	}
	if len(order) != len(abs) {
		return fmt.Errorf("%w: %d positions for %d abstractions", ErrBadOrder, len(order), len(abs))
	}
	seen := make([]bool, len(abs))
	for _, pos := range order {
		if pos < 0 || pos >= len(abs) || seen[pos] {
			return fmt.Errorf("%w: %v", ErrBadOrder, order)
		}
		seen[pos] = true
	}

	return nil
}

func checkStateIDs(abs []abstraction.Abstraction, ids []int) error {
	if len(ids) != len(abs) {
		return fmt.Errorf("%w: %d IDs for %d abstractions", ErrStateIDs, len(ids), len(abs))
	}
	for i, id := range ids {
		if id < 0 || id >= abs[i].NumStates() {
			return fmt.Errorf("%w: abstraction %d has no state %d", ErrStateIDs, i, id)
		}
	}

	return nil
}
