package tcf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
)

// Remaining is the pool of operator costs not yet allocated to an abstraction
// during one cost-partitioning pass.
//
// A Remaining pool is not safe for concurrent use.
type Remaining struct {
	info    *task.Info
	b       *bdd.Builder
	checks  bool
	metrics *Metrics
	log     logrus.FieldLogger

	fns     []*StateCostFunction
	useless []bool

	evaluations  int
	subtractions int
}

// NewRemaining creates a pool holding the original operator costs.
func NewRemaining(info *task.Info, b *bdd.Builder, opts ...Option) (*Remaining, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	if b == nil {
		return nil, ErrNilBuilder
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Remaining{
		info:    info,
		b:       b,
		checks:  cfg.CompletenessChecks,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
		fns:     make([]*StateCostFunction, info.NumOperators()),
		useless: make([]bool, info.NumOperators()),
	}
	r.Reinitialize()

	return r, nil
}

// Reinitialize resets every operator to a single bucket holding its original
// cost, or cost.Inf if the operator is useless.
func (r *Remaining) Reinitialize() {
	for op := range r.fns {
		c := cost.Finite(r.info.OperatorCost(op))
		if r.useless[op] {
			c = cost.Inf
		}
		r.fns[op] = uniform(r.b, c)
	}
}

// Builder returns the BDD builder the pool's buckets come from.
func (r *Remaining) Builder() *bdd.Builder { return r.b }

// NumOperators returns the number of operators in the pool.
func (r *Remaining) NumOperators() int { return len(r.fns) }

// Checks reports whether completeness checks are enabled.
func (r *Remaining) Checks() bool { return r.checks }

// Function returns the current cost function of op. Do not modify.
func (r *Remaining) Function(op int) *StateCostFunction { return r.fns[op] }

// MinCost returns the cheapest remaining cost of op in any state.
func (r *Remaining) MinCost(op int) cost.Cost { return r.fns[op].Min() }

// MinCosts returns MinCost for every operator.
func (r *Remaining) MinCosts() []cost.Cost {
	costs := make([]cost.Cost, len(r.fns))
	for op := range r.fns {
		costs[op] = r.fns[op].Min()
	}

	return costs
}

// MinCostFor returns the cheapest remaining cost of op among the buckets that
// intersect states. Buckets are scanned in increasing order and the scan stops
// at the first bucket whose cost reaches required, whose cost is then
// returned without an intersection test. cost.Inf is returned if states
// meets no bucket.
func (r *Remaining) MinCostFor(op int, states bdd.Set, required cost.Cost) cost.Cost {
	r.evaluations++
	if r.metrics != nil {
		r.metrics.Evaluations.Inc()
	}
	for _, bk := range r.fns[op].buckets {
		if !bk.Cost.Less(required) {
			return bk.Cost
		}
		if r.b.Intersect(bk.States, states) {
			return bk.Cost
		}
	}

	return cost.Inf
}

// SubtractOperator removes the state-independent saturated cost s from op.
//
//   - s == 0 or s == cost.Inf: nothing changes.
//   - s == cost.NegInf: op becomes useless.
//   - otherwise every bucket cost c becomes LeftSub(c, s).
func (r *Remaining) SubtractOperator(op int, s cost.Cost) {
	switch {
	case s.IsZero(), s.IsInf():
		return
	case s.IsNegInf():
		r.MarkUseless(op)
		return
	}

	old := r.fns[op]
	next := NewStateCostFunction(r.b)
	for _, bk := range old.buckets {
		next.Insert(cost.LeftSub(bk.Cost, s), bk.States)
	}
	r.fns[op] = next
	r.verify(op)
}

// SubtractTransitions subtracts state-dependent saturated costs. saturated[op]
// maps saturated values to the concrete states of the transitions that need
// them; operators marked in si, and nil entries, are left untouched.
//
// Each remaining bucket is split against the saturated buckets from the
// largest saturated value down. The overlap receives LeftSub(old, saturated)
// and the rest keeps the old cost.
func (r *Remaining) SubtractTransitions(si []bool, saturated []*StateCostFunction) {
	for op := range r.fns {
		if si[op] || saturated[op] == nil || saturated[op].Len() == 0 {
			continue
		}
		r.subtractFunction(op, saturated[op])
	}
}

func (r *Remaining) subtractFunction(op int, sat *StateCostFunction) {
	next := NewStateCostFunction(r.b)
	for _, rem := range r.fns[op].buckets {
		left := rem.States
		for i := len(sat.buckets) - 1; i >= 0 && !left.IsZero(); i-- {
			s := sat.buckets[i]
			part := left.And(s.States)
			if part.IsZero() {
				continue
			}
			next.Insert(cost.LeftSub(rem.Cost, s.Cost), part)
			left = left.Minus(s.States)
		}
		if !left.IsZero() {
			next.Insert(rem.Cost, left)
		}
	}
	r.fns[op] = next
	r.verify(op)
}

// MarkUseless collapses op to a single cost.Inf bucket for the rest of the
// pool's lifetime, including later calls to Reinitialize.
func (r *Remaining) MarkUseless(op int) {
	r.fns[op] = uniform(r.b, cost.Inf)
	if !r.useless[op] {
		r.useless[op] = true
		if r.metrics != nil {
			r.metrics.UselessOperators.Inc()
		}
	}
}

// IsUseless reports whether op has been marked useless.
func (r *Remaining) IsUseless(op int) bool { return r.useless[op] }

// NumUseless returns the number of useless operators.
func (r *Remaining) NumUseless() int {
	n := 0
	for _, u := range r.useless {
		if u {
			n++
		}
	}

	return n
}

// CountSubtraction records one saturated transition cost taken from the pool.
func (r *Remaining) CountSubtraction() {
	r.subtractions++
	if r.metrics != nil {
		r.metrics.Subtractions.Inc()
	}
}

// Statistics returns the pool counters.
func (r *Remaining) Statistics() Statistics {
	return Statistics{
		Evaluations:      r.evaluations,
		Subtractions:     r.subtractions,
		UselessOperators: r.NumUseless(),
	}
}

// LogStatistics writes the pool counters at info level.
func (r *Remaining) LogStatistics() {
	st := r.Statistics()
	r.log.WithFields(logrus.Fields{
		"evaluations":  st.Evaluations,
		"subtractions": st.Subtractions,
		"useless":      st.UselessOperators,
	}).Info("remaining transition cost function")
}

// VerifyCompleteness checks the partition of every operator.
func (r *Remaining) VerifyCompleteness() error {
	for op, f := range r.fns {
		if err := f.VerifyCompleteness(); err != nil {
			return fmt.Errorf("operator %d: %w", op, err)
		}
	}

	return nil
}

// verify panics if checks are enabled and op's partition or non-negativity
// is broken.
func (r *Remaining) verify(op int) {
	if !r.checks {
		return
	}
	if err := r.fns[op].VerifyCompleteness(); err != nil {
		panic(fmt.Sprintf("tcf: operator %d (%s): %v", op, r.info.OperatorName(op), err))
	}
	if !r.fns[op].IsNonNegative() {
		panic(fmt.Sprintf("tcf: operator %d (%s): negative remaining cost %s",
			op, r.info.OperatorName(op), r.fns[op].Min()))
	}
}
