package tcf

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
)

// StateCostFunction maps cost values to sets of concrete states.
// Buckets are kept sorted by increasing cost with one bucket per cost value.
type StateCostFunction struct {
	b       *bdd.Builder
	buckets []Bucket
}

// NewStateCostFunction returns an empty function over the states of b.
func NewStateCostFunction(b *bdd.Builder) *StateCostFunction {
	return &StateCostFunction{b: b}
}

// uniform returns the function assigning c to every state.
func uniform(b *bdd.Builder, c cost.Cost) *StateCostFunction {
	return &StateCostFunction{b: b, buckets: []Bucket{{Cost: c, States: b.One()}}}
}

// Insert adds states to the bucket of c, creating it if necessary.
func (f *StateCostFunction) Insert(c cost.Cost, states bdd.Set) {
	i := sort.Search(len(f.buckets), func(i int) bool {
		return !f.buckets[i].Cost.Less(c)
	})
	if i < len(f.buckets) && f.buckets[i].Cost == c {
		f.buckets[i].States = f.buckets[i].States.Or(states)
		return
	}
	f.buckets = append(f.buckets, Bucket{})
	copy(f.buckets[i+1:], f.buckets[i:])
	f.buckets[i] = Bucket{Cost: c, States: states}
}

// Len returns the number of buckets.
func (f *StateCostFunction) Len() int { return len(f.buckets) }

// Buckets returns the buckets in increasing cost order. Do not modify.
func (f *StateCostFunction) Buckets() []Bucket { return f.buckets }

// Min returns the smallest cost value. It panics on an empty function.
func (f *StateCostFunction) Min() cost.Cost {
	if len(f.buckets) == 0 {
		panic("tcf: Min of empty state cost function")
	}
	return f.buckets[0].Cost
}

// Clear removes all buckets.
func (f *StateCostFunction) Clear() { f.buckets = f.buckets[:0] }

// IsNonNegative reports whether every cost value is ≥ 0.
func (f *StateCostFunction) IsNonNegative() bool {
	return len(f.buckets) == 0 || f.buckets[0].Cost.IsNonNegative()
}

// CostOf returns the cost of the bucket containing s.
func (f *StateCostFunction) CostOf(s task.State) (cost.Cost, bool) {
	for _, bk := range f.buckets {
		if f.b.Contains(bk.States, s) {
			return bk.Cost, true
		}
	}
	return cost.Zero, false
}

// VerifyCompleteness checks that the buckets are non-empty, pairwise
// disjoint and cover the whole state space.
func (f *StateCostFunction) VerifyCompleteness() error {
	union := f.b.Zero()
	for _, bk := range f.buckets {
		if bk.States.IsZero() {
			return fmt.Errorf("%w: cost %s", ErrEmptyBucket, bk.Cost)
		}
		if f.b.Intersect(union, bk.States) {
			return fmt.Errorf("%w: cost %s", ErrOverlappingBuckets, bk.Cost)
		}
		union = union.Or(bk.States)
	}
	if !union.IsOne() {
		return fmt.Errorf("%w: %d buckets", ErrIncomplete, len(f.buckets))
	}

	return nil
}
