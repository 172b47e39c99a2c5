package scp

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
)

// OrderGenerator chooses the order in which abstractions are saturated.
//
// NextOrder is called once per cost partitioning with the abstractions, the
// original operator costs, the abstract states of the evaluated concrete
// state and the number of orders generated so far.
type OrderGenerator interface {
	NextOrder(abs []abstraction.Abstraction, costs []cost.Cost, ids []int, i int) ([]int, error)
}

// DefaultOrder saturates abstractions in the order they were generated.
type DefaultOrder struct{}

// NextOrder returns 0, 1, …, n-1.
func (DefaultOrder) NextOrder(abs []abstraction.Abstraction, _ []cost.Cost, _ []int, _ int) ([]int, error) {
	return identity(len(abs)), nil
}

// ReverseOrder saturates the last generated abstraction first.
type ReverseOrder struct{}

// NextOrder returns n-1, …, 1, 0.
func (ReverseOrder) NextOrder(abs []abstraction.Abstraction, _ []cost.Cost, _ []int, _ int) ([]int, error) {
	order := identity(len(abs))
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}

// RandomOrder shuffles the abstractions with a seeded source.
type RandomOrder struct {
	rng *rand.Rand
}

// NewRandomOrder returns a reproducible random order generator.
func NewRandomOrder(seed int64) *RandomOrder {
	return &RandomOrder{rng: rand.New(rand.NewSource(seed))}
}

// NextOrder returns a fresh permutation.
func (r *RandomOrder) NextOrder(abs []abstraction.Abstraction, _ []cost.Cost, _ []int, _ int) ([]int, error) {
	order := identity(len(abs))
	r.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	return order, nil
}

// GreedyOrder sorts abstractions by the h-value of the evaluated state per
// unit of cost they would steal from the others:
//
//	score(a) = h_a(id_a) / (1 + Σ_op max(0, min(sat_a(op), cost(op))))
//
// where h_a and sat_a are computed under the original costs. Abstractions
// that prove a dead end come first; ties keep the generation order.
type GreedyOrder struct{}

// NextOrder returns the abstractions by decreasing score.
func (GreedyOrder) NextOrder(abs []abstraction.Abstraction, costs []cost.Cost, ids []int, _ int) ([]int, error) {
	if err := checkStateIDs(abs, ids); err != nil {
		return nil, err
	}
	scores := make([]float64, len(abs))
	for i, a := range abs {
		h, err := a.GoalDistances(costs)
		if err != nil {
			return nil, fmt.Errorf("abstraction %d: %w", i, err)
		}
		scores[i] = score(h[ids[i]], stolen(a.SaturatedCosts(h), costs))
	}

	order := identity(len(abs))
	sort.SliceStable(order, func(x, y int) bool { return scores[order[x]] > scores[order[y]] })

	return order, nil
}

// stolen sums the non-negative saturated costs, bounded by the original ones.
func stolen(sat, costs []cost.Cost) int {
	sum := 0
	for op, s := range sat {
		if !s.IsFinite() || s.Int() <= 0 {
			continue
		}
		c := cost.Min(s, costs[op])
		if c.IsFinite() {
			sum += c.Int()
		}
	}

	return sum
}

func score(h cost.Cost, stolen int) float64 {
	if h.IsInf() {
		return math.Inf(1)
	}

	return float64(h.Int()) / float64(1+stolen)
}

// ParseOrders maps a configuration name to an OrderGenerator. Names are
// matched case-insensitively, like ParseSaturator.
func ParseOrders(name string, seed int64) (OrderGenerator, error) {
	switch strings.ToLower(name) {
	case "default":
		return DefaultOrder{}, nil
	case "reverse":
		return ReverseOrder{}, nil
	case "random":
		return NewRandomOrder(seed), nil
	case "greedy":
		return GreedyOrder{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOrders, name)
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return order
}
