package scp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/projection"
	"github.com/katalvlaran/costsat/scp"
	"github.com/katalvlaran/costsat/task"
	"github.com/katalvlaran/costsat/tcf"
)

func projections(t *testing.T, patterns ...[]int) (*task.Info, []abstraction.Abstraction, *tcf.Remaining) {
	t.Helper()
	info, err := task.NewInfo(fixture())
	require.NoError(t, err)
	b, err := bdd.New(info)
	require.NoError(t, err)
	opts := []projection.Option{projection.WithLogger(nullLogger())}
	if len(patterns) > 0 {
		opts = append(opts, projection.WithPatterns(patterns...))
	}
	abs, err := projection.NewGenerator(opts...).Generate(info, b)
	require.NoError(t, err)
	rem, err := tcf.NewRemaining(info, b)
	require.NoError(t, err)

	return info, abs, rem
}

func TestFixedOrders(t *testing.T) {
	_, abs, _ := projections(t, []int{0}, []int{1}, []int{0, 1})

	order, err := scp.DefaultOrder{}.NextOrder(abs, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)

	order, err = scp.ReverseOrder{}.NextOrder(abs, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestRandomOrderIsSeeded(t *testing.T) {
	_, abs, _ := projections(t, []int{0}, []int{1}, []int{0, 1})

	a, b := scp.NewRandomOrder(7), scp.NewRandomOrder(7)
	for i := 0; i < 5; i++ {
		x, err := a.NextOrder(abs, nil, nil, i)
		require.NoError(t, err)
		y, err := b.NextOrder(abs, nil, nil, i)
		require.NoError(t, err)
		assert.Equal(t, x, y)
		assert.ElementsMatch(t, []int{0, 1, 2}, x)
	}
}

// v0 scores 4/(1+1+3+4) and v1 scores 1/(1+1), so v1 goes first.
func TestGreedyOrder(t *testing.T) {
	info, abs, _ := projections(t)
	costs := cost.Finites(info.OperatorCosts()...)

	order, err := scp.GreedyOrder{}.NextOrder(abs, costs, []int{0, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, order)

	// In state (0,1) the v1 projection is already at the goal.
	order, err = scp.GreedyOrder{}.NextOrder(abs, costs, []int{0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, order)

	_, err = scp.GreedyOrder{}.NextOrder(abs, costs, []int{0}, 0)
	require.ErrorIs(t, err, scp.ErrStateIDs)
}

func TestParseOrders(t *testing.T) {
	for name, want := range map[string]scp.OrderGenerator{
		"default": scp.DefaultOrder{},
		"reverse": scp.ReverseOrder{},
		"greedy":  scp.GreedyOrder{},
	} {
		got, err := scp.ParseOrders(name, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	got, err := scp.ParseOrders("random", 3)
	require.NoError(t, err)
	assert.IsType(t, &scp.RandomOrder{}, got)

	got, err = scp.ParseOrders("Greedy", 0)
	require.NoError(t, err, "names match case-insensitively")
	assert.Equal(t, scp.GreedyOrder{}, got)

	_, err = scp.ParseOrders("shuffled", 0)
	require.ErrorIs(t, err, scp.ErrUnknownOrders)
}

func TestCollectionGenerator(t *testing.T) {
	_, abs, rem := projections(t)

	gen := &scp.CollectionGenerator{
		Abstractions:      abs,
		Remaining:         rem,
		Orders:            scp.DefaultOrder{},
		MaxOrders:         3,
		MaxNumTransitions: cost.Inf,
		Logger:            nullLogger(),
	}
	cps, err := gen.Generate(context.Background(), []int{0, 0})
	require.NoError(t, err)
	require.Len(t, cps, 1, "repeated orders are skipped")
	assert.Equal(t, cost.Finite(5), cps[0].Value([]int{0, 0}))

	// Every order starts from the original costs.
	gen.Orders = scp.NewRandomOrder(1)
	gen.Saturate = scp.PerimStar.Func()
	cps, err = gen.Generate(context.Background(), []int{0, 0})
	require.NoError(t, err)
	require.NotEmpty(t, cps)
	for _, cp := range cps {
		assert.Equal(t, cost.Finite(5), cp.Value([]int{0, 0}))
	}

	_, err = gen.Generate(context.Background(), []int{0})
	require.ErrorIs(t, err, scp.ErrStateIDs)
}

func TestCollectionGeneratorCancelled(t *testing.T) {
	_, abs, rem := projections(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &scp.CollectionGenerator{
		Abstractions:      abs,
		Remaining:         rem,
		Orders:            scp.GreedyOrder{},
		MaxOrders:         2,
		MaxNumTransitions: cost.Inf,
		Logger:            nullLogger(),
	}
	cps, err := gen.Generate(ctx, []int{0, 0})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, cps)
}
