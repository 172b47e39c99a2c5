package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costsat/cost"
)

func TestCost_Order(t *testing.T) {
	ordered := []cost.Cost{cost.NegInf, cost.Finite(-3), cost.Zero, cost.Finite(7), cost.Inf}
	for i := range ordered {
		for j := range ordered {
			assert.Equal(t, i < j, ordered[i].Less(ordered[j]), "%s < %s", ordered[i], ordered[j])
			assert.Equal(t, i == j, ordered[i].Equal(ordered[j]), "%s == %s", ordered[i], ordered[j])
		}
	}
	assert.Equal(t, cost.Inf, cost.Max(cost.Finite(3), cost.Inf))
	assert.Equal(t, cost.NegInf, cost.Min(cost.NegInf, cost.Finite(-100)))
	assert.True(t, cost.Zero.IsZero())
	assert.True(t, cost.Finite(0) == cost.Zero)
}

func TestCost_Add(t *testing.T) {
	cases := []struct {
		a, b, want cost.Cost
	}{
		{cost.Finite(2), cost.Finite(3), cost.Finite(5)},
		{cost.Finite(2), cost.Inf, cost.Inf},
		{cost.Inf, cost.Finite(-2), cost.Inf},
		{cost.NegInf, cost.Inf, cost.NegInf},
		{cost.Finite(4), cost.NegInf, cost.NegInf},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cost.Add(tc.a, tc.b), "%s + %s", tc.a, tc.b)
	}
}

func TestCost_Diff(t *testing.T) {
	assert.Equal(t, cost.Finite(-2), cost.Diff(cost.Finite(3), cost.Finite(5)))
	assert.Equal(t, cost.Inf, cost.Diff(cost.Inf, cost.Finite(5)))
	assert.Panics(t, func() { cost.Diff(cost.Finite(1), cost.Inf) })
}

// LeftSub(a, b) = max(0, a-b) for every a ≥ 0.
func TestCost_LeftSubNonNegative(t *testing.T) {
	for a := 0; a <= 12; a++ {
		for b := -5; b <= 15; b++ {
			got := cost.LeftSub(cost.Finite(a), cost.Finite(b))
			want := a - b
			if want < 0 {
				want = 0
			}
			require.Equal(t, cost.Finite(want), got, "LeftSub(%d, %d)", a, b)
			require.True(t, got.IsNonNegative())
		}
	}
}

func TestCost_LeftSubSentinels(t *testing.T) {
	assert.Equal(t, cost.Inf, cost.LeftSub(cost.Inf, cost.Finite(4)))
	assert.Equal(t, cost.Inf, cost.LeftSub(cost.Inf, cost.Inf))
	assert.Equal(t, cost.Zero, cost.LeftSub(cost.Finite(9), cost.Inf))
	assert.Panics(t, func() { cost.LeftSub(cost.Finite(9), cost.NegInf) })
	assert.Panics(t, func() { cost.LeftSub(cost.Finite(-1), cost.Finite(0)) })
}

func TestCost_IntPanicsOnSentinels(t *testing.T) {
	assert.Equal(t, 42, cost.Finite(42).Int())
	assert.Panics(t, func() { _ = cost.Inf.Int() })
	assert.Panics(t, func() { _ = cost.NegInf.Int() })
}

func TestCost_ParseAndText(t *testing.T) {
	cases := map[string]cost.Cost{
		"17":       cost.Finite(17),
		" -4 ":     cost.Finite(-4),
		"inf":      cost.Inf,
		"Infinity": cost.Inf,
		".inf":     cost.Inf,
		"-inf":     cost.NegInf,
	}
	for in, want := range cases {
		got, err := cost.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := cost.Parse("lots")
	require.ErrorIs(t, err, cost.ErrSyntax)

	var c cost.Cost
	require.NoError(t, c.UnmarshalText([]byte("infinity")))
	assert.True(t, c.IsInf())
	text, err := cost.Finite(-8).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-8", string(text))
}

func TestCost_Finites(t *testing.T) {
	assert.Equal(t, []cost.Cost{cost.Finite(1), cost.Zero, cost.Finite(5)}, cost.Finites(1, 0, 5))
}
