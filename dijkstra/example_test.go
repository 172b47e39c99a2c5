// Package dijkstra_test provides examples demonstrating how to use the goal-distance search.
// Each example is runnable via “go test -run Example”, showing both code and expected output.
package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/dijkstra"
)

// ExampleGoalDistances computes goal distances on a small diamond.
//
//	0 -op0(1)-> 1 -op1(4)-> 3
//	0 -op2(2)-> 2 -op3(1)-> 3
func ExampleGoalDistances() {
	// 1) Build the backward graph: incoming arcs per target state.
	graph := [][]dijkstra.Arc{
		nil,
		{{ID: 0, Op: 0, Source: 0}},
		{{ID: 1, Op: 2, Source: 0}},
		{{ID: 2, Op: 1, Source: 1}, {ID: 3, Op: 3, Source: 2}},
	}

	// 2) Use fixed per-operator costs.
	costs := cost.Finites(1, 4, 2, 1)

	// 3) Search backwards from the goal state 3.
	dist, err := dijkstra.GoalDistances(graph, dijkstra.OperatorWeights(costs), dijkstra.WithGoals(3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(dist)
	// Output: [3 4 1 0]
}

// ExampleGoalDistances_lazy resolves weights on demand and reports how often
// the expensive path was taken.
func ExampleGoalDistances_lazy() {
	graph := [][]dijkstra.Arc{
		nil,
		{{ID: 0, Op: 0, Source: 0}, {ID: 1, Op: 1, Source: 2}},
		nil,
	}
	lookups := 0
	weight := func(_ int, a dijkstra.Arc, required cost.Cost) cost.Cost {
		if required.Cmp(cost.Zero) <= 0 {
			return cost.Zero
		}
		lookups++
		if a.Op == 1 {
			return cost.Inf
		}
		return cost.Finite(7)
	}

	dist, _ := dijkstra.GoalDistances(graph, weight, dijkstra.WithGoals(1))
	fmt.Println(dist, lookups)
	// Output: [7 0 inf] 2
}
