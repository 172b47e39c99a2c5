// Package dijkstra defines core types and configuration options for the
// backward multi-source Dijkstra search that computes abstract goal distances.
//
// The search runs on a backward graph: graph[t] lists the incoming arcs of
// abstract state t, each labelled with a dense transition ID, an operator and
// the source state. All goal states start at distance 0 and distances are
// propagated from targets to sources.
//
// Arc weights are resolved lazily through a Weight callback. The callback
// sees how much cost the arc would at least need to improve its source,
// so state-dependent callers can skip expensive lookups when a cheap bound
// already settles the question.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = |states|, E = |arcs|
//	   • Each state is expanded once per strictly improving label.
//	   • Each arc is resolved once per expansion of its target.
//	– Space: O(V + E)
//	   • O(V) for the distance slice.
//	   • O(E) in the priority queue in the worst case (lazy decrease-key).
//
// Options:
//
//	– Goals: IDs of the goal states (distance 0). No goals means every
//	         distance is cost.Inf.
//
// Errors (sentinel):
//
//	– ErrNilWeight       if the weight callback is nil.
//	– ErrGoalOutOfRange  if a goal ID is outside [0, len(graph)).
//	– ErrArcOutOfRange   if an arc names a source outside [0, len(graph)).
//	– ErrNegativeWeight  if the weight callback returns a negative cost.
//
// Example usage:
//
//	dist, err := dijkstra.GoalDistances(
//	    graph,
//	    dijkstra.OperatorWeights(costs),
//	    dijkstra.WithGoals(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("h(0) = %s\n", dist[0])
package dijkstra

import (
	"errors"

	"github.com/katalvlaran/costsat/cost"
)

// Sentinel errors returned by GoalDistances.
var (
	// ErrNilWeight indicates that a nil Weight callback was passed.
	ErrNilWeight = errors.New("dijkstra: weight function is nil")

	// ErrGoalOutOfRange indicates a goal ID outside the graph.
	ErrGoalOutOfRange = errors.New("dijkstra: goal state out of range")

	// ErrArcOutOfRange indicates an arc whose source lies outside the graph.
	ErrArcOutOfRange = errors.New("dijkstra: arc source out of range")

	// ErrNegativeWeight indicates that the weight callback produced a negative cost.
	ErrNegativeWeight = errors.New("dijkstra: negative arc weight encountered")
)

// Arc is an incoming transition of a state in a backward graph.
//
// ID     – dense transition ID, used to index per-transition cost arrays.
// Op     – operator that labels the transition.
// Source – state the transition starts in.
type Arc struct {
	ID     int
	Op     int
	Source int
}

// Weight returns the cost of traversing arc backwards from target.
//
// required is dist(arc.Source) - dist(target) under the current labels
// (cost.Inf while the source is unlabelled). A weight ≥ required cannot
// improve the source, so callbacks may stop searching for cheaper values
// once they reach it. Returning cost.Inf makes the arc impassable.
type Weight func(target int, arc Arc, required cost.Cost) cost.Cost

// OperatorWeights returns a Weight that looks up costs[arc.Op].
func OperatorWeights(costs []cost.Cost) Weight {
	return func(_ int, arc Arc, _ cost.Cost) cost.Cost {
		return costs[arc.Op]
	}
}

// Options configures GoalDistances.
//
// Goals – IDs of the states whose distance is 0.
type Options struct {
	Goals []int
}

// Option represents a functional option for configuring GoalDistances.
type Option func(*Options)

// WithGoals appends goal state IDs. Duplicates are harmless.
func WithGoals(ids ...int) Option {
	return func(o *Options) {
		o.Goals = append(o.Goals, ids...)
	}
}

// DefaultOptions returns an Options struct without goals.
func DefaultOptions() Options {
	return Options{}
}
