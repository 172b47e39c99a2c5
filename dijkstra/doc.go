// Package dijkstra provides the goal-distance search used by every abstract
// transition system of the cost-partitioning core.
//
// Overview:
//
//   - GoalDistances runs Dijkstra backwards from all goal states at once and
//     returns one cost.Cost per abstract state (cost.Inf if no goal is reachable).
//   - Arcs are stored per target state only. Self-loops never appear in the
//     graph because they cannot shorten a goal distance.
//   - Weights are supplied by a callback, so the same search serves fixed
//     per-operator costs (OperatorWeights) and state-dependent remaining costs
//     that are resolved only when a cheap bound is not good enough.
//
// The required argument of Weight:
//
//   - When a state t is expanded with distance d, each arc s→t is offered to
//     the callback together with required = dist(s) - d.
//   - If required ≤ 0 the arc cannot improve s whatever its weight, and a
//     callback may answer 0 without looking anything up.
//   - Otherwise the callback only needs to know whether some weight below
//     required exists; any answer ≥ required leaves dist(s) unchanged.
//
// Error handling (sentinel errors):
//
//   - ErrNilWeight:      the weight callback is nil.
//   - ErrGoalOutOfRange: a goal ID lies outside the graph.
//   - ErrArcOutOfRange:  an arc source lies outside the graph.
//   - ErrNegativeWeight: the callback returned a negative cost or cost.NegInf.
//
// Thread safety:
//
//   - GoalDistances keeps all mutable state in a per-call runner. The graph
//     must not be modified while a search is running.
package dijkstra
