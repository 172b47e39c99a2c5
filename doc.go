// Package costsat computes saturated cost partitionings: admissible goal
// distance estimates for classical planning tasks built from several
// abstractions that share the task's operator costs without counting any cost
// twice.
//
// What is inside?
//
//	• cost/         integer costs with ±∞ and the left-saturating difference
//	• task/         finite-domain planning tasks and per-operator lookups
//	• bdd/          sets of concrete states over a BDD engine (rudd)
//	• dijkstra/     lazy backward goal-distance search with pluggable weights
//	• tcf/          remaining cost functions, per operator and per state set
//	• abstraction/  explicit abstract transition systems and their saturation
//	• projection/   pattern database abstractions
//	• splittree/    Cartesian abstractions kept as a refinement tree
//	• scp/          the driver, orders, collections and the final heuristic
//
// A cost partitioning walks the abstractions in some order. Each abstraction
// computes its goal distances under the costs still left over, keeps only the
// part of every operator's (or transition's) cost that it needs to preserve
// those distances, and hands the rest on to the next abstraction:
//
//	remaining ──► A₀ ──h₀──► remaining − sat₀ ──► A₁ ──h₁──► …
//	h(s) = Σ hᵢ(αᵢ(s))
//
// Several orders give several partitionings; the heuristic is their maximum.
// scp.OnlineHeuristic keeps adding partitionings for states met during search.
//
// Quick start:
//
//	res, err := scp.Build(ctx, t, scp.DefaultConfig(), nil)
//	if err != nil { … }
//	h := res.Heuristic.Evaluate(task.State(t.Init))
//
//	go get github.com/katalvlaran/costsat
package costsat
