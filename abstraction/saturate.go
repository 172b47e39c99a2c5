package abstraction

import (
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/tcf"
)

// SaturatedCosts returns, per operator, the largest h[src] - h[target] over
// its transitions between states with finite h. Operators with a self-loop
// get at least 0 so that no negative cycle arises; operators without any
// transition get cost.NegInf.
func (e *Explicit) SaturatedCosts(h []cost.Cost) []cost.Cost {
	sat := make([]cost.Cost, e.NumOperators())
	for op := range sat {
		sat[op] = cost.NegInf
		if e.hasLoop[op] {
			sat[op] = cost.Zero
		}
	}

	for target, arcs := range e.graph {
		if !h[target].IsFinite() {
			continue
		}
		for _, a := range arcs {
			if !h[a.Source].IsFinite() {
				continue
			}
			sat[a.Op] = cost.Max(sat[a.Op], cost.Diff(h[a.Source], h[target]))
		}
	}

	return sat
}

// SaturateTransitions writes the saturated transition cost function
// preserving h into out.
//
//   - out.SD[t] = h[src] - h[target] for transitions between finite states,
//     cost.NegInf otherwise.
//   - out.SICosts[op] is the largest such value of op (cost.NegInf if none).
//   - out.SI[op] stays true while every transition of op needs the same value.
//
// An operator with a self-loop needs 0 in the looping states: its SICosts are
// raised to at least 0 and it loses SI if it had transitions needing a value
// other than 0. An operator that only loops keeps SI with cost 0.
func (e *Explicit) SaturateTransitions(h []cost.Cost, out *tcf.Abstract) {
	for i := range out.SD {
		out.SD[i] = cost.NegInf
	}
	for op := range out.SI {
		out.SI[op] = true
		out.SICosts[op] = cost.NegInf
	}

	for target, arcs := range e.graph {
		if !h[target].IsFinite() {
			continue
		}
		for _, a := range arcs {
			if !h[a.Source].IsFinite() {
				continue
			}
			needed := cost.Diff(h[a.Source], h[target])
			if out.SI[a.Op] && !out.SICosts[a.Op].IsNegInf() && needed != out.SICosts[a.Op] {
				out.SI[a.Op] = false
			}
			out.SD[a.ID] = needed
			out.SICosts[a.Op] = cost.Max(out.SICosts[a.Op], needed)
		}
	}

	for op := range out.SI {
		if !e.hasLoop[op] {
			continue
		}
		if !out.SICosts[op].IsZero() && !out.SICosts[op].IsNegInf() {
			out.SI[op] = false
		}
		out.SICosts[op] = cost.Max(cost.Zero, out.SICosts[op])
	}
}
