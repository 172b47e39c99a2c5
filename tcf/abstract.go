package tcf

import "github.com/katalvlaran/costsat/cost"

// Abstract is the transition cost function of one abstraction.
//
// SI[op]      – op has one cost for every transition it induces.
// SICosts[op] – that cost (the maximum over its transitions otherwise).
// SD[t]       – cost of transition t.
//
// The goal-distance search writes SD with the remaining costs it resolved;
// saturation overwrites all three slices with the saturated values.
type Abstract struct {
	SI      []bool
	SICosts []cost.Cost
	SD      []cost.Cost
}

// NewAbstract returns a zero-valued function for numOps operators and
// numTransitions transitions. Every operator starts state-independent.
func NewAbstract(numOps, numTransitions int) *Abstract {
	a := &Abstract{
		SI:      make([]bool, numOps),
		SICosts: make([]cost.Cost, numOps),
		SD:      make([]cost.Cost, numTransitions),
	}
	for op := range a.SI {
		a.SI[op] = true
	}

	return a
}

// IsNonNegative reports whether no finite cost is negative and no entry is
// cost.NegInf.
func (a *Abstract) IsNonNegative() bool {
	for _, c := range a.SICosts {
		if !c.IsNonNegative() {
			return false
		}
	}
	for _, c := range a.SD {
		if !c.IsNonNegative() {
			return false
		}
	}

	return true
}

// NumStateDependent returns the number of operators whose SI flag is false.
func (a *Abstract) NumStateDependent() int {
	n := 0
	for _, si := range a.SI {
		if !si {
			n++
		}
	}

	return n
}
