package projection

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/task"
)

// Hash is the perfect hash function of a pattern. It is the abstraction
// function of a projection.
type Hash struct {
	pattern     []int
	multipliers []int
	domains     []int
}

var _ abstraction.Function = (*Hash)(nil)

// newHash sorts and deduplicates pattern and computes its multipliers.
func newHash(info *task.Info, pattern []int, maxStates int) (*Hash, int, error) {
	if len(pattern) == 0 {
		return nil, 0, ErrEmptyPattern
	}
	vars := append([]int(nil), pattern...)
	sort.Ints(vars)
	uniq := vars[:0]
	for i, v := range vars {
		if v < 0 || v >= info.NumVariables() {
			return nil, 0, fmt.Errorf("%w: %d", ErrVariableOutOfRange, v)
		}
		if i == 0 || v != vars[i-1] {
			uniq = append(uniq, v)
		}
	}

	h := &Hash{pattern: uniq}
	n := 1
	for _, v := range uniq {
		d := info.DomainSize(v)
		if n > maxStates/d {
			return nil, 0, fmt.Errorf("%w: pattern %v exceeds %d states", ErrTooManyStates, uniq, maxStates)
		}
		h.multipliers = append(h.multipliers, n)
		h.domains = append(h.domains, d)
		n *= d
	}

	return h, n, nil
}

// Pattern returns the sorted pattern variables. Do not modify.
func (h *Hash) Pattern() []int { return h.pattern }

// AbstractStateID returns the hash of s restricted to the pattern.
func (h *Hash) AbstractStateID(s task.State) int {
	id := 0
	for i, v := range h.pattern {
		id += s[v] * h.multipliers[i]
	}

	return id
}

// value returns the value of the i-th pattern variable in abstract state id.
func (h *Hash) value(id, i int) int {
	return id / h.multipliers[i] % h.domains[i]
}

// facts returns the pattern facts of abstract state id.
func (h *Hash) facts(id int) []task.Fact {
	facts := make([]task.Fact, len(h.pattern))
	for i, v := range h.pattern {
		facts[i] = task.Fact{Var: v, Value: h.value(id, i)}
	}

	return facts
}

// regressor describes projected states and transitions as BDD sets.
type regressor struct {
	hash *Hash
	b    *bdd.Builder
}

func (r regressor) StateSet(id int) bdd.Set { return r.b.Facts(r.hash.facts(id)) }

func (r regressor) TransitionSet(t abstraction.Transition) bdd.Set {
	return r.b.Regression(r.hash.facts(t.Src), t.Op)
}

// New builds the projection of info onto pattern.
func New(info *task.Info, b *bdd.Builder, pattern []int, opts ...Option) (*abstraction.Explicit, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	if b == nil {
		return nil, ErrNilBuilder
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	h, numStates, err := newHash(info, pattern, cfg.MaxStates)
	if err != nil {
		return nil, err
	}
	sys := enumerate(info, h, numStates)

	return abstraction.NewExplicit(info, b, sys, h, regressor{hash: h, b: b})
}

// enumerate walks every abstract state and applies every operator that
// changes a pattern variable. Self-loops are decided per operator before the
// walk; operators without effects on the pattern only loop.
func enumerate(info *task.Info, h *Hash, numStates int) abstraction.System {
	sb := abstraction.NewSystemBuilder(numStates, info.NumOperators())
	sb.SetInitialState(h.AbstractStateID(info.InitialState()))

	var active []int
	for op := 0; op < info.NumOperators(); op++ {
		if info.OperatorInducesSelfLoop(h.pattern, op) {
			sb.AddSelfLoop(op)
		}
		if info.OperatorIsActive(h.pattern, op) {
			active = append(active, op)
		}
	}

	for id := 0; id < numStates; id++ {
		if isGoal(info, h, id) {
			sb.AddGoalState(id)
		}
		for _, op := range active {
			target, ok := successor(info, h, id, op)
			if ok {
				sb.AddTransition(op, id, target)
			}
		}
	}

	return sb.System()
}

// successor applies op to abstract state id. It reports false if a
// precondition on a pattern variable is violated.
func successor(info *task.Info, h *Hash, id, op int) (int, bool) {
	target := id
	for i, v := range h.pattern {
		val := h.value(id, i)
		if pre, ok := info.PreconditionValue(op, v); ok && pre != val {
			return 0, false
		}
		if eff, ok := info.EffectValue(op, v); ok {
			target += (eff - val) * h.multipliers[i]
		}
	}

	return target, true
}

// isGoal reports whether abstract state id satisfies the goal facts on
// pattern variables.
func isGoal(info *task.Info, h *Hash, id int) bool {
	for _, g := range info.Goal() {
		i := sort.SearchInts(h.pattern, g.Var)
		if i < len(h.pattern) && h.pattern[i] == g.Var && h.value(id, i) != g.Value {
			return false
		}
	}

	return true
}
