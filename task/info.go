package task

// Info is the read-only view of a validated Task shared by the BDD builder,
// abstractions and the remaining cost pool.
type Info struct {
	task *Task

	// pre[op][var] and eff[op][var] hold the condition value or none.
	pre [][]int
	eff [][]int
}

// NewInfo validates t and precomputes its lookup tables.
// The task must not be mutated afterwards.
func NewInfo(t *Task) (*Info, error) {
	if t == nil {
		return nil, ErrNilTask
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	numVars := len(t.Domains)
	info := &Info{
		task: t,
		pre:  make([][]int, len(t.Operators)),
		eff:  make([][]int, len(t.Operators)),
	}
	for op := range t.Operators {
		info.pre[op] = table(numVars, t.Operators[op].Pre)
		info.eff[op] = table(numVars, t.Operators[op].Eff)
	}

	return info, nil
}

// table spreads facts over a dense per-variable slice.
func table(numVars int, facts []Fact) []int {
	row := make([]int, numVars)
	for v := range row {
		row[v] = none
	}
	for _, f := range facts {
		row[f.Var] = f.Value
	}

	return row
}

// Task returns the underlying task. Do not modify.
func (i *Info) Task() *Task { return i.task }

// NumVariables returns the number of task variables.
func (i *Info) NumVariables() int { return len(i.task.Domains) }

// NumOperators returns the number of operators.
func (i *Info) NumOperators() int { return len(i.task.Operators) }

// DomainSize returns the number of values of variable v.
func (i *Info) DomainSize(v int) int { return i.task.Domains[v] }

// OperatorName returns the name of op.
func (i *Info) OperatorName(op int) string { return i.task.Operators[op].Name }

// OperatorCost returns the original cost of op.
func (i *Info) OperatorCost(op int) int { return i.task.Operators[op].Cost }

// OperatorCosts returns the original costs of all operators.
func (i *Info) OperatorCosts() []int {
	costs := make([]int, len(i.task.Operators))
	for op := range i.task.Operators {
		costs[op] = i.task.Operators[op].Cost
	}

	return costs
}

// HasPrecondition reports whether op has a precondition on v.
func (i *Info) HasPrecondition(op, v int) bool { return i.pre[op][v] != none }

// HasEffect reports whether op has an effect on v.
func (i *Info) HasEffect(op, v int) bool { return i.eff[op][v] != none }

// Mentions reports whether op has a precondition or an effect on v.
func (i *Info) Mentions(op, v int) bool {
	return i.pre[op][v] != none || i.eff[op][v] != none
}

// PreconditionValue returns the value op requires for v and whether it requires one.
func (i *Info) PreconditionValue(op, v int) (int, bool) {
	val := i.pre[op][v]
	return val, val != none
}

// EffectValue returns the value op assigns to v and whether it assigns one.
func (i *Info) EffectValue(op, v int) (int, bool) {
	val := i.eff[op][v]
	return val, val != none
}

// Preconditions returns the precondition facts of op. Do not modify.
func (i *Info) Preconditions(op int) []Fact { return i.task.Operators[op].Pre }

// Goal returns the goal facts. Do not modify.
func (i *Info) Goal() []Fact { return i.task.Goal }

// InitialState returns a copy of the initial state.
func (i *Info) InitialState() State {
	return append(State(nil), i.task.Init...)
}

// OperatorIsActive reports whether op changes some variable of pattern.
func (i *Info) OperatorIsActive(pattern []int, op int) bool {
	for _, v := range pattern {
		if i.HasEffect(op, v) {
			return true
		}
	}

	return false
}

// OperatorInducesSelfLoop reports whether op leaves some abstract state of
// the projection onto pattern unchanged. This fails only when op requires
// a value on a pattern variable and then assigns a different one.
func (i *Info) OperatorInducesSelfLoop(pattern []int, op int) bool {
	for _, v := range pattern {
		pre, eff := i.pre[op][v], i.eff[op][v]
		if pre != none && eff != none && pre != eff {
			return false
		}
	}

	return true
}
