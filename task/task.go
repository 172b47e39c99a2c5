package task

import "fmt"

// Validate checks the structural soundness of t: positive domains, facts
// within range, at most one fact per variable in each condition, non-negative
// costs and a complete initial state.
func (t *Task) Validate() error {
	if t == nil {
		return ErrNilTask
	}
	if len(t.Domains) == 0 {
		return ErrNoVariables
	}
	for v, d := range t.Domains {
		if d < 1 {
			return fmt.Errorf("%w: variable %d has domain %d", ErrBadDomain, v, d)
		}
	}

	if len(t.Init) != len(t.Domains) {
		return fmt.Errorf("%w: %d values for %d variables", ErrBadInitialState, len(t.Init), len(t.Domains))
	}
	for v, val := range t.Init {
		if val < 0 || val >= t.Domains[v] {
			return fmt.Errorf("%w: variable %d = %d", ErrBadInitialState, v, val)
		}
	}

	if err := t.checkFacts("goal", t.Goal); err != nil {
		return err
	}
	for i := range t.Operators {
		op := &t.Operators[i]
		if op.Cost < 0 {
			return fmt.Errorf("%w: operator %d (%s) cost=%d", ErrNegativeCost, i, op.Name, op.Cost)
		}
		if err := t.checkFacts(fmt.Sprintf("operator %d precondition", i), op.Pre); err != nil {
			return err
		}
		if err := t.checkFacts(fmt.Sprintf("operator %d effect", i), op.Eff); err != nil {
			return err
		}
	}

	return nil
}

// checkFacts validates one condition.
func (t *Task) checkFacts(where string, facts []Fact) error {
	seen := make(map[int]bool, len(facts))
	for _, f := range facts {
		if f.Var < 0 || f.Var >= len(t.Domains) || f.Value < 0 || f.Value >= t.Domains[f.Var] {
			return fmt.Errorf("%w: %s %d=%d", ErrFactOutOfRange, where, f.Var, f.Value)
		}
		if seen[f.Var] {
			return fmt.Errorf("%w: %s variable %d", ErrDuplicateFact, where, f.Var)
		}
		seen[f.Var] = true
	}

	return nil
}
