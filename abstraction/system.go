package abstraction

// System is the raw transition system an Explicit abstraction is built from.
//
// Transitions must carry dense unique IDs and must not contain self-loops;
// SelfLoops[op] records whether op leaves some state unchanged.
type System struct {
	NumStates    int
	InitialState int
	GoalStates   []int
	Transitions  []Transition
	SelfLoops    []bool
}

// SystemBuilder collects transitions while enumerating an abstract state
// space and assigns dense transition IDs.
type SystemBuilder struct {
	sys  System
	seen map[[3]int]bool
}

// NewSystemBuilder returns a builder for numStates states and numOps operators.
func NewSystemBuilder(numStates, numOps int) *SystemBuilder {
	return &SystemBuilder{
		sys: System{
			NumStates: numStates,
			SelfLoops: make([]bool, numOps),
		},
		seen: make(map[[3]int]bool),
	}
}

// SetInitialState sets the initial state.
func (sb *SystemBuilder) SetInitialState(id int) { sb.sys.InitialState = id }

// AddGoalState marks id as a goal.
func (sb *SystemBuilder) AddGoalState(id int) { sb.sys.GoalStates = append(sb.sys.GoalStates, id) }

// AddSelfLoop records that op leaves some state unchanged.
func (sb *SystemBuilder) AddSelfLoop(op int) { sb.sys.SelfLoops[op] = true }

// AddTransition records that op leads from src to target. A self-loop only
// sets the operator's flag and repeated transitions are ignored.
func (sb *SystemBuilder) AddTransition(op, src, target int) {
	if src == target {
		sb.AddSelfLoop(op)
		return
	}
	key := [3]int{op, src, target}
	if sb.seen[key] {
		return
	}
	sb.seen[key] = true
	sb.sys.Transitions = append(sb.sys.Transitions, Transition{
		ID:     len(sb.sys.Transitions),
		Op:     op,
		Src:    src,
		Target: target,
	})
}

// System returns the collected transition system.
func (sb *SystemBuilder) System() System { return sb.sys }
