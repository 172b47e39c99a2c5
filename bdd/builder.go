package bdd

import (
	"fmt"
	"math/bits"

	"github.com/dalzilio/rudd"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/task"
)

// Builder creates Sets over the variables of one task.
type Builder struct {
	info   *task.Info
	kernel *rudd.BDD
	log    logrus.FieldLogger

	offset []int // first BDD variable of each task variable
	width  []int // number of BDD variables of each task variable

	facts [][]rudd.Node // facts[v][val], built eagerly
	pre   []*rudd.Node  // precondition cache, one entry per operator
}

// New creates a Builder for the variables of info.
func New(info *task.Info, opts ...Option) (*Builder, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	numVars := info.NumVariables()
	b := &Builder{
		info:   info,
		log:    cfg.Logger,
		offset: make([]int, numVars),
		width:  make([]int, numVars),
		facts:  make([][]rudd.Node, numVars),
		pre:    make([]*rudd.Node, info.NumOperators()),
	}
	total := 0
	for v := 0; v < numVars; v++ {
		b.offset[v] = total
		b.width[v] = encodingWidth(info.DomainSize(v))
		total += b.width[v]
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	// Nodesize ignores values below the minimum table for total variables.
	kernel, err := rudd.New(total, rudd.Nodesize(cfg.NodeSize), rudd.Cachesize(cacheSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKernel, err)
	}
	b.kernel = kernel

	for v := 0; v < numVars; v++ {
		b.facts[v] = make([]rudd.Node, info.DomainSize(v))
		for val := range b.facts[v] {
			b.facts[v][val] = b.encode(v, val)
		}
	}
	if b.kernel.Errored() {
		return nil, fmt.Errorf("%w: %s", ErrKernel, b.kernel.Error())
	}

	return b, nil
}

// defaultCacheSize matches the rudd documentation default.
const defaultCacheSize = 10000

// encodingWidth returns the number of bits needed for a domain of size d.
func encodingWidth(d int) int {
	if d <= 2 {
		return 1
	}
	return bits.Len(uint(d - 1))
}

// encode builds the conjunction of bit literals for v = val.
func (b *Builder) encode(v, val int) rudd.Node {
	n := b.kernel.True()
	for i := 0; i < b.width[v]; i++ {
		if val&(1<<i) != 0 {
			n = b.kernel.And(n, b.kernel.Ithvar(b.offset[v]+i))
		} else {
			n = b.kernel.And(n, b.kernel.NIthvar(b.offset[v]+i))
		}
	}

	return n
}

func (b *Builder) wrap(n rudd.Node) Set { return Set{b: b, n: n} }

// Info returns the task the builder encodes.
func (b *Builder) Info() *task.Info { return b.info }

// One returns the set of all states.
func (b *Builder) One() Set { return b.wrap(b.kernel.True()) }

// Zero returns the empty set.
func (b *Builder) Zero() Set { return b.wrap(b.kernel.False()) }

// Fact returns the set of states with v = val.
func (b *Builder) Fact(v, val int) Set { return b.wrap(b.facts[v][val]) }

// Var returns the set of states whose value of v lies in values.
func (b *Builder) Var(v int, values []int) Set {
	n := b.kernel.False()
	for _, val := range values {
		n = b.kernel.Or(n, b.facts[v][val])
	}

	return b.wrap(n)
}

// Facts returns the set of states satisfying every fact.
func (b *Builder) Facts(facts []task.Fact) Set {
	n := b.kernel.True()
	for _, f := range facts {
		n = b.kernel.And(n, b.facts[f.Var][f.Value])
	}

	return b.wrap(n)
}

// State returns the singleton set {s}.
func (b *Builder) State(s task.State) Set {
	n := b.kernel.True()
	for v, val := range s {
		n = b.kernel.And(n, b.facts[v][val])
	}

	return b.wrap(n)
}

// Precondition returns the set of states in which op is applicable.
// Results are cached per operator.
func (b *Builder) Precondition(op int) Set {
	if b.pre[op] == nil {
		n := b.Facts(b.info.Preconditions(op)).n
		b.pre[op] = &n
	}

	return b.wrap(*b.pre[op])
}

// Regression returns the states that satisfy facts and in which op is
// applicable.
func (b *Builder) Regression(facts []task.Fact, op int) Set {
	return b.Facts(facts).And(b.Precondition(op))
}

// Intersect reports whether x and y share a state.
func (b *Builder) Intersect(x, y Set) bool {
	return !x.And(y).IsZero()
}

// IsApplicable reports whether op is applicable in some state of x.
func (b *Builder) IsApplicable(x Set, op int) bool {
	return b.Intersect(x, b.Precondition(op))
}

// Contains reports whether the concrete state s belongs to x.
func (b *Builder) Contains(x Set, s task.State) bool {
	return b.Intersect(x, b.State(s))
}

// Err reports a rudd kernel failure, if any.
func (b *Builder) Err() error {
	if b.kernel.Errored() {
		return fmt.Errorf("%w: %s", ErrKernel, b.kernel.Error())
	}
	return nil
}

// Stats returns the rudd kernel statistics.
func (b *Builder) Stats() string { return b.kernel.Stats() }

// LogStatistics writes the kernel statistics at info level.
func (b *Builder) LogStatistics() {
	b.log.WithField("component", "bdd").Info(b.kernel.Stats())
}
