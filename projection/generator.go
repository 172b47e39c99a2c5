package projection

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/task"
)

// Generator creates one projection per configured pattern.
type Generator struct {
	opts []Option
}

var _ abstraction.Generator = (*Generator)(nil)

// NewGenerator returns a projection generator.
func NewGenerator(opts ...Option) *Generator {
	return &Generator{opts: opts}
}

// Generate builds the projections in pattern order.
func (g *Generator) Generate(info *task.Info, b *bdd.Builder) ([]abstraction.Abstraction, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	cfg := DefaultOptions()
	for _, opt := range g.opts {
		opt(&cfg)
	}

	patterns := cfg.Patterns
	if patterns == nil {
		patterns = goalPatterns(info)
	}

	abs := make([]abstraction.Abstraction, 0, len(patterns))
	for i, p := range patterns {
		e, err := New(info, b, p, g.opts...)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		cfg.Logger.WithFields(logrus.Fields{
			"pattern":     p,
			"states":      e.NumStates(),
			"transitions": e.NumTransitions(),
		}).Debug("projection built")
		abs = append(abs, e)
	}

	return abs, nil
}

// goalPatterns returns one singleton pattern per goal variable.
func goalPatterns(info *task.Info) [][]int {
	patterns := make([][]int, 0, len(info.Goal()))
	for _, g := range info.Goal() {
		patterns = append(patterns, []int{g.Var})
	}

	return patterns
}
