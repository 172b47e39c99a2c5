package scp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/projection"
	"github.com/katalvlaran/costsat/task"
	"github.com/katalvlaran/costsat/tcf"
)

// Result is the outcome of Build. Online is set only when cfg.Online is
// enabled; it starts from the partitionings of Heuristic and owns the
// remaining pool from then on.
type Result struct {
	Heuristic  *Heuristic
	Online     *OnlineHeuristic
	Statistics tcf.Statistics
}

// Build runs the whole pipeline for t: it generates the abstractions, computes
// cfg.MaxOrders cost partitionings for the initial state and combines them
// into a Heuristic. Without generators one projection per goal variable is
// used.
//
// The logger defaults to one at cfg.LogLevel; WithLogger overrides it.
func Build(ctx context.Context, t *task.Task, cfg Config, gens []abstraction.Generator, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := Options{Logger: cfg.logger()}
	for _, opt := range opts {
		opt(&o)
	}
	saturator, err := ParseSaturator(cfg.Saturator)
	if err != nil {
		return nil, err
	}
	orders, err := ParseOrders(cfg.Orders, cfg.Seed)
	if err != nil {
		return nil, err
	}

	info, err := task.NewInfo(t)
	if err != nil {
		return nil, fmt.Errorf("scp: %w", err)
	}
	b, err := bdd.New(info,
		bdd.WithNodeSize(cfg.BDDNodeSize),
		bdd.WithCacheSize(cfg.BDDCacheSize),
		bdd.WithLogger(o.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scp: %w", err)
	}

	if len(gens) == 0 {
		gens = []abstraction.Generator{projection.NewGenerator(projection.WithLogger(o.Logger))}
	}
	var abs []abstraction.Abstraction
	for i, g := range gens {
		generated, err := g.Generate(info, b)
		if err != nil {
			return nil, fmt.Errorf("scp: generator %d: %w", i, err)
		}
		abs = append(abs, generated...)
	}
	if len(abs) == 0 {
		return nil, ErrNoAbstractions
	}

	remOpts := []tcf.Option{
		tcf.WithCompletenessChecks(cfg.CompletenessChecks),
		tcf.WithLogger(o.Logger),
	}
	if o.Registerer != nil {
		m, err := tcf.NewMetrics(o.Registerer)
		if err != nil {
			return nil, fmt.Errorf("scp: %w", err)
		}
		remOpts = append(remOpts, tcf.WithMetrics(m))
	}
	rem, err := tcf.NewRemaining(info, b, remOpts...)
	if err != nil {
		return nil, fmt.Errorf("scp: %w", err)
	}

	start := info.InitialState()
	ids := make([]int, len(abs))
	for i, a := range abs {
		ids[i] = a.AbstractStateID(start)
	}

	gen := &CollectionGenerator{
		Abstractions:      abs,
		Remaining:         rem,
		Orders:            orders,
		Saturate:          saturator.Func(),
		MaxOrders:         cfg.MaxOrders,
		MaxNumTransitions: cfg.MaxNumTransitions,
		Logger:            o.Logger,
	}
	cps, err := gen.Generate(ctx, ids)
	if err != nil {
		return nil, err
	}
	rem.LogStatistics()
	b.LogStatistics()
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("scp: %w", err)
	}

	fns := make([]abstraction.Function, len(abs))
	for i, a := range abs {
		fn, ok := a.ExtractFunction()
		if !ok {
			return nil, fmt.Errorf("scp: abstraction %d: function already extracted", i)
		}
		fns[i] = fn
	}

	res := &Result{
		Heuristic:  NewHeuristic(fns, cps),
		Statistics: rem.Statistics(),
	}
	if cfg.Online.Enabled {
		res.Online, err = NewOnlineHeuristic(gen, fns, cfg.Online, cps)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}
