package scp

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/task"
)

// OnlineHeuristic improves a Heuristic while it is being evaluated. For
// every Interval-th evaluated state it reinitializes the remaining pool,
// draws an order for the abstract states of that state and saturates. The
// new partitioning is kept only if it raises the estimate of the state.
//
// Improvement stops for good once MaxTime has passed since construction or
// the stored partitionings hold MaxSize goal distances. OnlineHeuristic is
// not safe for concurrent use.
type OnlineHeuristic struct {
	gen      *CollectionGenerator
	h        *Heuristic
	costs    []cost.Cost
	interval int
	maxTime  time.Duration
	maxSize  int
	log      logrus.FieldLogger

	start        time.Time
	improving    bool
	size         int
	numEvaluated int
	numComputed  int
}

// NewOnlineHeuristic returns an online heuristic over gen's abstractions.
// fns[i] maps concrete states into gen.Abstractions[i]; cps seeds the
// heuristic and may be empty. gen.MaxOrders is ignored.
func NewOnlineHeuristic(gen *CollectionGenerator, fns []abstraction.Function,
	cfg OnlineConfig, cps []*CostPartitioningHeuristic) (*OnlineHeuristic, error) {
	switch {
	case gen == nil || len(gen.Abstractions) == 0:
		return nil, ErrNoAbstractions
	case len(fns) != len(gen.Abstractions):
		return nil, fmt.Errorf("%w: %d functions for %d abstractions", ErrFunctions, len(fns), len(gen.Abstractions))
	case cfg.Interval < 1:
		return nil, fmt.Errorf("%w: online interval %d", ErrInvalidConfig, cfg.Interval)
	case cfg.MaxTime < 0 || cfg.MaxSize < 0:
		return nil, fmt.Errorf("%w: negative online limit", ErrInvalidConfig)
	}
	log := gen.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	o := &OnlineHeuristic{
		gen:       gen,
		h:         NewHeuristic(fns, append([]*CostPartitioningHeuristic(nil), cps...)),
		costs:     originalCosts(gen.Remaining),
		interval:  cfg.Interval,
		maxTime:   cfg.MaxTime,
		maxSize:   cfg.MaxSize,
		log:       log,
		start:     time.Now(),
		improving: true,
	}
	for _, cp := range cps {
		o.size += cp.NumHeuristicValues()
	}
	if o.maxSize > 0 && o.size >= o.maxSize {
		o.stop("size limit reached")
	}

	return o, nil
}

// Evaluate returns the estimate of s, computing a new partitioning first if
// s is due. cost.Inf marks a dead end.
func (o *OnlineHeuristic) Evaluate(s task.State) cost.Cost {
	ids := o.h.AbstractStateIDs(s)
	best := o.h.value(ids)
	if !best.IsInf() && o.improving && o.numEvaluated%o.interval == 0 {
		best = o.improve(ids, best)
	}
	o.numEvaluated++

	return best
}

// improve computes one partitioning for ids and keeps it if it beats best.
func (o *OnlineHeuristic) improve(ids []int, best cost.Cost) cost.Cost {
	if o.maxTime > 0 && time.Since(o.start) >= o.maxTime {
		o.stop("time limit reached")
		return best
	}

	order, err := o.gen.Orders.NextOrder(o.gen.Abstractions, o.costs, ids, o.numComputed)
	if err != nil {
		o.stop(fmt.Sprintf("order: %v", err))
		return best
	}
	saturate := o.gen.Saturate
	if saturate == nil {
		saturate = Compute
	}
	o.gen.Remaining.Reinitialize()
	cp, err := saturate(o.gen.Abstractions, order, o.gen.Remaining, ids, o.gen.MaxNumTransitions, WithLogger(o.log))
	if err != nil {
		o.stop(fmt.Sprintf("saturation: %v", err))
		return best
	}
	o.numComputed++

	h := cp.Value(ids)
	o.log.WithFields(logrus.Fields{
		"evaluated": o.numEvaluated,
		"h":         h,
		"best":      best,
	}).Debug("online cost partitioning computed")
	if !best.Less(h) {
		return best
	}

	o.h.cps = append(o.h.cps, cp)
	o.size += cp.NumHeuristicValues()
	if o.maxSize > 0 && o.size >= o.maxSize {
		o.stop("size limit reached")
	}

	return h
}

func (o *OnlineHeuristic) stop(reason string) {
	o.improving = false
	o.log.WithFields(logrus.Fields{
		"reason":          reason,
		"evaluated":       o.numEvaluated,
		"computed":        o.numComputed,
		"partitionings":   o.h.NumCostPartitionings(),
		"heuristicValues": o.size,
	}).Info("online improvement stopped")
}

// Improving reports whether later evaluations may still add partitionings.
func (o *OnlineHeuristic) Improving() bool { return o.improving }

// NumEvaluatedStates returns the number of Evaluate calls.
func (o *OnlineHeuristic) NumEvaluatedStates() int { return o.numEvaluated }

// NumComputed returns the number of partitionings computed online, kept or not.
func (o *OnlineHeuristic) NumComputed() int { return o.numComputed }

// NumCostPartitionings returns the number of stored partitionings.
func (o *OnlineHeuristic) NumCostPartitionings() int { return o.h.NumCostPartitionings() }

// NumHeuristicValues returns the number of stored goal distances.
func (o *OnlineHeuristic) NumHeuristicValues() int { return o.size }

