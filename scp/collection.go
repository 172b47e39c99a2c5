package scp

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/tcf"
)

// CollectionGenerator computes up to MaxOrders cost partitionings over the
// same abstractions, one per order drawn from Orders. The remaining pool is
// reinitialized before every order.
type CollectionGenerator struct {
	Abstractions      []abstraction.Abstraction
	Remaining         *tcf.Remaining
	Orders            OrderGenerator
	Saturate          Func
	MaxOrders         int
	MaxNumTransitions cost.Cost
	Logger            logrus.FieldLogger
}

// Generate computes the partitionings for the evaluated abstract states ids.
// Orders that were already used are skipped and still count towards
// MaxOrders. The context is checked between orders; on cancellation the
// partitionings computed so far are returned together with ctx.Err().
func (g *CollectionGenerator) Generate(ctx context.Context, ids []int) ([]*CostPartitioningHeuristic, error) {
	log := g.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	saturate := g.Saturate
	if saturate == nil {
		saturate = Compute
	}
	if err := checkStateIDs(g.Abstractions, ids); err != nil {
		return nil, err
	}

	costs := originalCosts(g.Remaining)
	seen := make(map[string]bool)
	var cps []*CostPartitioningHeuristic
	for i := 0; i < g.MaxOrders; i++ {
		if err := ctx.Err(); err != nil {
			return cps, err
		}
		order, err := g.Orders.NextOrder(g.Abstractions, costs, ids, i)
		if err != nil {
			return cps, fmt.Errorf("order %d: %w", i, err)
		}
		key := fmt.Sprint(order)
		if seen[key] {
			log.WithField("order", i).Debug("duplicate order skipped")
			continue
		}
		seen[key] = true

		g.Remaining.Reinitialize()
		cp, err := saturate(g.Abstractions, order, g.Remaining, ids, g.MaxNumTransitions, WithLogger(log))
		if err != nil {
			return cps, fmt.Errorf("order %d: %w", i, err)
		}
		cps = append(cps, cp)
		log.WithFields(logrus.Fields{
			"order":  i,
			"h":      cp.Value(ids),
			"tables": cp.NumLookupTables(),
		}).Info("cost partitioning computed")
	}

	return cps, nil
}

// originalCosts returns the operator costs of the task rem was built for.
func originalCosts(rem *tcf.Remaining) []cost.Cost {
	info := rem.Builder().Info()
	costs := make([]cost.Cost, info.NumOperators())
	for op := range costs {
		costs[op] = cost.Finite(info.OperatorCost(op))
	}

	return costs
}
