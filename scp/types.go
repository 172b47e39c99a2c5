// Package scp computes saturated cost partitionings over a collection of
// abstractions.
//
// For every abstraction in a given order the driver computes goal distances
// under the costs still left in a tcf.Remaining pool, derives the saturated
// cost function that preserves them and hands only the rest of the budget to
// the next abstraction. The per-abstraction goal distances form a
// CostPartitioningHeuristic; summing them is admissible. Several orders yield
// several partitionings whose maximum is the Heuristic.
//
// Abstractions with more than MaxNumTransitions transitions are saturated
// state-independently (one scalar per operator); all others are saturated per
// transition, which lets the pool keep state-dependent remaining costs.
//
// Saturators:
//
//	– All:       preserve the goal distances of every abstract state.
//	– Perim:     cap every finite distance at the distance of the evaluated
//	             state first, which saturates less.
//	– PerimStar: Perim, then All on the costs Perim left over; the two
//	             partitionings are added.
//
// Orders are produced by an injected OrderGenerator: Default, Reverse, Random
// (seeded) or Greedy (h-value per unit of stolen cost).
//
// Heuristic is computed offline, for the initial state only. OnlineHeuristic
// keeps computing partitionings during the search, for every Interval-th
// evaluated state, and keeps those that raise the estimate of that state.
//
// Errors (sentinel):
//
//	– ErrNoAbstractions   if the driver is called without abstractions.
//	– ErrBadOrder         if an order is not a permutation of the abstractions.
//	– ErrStateIDs         if the evaluated abstract states do not match.
//	– ErrUnknownSaturator if a saturator name is not recognized.
//	– ErrUnknownOrders    if an order generator name is not recognized.
//	– ErrInvalidConfig    if a Config fails validation.
//	– ErrFunctions        if abstraction functions do not match the abstractions.
package scp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/abstraction"
	"github.com/katalvlaran/costsat/cost"
	"github.com/katalvlaran/costsat/tcf"
)

// Sentinel errors.
var (
	// ErrNoAbstractions indicates an empty abstraction collection.
	ErrNoAbstractions = errors.New("scp: no abstractions")

	// ErrBadOrder indicates an order that is not a permutation.
	ErrBadOrder = errors.New("scp: order is not a permutation of the abstractions")

	// ErrStateIDs indicates a missing or out-of-range abstract state ID.
	ErrStateIDs = errors.New("scp: abstract state IDs do not match the abstractions")

	// ErrUnknownSaturator indicates an unrecognized saturator name.
	ErrUnknownSaturator = errors.New("scp: unknown saturator")

	// ErrUnknownOrders indicates an unrecognized order generator name.
	ErrUnknownOrders = errors.New("scp: unknown order generator")

	// ErrInvalidConfig indicates a configuration that failed validation.
	ErrInvalidConfig = errors.New("scp: invalid config")

	// ErrFunctions indicates one abstraction function missing per abstraction.
	ErrFunctions = errors.New("scp: abstraction functions do not match the abstractions")
)

// Saturator selects how much of the goal distances a partitioning preserves.
type Saturator int

const (
	// All preserves the goal distances of all abstract states.
	All Saturator = iota
	// Perim preserves distances up to the one of the evaluated state.
	Perim
	// PerimStar runs Perim and then All with the remaining costs.
	PerimStar
)

var saturatorNames = [...]string{All: "all", Perim: "perim", PerimStar: "perimstar"}

// String returns the configuration name of s.
func (s Saturator) String() string {
	if s < 0 || int(s) >= len(saturatorNames) {
		return fmt.Sprintf("Saturator(%d)", int(s))
	}

	return saturatorNames[s]
}

// ParseSaturator maps a configuration name to a Saturator.
func ParseSaturator(name string) (Saturator, error) {
	for s, n := range saturatorNames {
		if strings.EqualFold(n, name) {
			return Saturator(s), nil
		}
	}

	return All, fmt.Errorf("%w: %q", ErrUnknownSaturator, name)
}

// Func returns the driver implementing s.
func (s Saturator) Func() Func {
	switch s {
	case Perim:
		return ComputePerim
	case PerimStar:
		return ComputePerimstar
	default:
		return Compute
	}
}

// Func computes one cost partitioning over abs in the given order, drawing
// costs from rem. ids[i] is the abstract state of the evaluated concrete
// state in abs[i]; Compute ignores it.
type Func func(abs []abstraction.Abstraction, order []int, rem *tcf.Remaining,
	ids []int, maxNumTransitions cost.Cost, opts ...Option) (*CostPartitioningHeuristic, error)

// Options configures the driver and Build.
//
// Logger     – receives per-abstraction debug and per-order info entries.
// Registerer – where Build registers the remaining-pool metrics; nil disables them.
type Options struct {
	Logger     logrus.FieldLogger
	Registerer prometheus.Registerer
}

// Option represents a functional option for the driver and Build.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRegisterer makes Build register tcf metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = reg }
}

// DefaultOptions returns the logrus standard logger and no metrics.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

func applyOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
