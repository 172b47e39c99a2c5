// Package tcf implements the transition cost functions of saturated cost
// partitioning:
//
//   - StateCostFunction: an ordered map from cost values to disjoint sets of
//     concrete states (buckets).
//   - Abstract: the per-abstraction record of which operators have a
//     state-independent saturated cost and what each transition costs.
//   - Remaining: the shared pool holding, per operator, how much of the
//     original cost is still unallocated in every concrete state.
//
// Completeness: every StateCostFunction stored in a Remaining pool covers the
// whole state space with pairwise disjoint, non-empty buckets. When
// completeness checks are enabled a violated partition is a logic error in the
// saturation math and the pool panics.
//
// Errors (sentinel):
//
//	– ErrNilInfo            if a nil *task.Info is passed to NewRemaining.
//	– ErrNilBuilder         if a nil *bdd.Builder is passed to NewRemaining.
//	– ErrOverlappingBuckets if a state lies in two buckets.
//	– ErrEmptyBucket        if a bucket holds no state.
//	– ErrIncomplete         if the buckets do not cover every state.
//	– ErrRegistration       if NewMetrics cannot register a collector.
package tcf

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/costsat/bdd"
	"github.com/katalvlaran/costsat/cost"
)

// Sentinel errors.
var (
	// ErrNilInfo indicates that a nil *task.Info was passed to NewRemaining.
	ErrNilInfo = errors.New("tcf: task info is nil")

	// ErrNilBuilder indicates that a nil *bdd.Builder was passed to NewRemaining.
	ErrNilBuilder = errors.New("tcf: bdd builder is nil")

	// ErrOverlappingBuckets indicates that a state is contained in several buckets.
	ErrOverlappingBuckets = errors.New("tcf: state contained in several buckets")

	// ErrEmptyBucket indicates that a bucket contains no state.
	ErrEmptyBucket = errors.New("tcf: empty bucket")

	// ErrIncomplete indicates that the buckets do not cover the state space.
	ErrIncomplete = errors.New("tcf: buckets do not cover the state space")

	// ErrRegistration indicates a collector that could neither be registered
	// nor replaced by an equal one already registered.
	ErrRegistration = errors.New("tcf: metrics registration failed")
)

// Bucket assigns one cost value to a set of concrete states.
type Bucket struct {
	Cost   cost.Cost
	States bdd.Set
}

// Options configures a Remaining pool.
//
// CompletenessChecks – verify every touched operator after each mutation.
// Metrics            – optional Prometheus collectors.
// Logger             – destination of LogStatistics.
type Options struct {
	CompletenessChecks bool
	Metrics            *Metrics
	Logger             logrus.FieldLogger
}

// Option represents a functional option for configuring a Remaining pool.
type Option func(*Options)

// WithCompletenessChecks enables partition verification after each mutation.
func WithCompletenessChecks(enabled bool) Option {
	return func(o *Options) { o.CompletenessChecks = enabled }
}

// WithMetrics attaches Prometheus collectors created by NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithLogger sets the logger used by LogStatistics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns checks off, no metrics and the logrus standard logger.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

// Statistics are the counters reported by LogStatistics.
type Statistics struct {
	Evaluations      int
	Subtractions     int
	UselessOperators int
}
