// Package bdd builds canonical boolean-set representations of concrete
// planning states on top of github.com/dalzilio/rudd.
//
// Every task variable v with domain size d is binary encoded over
// max(1, ⌈log2 d⌉) consecutive BDD variables. A Set is a BDD node tied to the
// Builder that created it; all Sets combined in one expression must come from
// the same Builder.
//
// The universe One also contains bit patterns that encode no legal value of a
// non-power-of-two domain. Every set built from facts excludes them, and the
// cost-partitioning code only ever compares partitions against One, so the
// surplus patterns never change an answer.
//
// Builder is not safe for concurrent use: rudd shares its node tables and
// operation caches across all nodes.
package bdd

import (
	"errors"

	"github.com/dalzilio/rudd"
	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by New.
var (
	// ErrNilInfo indicates that a nil *task.Info was passed to New.
	ErrNilInfo = errors.New("bdd: task info is nil")

	// ErrKernel indicates that the rudd kernel could not be created or has
	// entered an error state (typically node table exhaustion).
	ErrKernel = errors.New("bdd: kernel error")
)

// Options configures a Builder.
//
// NodeSize  – initial number of rudd nodes (0 keeps the library default).
// CacheSize – initial operation cache size (0 keeps the library default).
// Logger    – destination of LogStatistics.
type Options struct {
	NodeSize  int
	CacheSize int
	Logger    logrus.FieldLogger
}

// Option represents a functional option for configuring a Builder.
type Option func(*Options)

// WithNodeSize sets the initial rudd node table size.
func WithNodeSize(n int) Option {
	return func(o *Options) { o.NodeSize = n }
}

// WithCacheSize sets the initial rudd cache size.
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}

// WithLogger sets the logger used by LogStatistics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns the Builder defaults: library-sized tables and the
// logrus standard logger.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

// Set is a set of concrete states represented as a BDD.
type Set struct {
	b *Builder
	n rudd.Node
}
