// Package projection builds explicit abstractions that project a planning
// task onto a pattern, a subset of its variables.
//
// Abstract states are perfect hashes of the pattern variables' values:
//
//	id = Σ value(pattern[i]) · multiplier[i],   multiplier[i] = Π_{j<i} |dom(pattern[j])|
//
// Every operator that is applicable in an abstract state either leads to a
// different abstract state (a transition) or leaves it unchanged (a
// self-loop flag). The concrete states of a transition src→target under op
// are the states mapped to src in which op is applicable.
//
// Errors (sentinel):
//
//	– ErrNilInfo            if a nil *task.Info is passed.
//	– ErrNilBuilder         if a nil *bdd.Builder is passed.
//	– ErrEmptyPattern       if a pattern holds no variable.
//	– ErrVariableOutOfRange if a pattern names an unknown variable.
//	– ErrTooManyStates      if the projection exceeds the configured size.
package projection

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Sentinel errors.
var (
	// ErrNilInfo indicates that a nil *task.Info was passed.
	ErrNilInfo = errors.New("projection: task info is nil")

	// ErrNilBuilder indicates that a nil *bdd.Builder was passed.
	ErrNilBuilder = errors.New("projection: bdd builder is nil")

	// ErrEmptyPattern indicates a pattern without variables.
	ErrEmptyPattern = errors.New("projection: empty pattern")

	// ErrVariableOutOfRange indicates a pattern variable unknown to the task.
	ErrVariableOutOfRange = errors.New("projection: variable out of range")

	// ErrTooManyStates indicates a projection larger than MaxStates.
	ErrTooManyStates = errors.New("projection: too many abstract states")
)

// DefaultMaxStates bounds the size of a single projection.
const DefaultMaxStates = 1 << 20

// Options configures a Generator.
//
// Patterns  – variable sets to project on; nil projects on each goal variable.
// MaxStates – upper bound on the abstract states of one projection.
// Logger    – receives one debug entry per built projection.
type Options struct {
	Patterns  [][]int
	MaxStates int
	Logger    logrus.FieldLogger
}

// Option represents a functional option for configuring a Generator.
type Option func(*Options)

// WithPatterns sets the patterns to project on.
func WithPatterns(patterns ...[]int) Option {
	return func(o *Options) { o.Patterns = patterns }
}

// WithMaxStates bounds the number of abstract states per projection.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithLogger sets the generator's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns atomic goal patterns, DefaultMaxStates and the
// logrus standard logger.
func DefaultOptions() Options {
	return Options{
		MaxStates: DefaultMaxStates,
		Logger:    logrus.StandardLogger(),
	}
}
