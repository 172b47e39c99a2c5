package tcf

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics mirrors the Remaining statistics as Prometheus collectors.
type Metrics struct {
	// Evaluations counts state-restricted remaining cost lookups.
	Evaluations prometheus.Counter

	// Subtractions counts saturated transition costs subtracted from the pool.
	Subtractions prometheus.Counter

	// UselessOperators is the number of operators collapsed to cost.Inf.
	UselessOperators prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// falls back to prometheus.DefaultRegisterer.
//
// Collectors already registered under the same descriptors are reused, so
// several pools (one per Build) may share one registry and report into the
// same series.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	evaluations, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "costsat_remaining_evaluations_total",
		Help: "Remaining cost lookups restricted to a set of concrete states",
	}))
	if err != nil {
		return nil, err
	}
	subtractions, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "costsat_remaining_subtractions_total",
		Help: "Saturated transition costs subtracted from the remaining pool",
	}))
	if err != nil {
		return nil, err
	}
	useless, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "costsat_remaining_useless_operators",
		Help: "Operators whose remaining cost collapsed to infinity",
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Evaluations:      evaluations,
		Subtractions:     subtractions,
		UselessOperators: useless,
	}, nil
}

// register adds c to reg, or returns the collector registered before it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, errors.Join(ErrRegistration, err)
}
