package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/squadplan/squadplan/core/metrics"
)

// PromSink records schedule-generation events in Prometheus metrics.
type PromSink struct {
	solves      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	conflicts   prometheus.Histogram
	variables   prometheus.Gauge
	constraints prometheus.Gauge
}

// NewPromSink registers the scheduler metrics on the default Prometheus
// registerer. The metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Total number of solve runs by outcome",
	}, []string{"status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Wall-clock duration of solve runs",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"status"})
	conflicts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_solve_conflicts",
		Help:    "Search conflicts per solve run",
		Buckets: prometheus.ExponentialBuckets(1, 10, 8),
	})
	variables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_model_variables",
		Help: "Boolean variables in the last compiled model",
	})
	constraints := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_model_constraints",
		Help: "Constraints in the last compiled model",
	})

	if err := register(reg, &solves); err != nil {
		return nil, err
	}
	if err := register(reg, &duration); err != nil {
		return nil, err
	}
	if err := register(reg, &conflicts); err != nil {
		return nil, err
	}
	if err := register(reg, &variables); err != nil {
		return nil, err
	}
	if err := register(reg, &constraints); err != nil {
		return nil, err
	}

	return &PromSink{
		solves:      solves,
		duration:    duration,
		conflicts:   conflicts,
		variables:   variables,
		constraints: constraints,
	}, nil
}

// register adds a collector, reusing an existing one on re-registration.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	if err := reg.Register(*c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = are.ExistingCollector.(C)
			return nil
		}
		return err
	}
	return nil
}

// RecordBuild sets the model-size gauges.
func (s *PromSink) RecordBuild(ev coremetrics.BuildEvent) error {
	s.variables.Set(float64(ev.Variables))
	s.constraints.Set(float64(ev.Constraints))
	return nil
}

// RecordSolve counts the run and observes its duration and conflicts.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(ev.Status).Inc()
	s.duration.WithLabelValues(ev.Status).Observe(ev.Elapsed.Seconds())
	s.conflicts.Observe(float64(ev.Conflicts))
	return nil
}
