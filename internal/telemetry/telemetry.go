// Package telemetry wires the evolution driver to Prometheus, the way
// github.com/luxfi/consensus's metrics package wires its engines: a
// thin struct holding a prometheus.Registerer plus a handful of named
// collectors, nil-safe so a caller that doesn't want metrics can skip
// registration entirely.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors the driver updates once per generation.
// A nil *Metrics is valid and every method becomes a no-op, so callers
// that don't supply a registerer pay nothing.
type Metrics struct {
	generations      prometheus.Counter
	passed           prometheus.Counter
	failed           prometheus.Counter
	paretoFrontSize  prometheus.Gauge
	generationMillis prometheus.Histogram
}

// New registers and returns a Metrics bound to reg. A nil reg yields a
// nil *Metrics, which every method below tolerates.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metaleague",
			Subsystem: "evolution",
			Name:      "generations_total",
			Help:      "Number of generations executed.",
		}),
		passed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metaleague",
			Subsystem: "evolution",
			Name:      "individuals_passed_total",
			Help:      "Number of individuals that passed the proof gate.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metaleague",
			Subsystem: "evolution",
			Name:      "individuals_failed_total",
			Help:      "Number of individuals rejected by the proof gate.",
		}),
		paretoFrontSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metaleague",
			Subsystem: "evolution",
			Name:      "pareto_front_size",
			Help:      "Size of the rank-0 Pareto front in the most recent generation.",
		}),
		generationMillis: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metaleague",
			Subsystem: "evolution",
			Name:      "generation_duration_milliseconds",
			Help:      "Wall-clock duration of one generation.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		m.generations, m.passed, m.failed, m.paretoFrontSize, m.generationMillis,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveGeneration records one completed generation's statistics.
func (m *Metrics) ObserveGeneration(passed, failed, paretoFront int, elapsedMillis float64) {
	if m == nil {
		return
	}
	m.generations.Inc()
	m.passed.Add(float64(passed))
	m.failed.Add(float64(failed))
	m.paretoFrontSize.Set(float64(paretoFront))
	m.generationMillis.Observe(elapsedMillis)
}
