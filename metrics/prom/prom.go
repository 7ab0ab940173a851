// Package prom provides a Prometheus-backed implementation of the
// aig.MetricsCollector interface.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name. Default "aig".
	Namespace string

	// Registerer receives the collectors. Default prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Collector exports steering metrics to Prometheus. It implements
// aig.MetricsCollector and is safe for concurrent use.
type Collector struct {
	steerLatency   *prometheus.HistogramVec
	steerApplied   *prometheus.CounterVec
	activations    *prometheus.CounterVec
	catalogLatency *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics.
func New(optFns ...func(o *Options)) *Collector {
	opts := Options{
		Namespace:  "aig",
		Registerer: prometheus.DefaultRegisterer,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Collector{
		steerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "steer_latency_seconds",
			Help:      "Latency of steer calls",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"layer"}),
		steerApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "steer_concepts_applied_total",
			Help:      "Concept contributions that entered a tensor",
		}, []string{"layer"}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "concept_activations_total",
			Help:      "Concept activation attempts",
		}, []string{"result"}),
		catalogLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "catalog_op_latency_seconds",
			Help:      "Latency of catalog save/load operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
	}

	opts.Registerer.MustRegister(
		c.steerLatency,
		c.steerApplied,
		c.activations,
		c.catalogLatency,
	)
	return c
}

// RecordSteer implements aig.MetricsCollector.
func (c *Collector) RecordSteer(layer string, applied int, duration time.Duration) {
	c.steerLatency.WithLabelValues(layer).Observe(duration.Seconds())
	c.steerApplied.WithLabelValues(layer).Add(float64(applied))
}

// RecordActivate implements aig.MetricsCollector.
func (c *Collector) RecordActivate(known bool) {
	result := "known"
	if !known {
		result = "unknown"
	}
	c.activations.WithLabelValues(result).Inc()
}

// RecordCatalogSave implements aig.MetricsCollector.
func (c *Collector) RecordCatalogSave(duration time.Duration, err error) {
	c.catalogLatency.WithLabelValues("save", status(err)).Observe(duration.Seconds())
}

// RecordCatalogLoad implements aig.MetricsCollector.
func (c *Collector) RecordCatalogLoad(duration time.Duration, err error) {
	c.catalogLatency.WithLabelValues("load", status(err)).Observe(duration.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
