package aig

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// metrics/prom subpackage for a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordSteer is called after each steer call.
	// layer is the layer identifier, applied is the number of concept
	// contributions that actually entered the tensor (skipped stale or
	// shape-mismatched concepts excluded), duration is the time taken.
	RecordSteer(layer string, applied int, duration time.Duration)

	// RecordActivate is called after each activation attempt.
	// known is false when the name was absent from the catalog.
	RecordActivate(known bool)

	// RecordCatalogSave is called after each catalog/registry save.
	RecordCatalogSave(duration time.Duration, err error)

	// RecordCatalogLoad is called after each catalog/registry load.
	RecordCatalogLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSteer(string, int, time.Duration) {}
func (NoopMetricsCollector) RecordActivate(bool)                    {}
func (NoopMetricsCollector) RecordCatalogSave(time.Duration, error) {}
func (NoopMetricsCollector) RecordCatalogLoad(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SteerCount        atomic.Int64
	SteerApplied      atomic.Int64
	SteerTotalNanos   atomic.Int64
	ActivateCount     atomic.Int64
	ActivateUnknown   atomic.Int64
	CatalogSaveCount  atomic.Int64
	CatalogSaveErrors atomic.Int64
	CatalogLoadCount  atomic.Int64
	CatalogLoadErrors atomic.Int64
}

// RecordSteer implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSteer(_ string, applied int, duration time.Duration) {
	b.SteerCount.Add(1)
	b.SteerApplied.Add(int64(applied))
	b.SteerTotalNanos.Add(duration.Nanoseconds())
}

// RecordActivate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordActivate(known bool) {
	b.ActivateCount.Add(1)
	if !known {
		b.ActivateUnknown.Add(1)
	}
}

// RecordCatalogSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCatalogSave(_ time.Duration, err error) {
	b.CatalogSaveCount.Add(1)
	if err != nil {
		b.CatalogSaveErrors.Add(1)
	}
}

// RecordCatalogLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCatalogLoad(_ time.Duration, err error) {
	b.CatalogLoadCount.Add(1)
	if err != nil {
		b.CatalogLoadErrors.Add(1)
	}
}
