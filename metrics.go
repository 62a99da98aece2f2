package bitgrid

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    setCounter      prometheus.Counter
//	    settleHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSet(duration time.Duration, err error) {
//	    p.setCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSet is called after each cell write.
	// duration is the total time taken, err is nil if successful.
	RecordSet(duration time.Duration, err error)

	// RecordSettle is called after each gravity run.
	// passes is the number of passes until the fixed point.
	RecordSettle(passes int, duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save or load.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSet(time.Duration, error)         {}
func (NoopMetricsCollector) RecordSettle(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetCount         atomic.Int64
	SetErrors        atomic.Int64
	SetTotalNanos    atomic.Int64
	SettleCount      atomic.Int64
	SettleErrors     atomic.Int64
	SettlePasses     atomic.Int64
	SettleTotalNanos atomic.Int64
	SnapshotCount    atomic.Int64
	SnapshotErrors   atomic.Int64
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(duration time.Duration, err error) {
	b.SetCount.Add(1)
	b.SetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SetErrors.Add(1)
	}
}

// RecordSettle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSettle(passes int, duration time.Duration, err error) {
	b.SettleCount.Add(1)
	b.SettlePasses.Add(int64(passes))
	b.SettleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SettleErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetCount:       b.SetCount.Load(),
		SetErrors:      b.SetErrors.Load(),
		SetAvgNanos:    b.getAvgSetNanos(),
		SettleCount:    b.SettleCount.Load(),
		SettleErrors:   b.SettleErrors.Load(),
		SettlePasses:   b.SettlePasses.Load(),
		SettleAvgNanos: b.getAvgSettleNanos(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSetNanos() int64 {
	count := b.SetCount.Load()
	if count == 0 {
		return 0
	}
	return b.SetTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgSettleNanos() int64 {
	count := b.SettleCount.Load()
	if count == 0 {
		return 0
	}
	return b.SettleTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetCount       int64
	SetErrors      int64
	SetAvgNanos    int64
	SettleCount    int64
	SettleErrors   int64
	SettlePasses   int64
	SettleAvgNanos int64
	SnapshotCount  int64
	SnapshotErrors int64
}
