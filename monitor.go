package lotto

import (
	"sync/atomic"
	"time"
)

// OperationMonitor collects lightweight counters for lottery operations.
// All counters use atomics; recording is safe from any goroutine and adds
// no locking to the hot path. Disabled monitors drop every record.
type OperationMonitor struct {
	enabled int32

	acceptedPurchases int64
	rejectedPurchases int64
	draws             int64
	emptyDraws        int64
	storeErrors       int64

	totalOps      int64
	totalDuration int64 // nanoseconds
}

// Metrics is a point-in-time snapshot of the monitor's counters
type Metrics struct {
	AcceptedPurchases int64 `json:"accepted_purchases"`
	RejectedPurchases int64 `json:"rejected_purchases"`
	Draws             int64 `json:"draws"`
	EmptyDraws        int64 `json:"empty_draws"`
	StoreErrors       int64 `json:"store_errors"`

	TotalOperations int64         `json:"total_operations"`
	AverageDuration time.Duration `json:"average_duration"`
}

// NewOperationMonitor creates an enabled monitor
func NewOperationMonitor() *OperationMonitor {
	return &OperationMonitor{enabled: 1}
}

// Enable turns recording on
func (m *OperationMonitor) Enable() { atomic.StoreInt32(&m.enabled, 1) }

// Disable turns recording off
func (m *OperationMonitor) Disable() { atomic.StoreInt32(&m.enabled, 0) }

// IsEnabled reports whether the monitor records operations
func (m *OperationMonitor) IsEnabled() bool { return atomic.LoadInt32(&m.enabled) == 1 }

// StartOperation returns a completion func that records the operation's
// duration when called. Use with defer.
func (m *OperationMonitor) StartOperation() func() {
	if !m.IsEnabled() {
		return func() {}
	}

	start := time.Now()
	return func() {
		atomic.AddInt64(&m.totalOps, 1)
		atomic.AddInt64(&m.totalDuration, int64(time.Since(start)))
	}
}

// RecordAcceptedPurchase counts a completed ticket sale
func (m *OperationMonitor) RecordAcceptedPurchase() {
	if m.IsEnabled() {
		atomic.AddInt64(&m.acceptedPurchases, 1)
	}
}

// RecordRejectedPurchase counts a purchase rejected for any reason
func (m *OperationMonitor) RecordRejectedPurchase() {
	if m.IsEnabled() {
		atomic.AddInt64(&m.rejectedPurchases, 1)
	}
}

// RecordDraw counts a completed winner draw
func (m *OperationMonitor) RecordDraw() {
	if m.IsEnabled() {
		atomic.AddInt64(&m.draws, 1)
	}
}

// RecordEmptyDraw counts a draw rejected because no tickets were sold
func (m *OperationMonitor) RecordEmptyDraw() {
	if m.IsEnabled() {
		atomic.AddInt64(&m.emptyDraws, 1)
	}
}

// RecordStoreError counts a failed best-effort snapshot save
func (m *OperationMonitor) RecordStoreError() {
	if m.IsEnabled() {
		atomic.AddInt64(&m.storeErrors, 1)
	}
}

// GetMetrics returns a snapshot of the current counters
func (m *OperationMonitor) GetMetrics() Metrics {
	metrics := Metrics{
		AcceptedPurchases: atomic.LoadInt64(&m.acceptedPurchases),
		RejectedPurchases: atomic.LoadInt64(&m.rejectedPurchases),
		Draws:             atomic.LoadInt64(&m.draws),
		EmptyDraws:        atomic.LoadInt64(&m.emptyDraws),
		StoreErrors:       atomic.LoadInt64(&m.storeErrors),
		TotalOperations:   atomic.LoadInt64(&m.totalOps),
	}

	if metrics.TotalOperations > 0 {
		metrics.AverageDuration = time.Duration(atomic.LoadInt64(&m.totalDuration) / metrics.TotalOperations)
	}

	return metrics
}

// Reset zeroes all counters
func (m *OperationMonitor) Reset() {
	atomic.StoreInt64(&m.acceptedPurchases, 0)
	atomic.StoreInt64(&m.rejectedPurchases, 0)
	atomic.StoreInt64(&m.draws, 0)
	atomic.StoreInt64(&m.emptyDraws, 0)
	atomic.StoreInt64(&m.storeErrors, 0)
	atomic.StoreInt64(&m.totalOps, 0)
	atomic.StoreInt64(&m.totalDuration, 0)
}
