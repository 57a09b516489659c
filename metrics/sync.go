package metrics

import "sync/atomic"

// SyncMetrics -- атомарные счётчики одного массового прогона синхронизации.
type SyncMetrics struct {
	SyncedCount    atomic.Int32
	ProcessedCount atomic.Int32
	ErroredCount   atomic.Int32
	SkippedCount   atomic.Int32
}
