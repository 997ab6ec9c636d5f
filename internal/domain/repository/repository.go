package repository

import "context"

// Metrics records domain level counters and timings. Implemented by
// pkg/metrics; a no-op implementation is fine in tests.
type Metrics interface {
	RecordChartComputed(kind string)
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordCacheError()
	RecordError(kind string)
	RecordCalcDuration(kind string, seconds float64)
}

// Publisher emits domain events to an external stream. Publishing is
// best effort; callers log failures and continue.
type Publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}
