package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
	"astroengine/pkg/cache"
	xlogger "astroengine/pkg/logger"
)

// countingSource wraps the real provider and counts calls, so tests can
// assert that a cache hit skipped computation.
type countingSource struct {
	inner *ephemeris.Provider
	calls int64
}

func newCountingSource() *countingSource {
	return &countingSource{inner: ephemeris.New(1800, 2050)}
}

func (s *countingSource) PositionAt(ctx context.Context, body ephemeris.Body, jd float64) (ephemeris.Position, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.inner.PositionAt(ctx, body, jd)
}

func (s *countingSource) PositionsAt(ctx context.Context, bodies []ephemeris.Body, jd float64) (map[ephemeris.Body]ephemeris.Position, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.inner.PositionsAt(ctx, bodies, jd)
}

func (s *countingSource) count() int64 { return atomic.LoadInt64(&s.calls) }

// testMetrics counts recorder calls without touching the Prometheus
// registry.
type testMetrics struct {
	computed    int
	cacheHits   int
	cacheMisses int
	cacheErrors int
	errors      int
}

func (m *testMetrics) RecordChartComputed(string)         { m.computed++ }
func (m *testMetrics) RecordCacheHit(string)              { m.cacheHits++ }
func (m *testMetrics) RecordCacheMiss(string)             { m.cacheMisses++ }
func (m *testMetrics) RecordCacheError()                  { m.cacheErrors++ }
func (m *testMetrics) RecordError(string)                 { m.errors++ }
func (m *testMetrics) RecordCalcDuration(string, float64) {}

// brokenCache fails every operation, standing in for an unreachable
// Redis.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errCacheDown
}
func (brokenCache) Get(context.Context, string, interface{}) error  { return errCacheDown }
func (brokenCache) Delete(context.Context, ...string) error         { return errCacheDown }
func (brokenCache) Exists(context.Context, ...string) (bool, error) { return false, errCacheDown }
func (brokenCache) Close() error                                    { return nil }

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

func testBirthData() models.BirthData {
	// 1990-06-15 14:25 in Los Angeles
	return models.BirthData{
		Datetime:  time.Date(1990, 6, 15, 21, 25, 0, 0, time.UTC),
		Latitude:  34.0522,
		Longitude: -118.2437,
	}
}

func testOptions() models.ChartOptions {
	return models.ChartOptions{
		HouseSystem:      models.HousePlacidus,
		IncludeAspects:   true,
		IncludeDominants: true,
		ZodiacType:       "tropical",
	}
}

func newChartUseCase(t *testing.T, src ephemeris.Source, c cache.Service, m *testMetrics) *BirthChartUseCase {
	t.Helper()
	if c == nil {
		c = cache.NewMemoryCache(cache.WithMemoryMaxSize(100))
		t.Cleanup(func() { c.Close() })
	}
	return NewBirthChartUseCase(src, c, m, nil, testLogger(t), time.Hour, "")
}
