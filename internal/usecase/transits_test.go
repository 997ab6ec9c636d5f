package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
	"astroengine/pkg/cache"
)

func newTransitUseCase(t *testing.T, src ephemeris.Source, m *testMetrics) *TransitUseCase {
	t.Helper()
	c := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))
	t.Cleanup(func() { c.Close() })
	return NewTransitUseCase(src, c, m, testLogger(t), time.Hour)
}

func TestTransitAtNatalInstant(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})

	bd := testBirthData()
	report, err := uc.At(context.Background(), bd, models.ChartOptions{}, bd.Datetime)
	require.NoError(t, err)

	assert.True(t, report.Timestamp.Equal(bd.Datetime))
	assert.Len(t, report.Positions, 12)

	// the sky at the natal instant is the natal sky: contacts exist,
	// but never from a body to itself
	assert.NotEmpty(t, report.Aspects)
	for _, a := range report.Aspects {
		assert.NotEqual(t, a.TransitBody, a.NatalBody)
	}
}

func TestTransitAtLaterInstant(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})

	bd := testBirthData()
	at := bd.Datetime.AddDate(29, 5, 10)
	report, err := uc.At(context.Background(), bd, models.ChartOptions{}, at)
	require.NoError(t, err)

	assert.True(t, report.Timestamp.Equal(at))
	for _, a := range report.Aspects {
		assert.GreaterOrEqual(t, a.Influence, 0.0)
		assert.LessOrEqual(t, a.Influence, 1.0)
	}
}

func TestTransitPeriod(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})

	bd := testBirthData()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)

	reports, err := uc.Period(context.Background(), bd, models.ChartOptions{}, start, end, 1)
	require.NoError(t, err)
	require.Len(t, reports, 10)

	for i, r := range reports {
		expected := start.AddDate(0, 0, i)
		assert.True(t, r.Timestamp.Equal(expected), "report %d at %s", i, r.Timestamp)
	}
}

func TestTransitPeriodRejectsBadWindow(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})
	bd := testBirthData()

	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Period(context.Background(), bd, models.ChartOptions{}, at, at.AddDate(0, 0, -1), 1)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))

	// ten years of daily samples is over the cap
	_, err = uc.Period(context.Background(), bd, models.ChartOptions{}, at, at.AddDate(10, 0, 0), 1)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestForecast(t *testing.T) {
	src := newCountingSource()
	m := &testMetrics{}
	uc := newTransitUseCase(t, src, m)

	bd := testBirthData()
	bodies := []string{"jupiter", "saturn", "uranus", "neptune", "pluto"}

	fc, err := uc.Forecast(context.Background(), bd, bodies, 1, 5)
	require.NoError(t, err)

	assert.Equal(t, bodies, fc.Bodies)
	assert.True(t, fc.End.After(fc.Start))
	// a year of slow mover scanning always finds something
	assert.NotEmpty(t, fc.Events)
	for i, e := range fc.Events {
		assert.LessOrEqual(t, e.Orb, 1.0)
		if i > 0 {
			assert.False(t, e.Date.Before(fc.Events[i-1].Date))
		}
	}
}

func TestForecastSecondCallHitsCache(t *testing.T) {
	src := newCountingSource()
	m := &testMetrics{}
	uc := newTransitUseCase(t, src, m)

	bd := testBirthData()
	bodies := []string{"jupiter", "saturn"}

	first, err := uc.Forecast(context.Background(), bd, bodies, 1, 10)
	require.NoError(t, err)
	calls := src.count()

	second, err := uc.Forecast(context.Background(), bd, bodies, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, calls, src.count())
	assert.Equal(t, 1, m.cacheHits)
	assert.Equal(t, len(first.Events), len(second.Events))
}

func TestForecastRejectsUnknownBody(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})

	_, err := uc.Forecast(context.Background(), testBirthData(), []string{"vulcan"}, 1, 5)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestSky(t *testing.T) {
	src := newCountingSource()
	uc := newTransitUseCase(t, src, &testMetrics{})

	at := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	positions, err := uc.Sky(context.Background(), at, nil)
	require.NoError(t, err)
	assert.Len(t, positions, 12)

	positions, err = uc.Sky(context.Background(), at, []ephemeris.Body{ephemeris.Sun, ephemeris.Moon})
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "sun", positions[0].Body)
	assert.Equal(t, "moon", positions[1].Body)

	_, err = uc.Sky(context.Background(), at, []ephemeris.Body{"vulcan"})
	assert.Error(t, err)
}

func TestForecastWindowFollowsTheDay(t *testing.T) {
	src := newCountingSource()
	m := &testMetrics{}
	uc := newTransitUseCase(t, src, m)

	bd := testBirthData()
	bodies := []string{"jupiter", "saturn"}

	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return day }
	first, err := uc.Forecast(context.Background(), bd, bodies, 1, 10)
	require.NoError(t, err)
	assert.True(t, first.Start.Equal(day.Truncate(24*time.Hour)))

	// the next day must anchor a fresh window, not serve yesterday's
	uc.now = func() time.Time { return day.AddDate(0, 0, 1) }
	second, err := uc.Forecast(context.Background(), bd, bodies, 1, 10)
	require.NoError(t, err)
	assert.True(t, second.Start.After(first.Start))
	assert.Equal(t, 0, m.cacheHits)

	// while within the same day the cache still serves
	_, err = uc.Forecast(context.Background(), bd, bodies, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, m.cacheHits)
}
