package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"astroengine/internal/astro"
	"astroengine/internal/domain/models"
	domrepo "astroengine/internal/domain/repository"
	"astroengine/internal/ephemeris"
	"astroengine/pkg/cache"
	xlogger "astroengine/pkg/logger"
)

// BirthChartUseCase computes natal charts with read-through caching.
// Cache trouble is degraded to compute-only: the caller still gets a
// chart, the failure is logged and counted.
type BirthChartUseCase struct {
	source  ephemeris.Source
	cache   cache.Service
	metrics domrepo.Metrics
	events  domrepo.Publisher
	logger  *xlogger.Logger
	ttl     time.Duration
	topic   string
}

func NewBirthChartUseCase(
	source ephemeris.Source,
	cacheSvc cache.Service,
	metrics domrepo.Metrics,
	events domrepo.Publisher,
	logger *xlogger.Logger,
	ttl time.Duration,
	topic string,
) *BirthChartUseCase {
	return &BirthChartUseCase{
		source:  source,
		cache:   cacheSvc,
		metrics: metrics,
		events:  events,
		logger:  logger,
		ttl:     ttl,
		topic:   topic,
	}
}

// chartCacheKey canonicalizes every input that influences the result.
// The same inputs always hash to the same key, which also becomes the
// chart id.
func chartCacheKey(kind string, bd models.BirthData, opts models.ChartOptions) string {
	raw := fmt.Sprintf("%s|%s|%.6f|%.6f|%s|%s|%t|%t|%t|%s",
		kind,
		bd.Datetime.UTC().Format(time.RFC3339),
		bd.Latitude,
		bd.Longitude,
		bd.Timezone,
		opts.HouseSystem,
		opts.IncludeAspects,
		opts.IncludeDominants,
		opts.IncludeMinor,
		opts.ZodiacType,
	)
	return cache.HashKey(raw)
}

// Compute returns the natal chart for the given birth data, from cache
// when possible.
func (uc *BirthChartUseCase) Compute(ctx context.Context, bd models.BirthData, opts models.ChartOptions) (*models.Chart, error) {
	key := chartCacheKey("natal", bd, opts)

	var cached models.Chart
	err := uc.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		uc.metrics.RecordCacheHit("natal")
		return &cached, nil
	case errors.Is(err, cache.ErrCacheMiss):
		uc.metrics.RecordCacheMiss("natal")
	default:
		uc.metrics.RecordCacheError()
		uc.logger.Warn("chart cache read failed, computing uncached", xlogger.Error(err))
	}

	start := time.Now()
	chart, err := uc.computeChart(ctx, key, bd, opts)
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}
	uc.metrics.RecordChartComputed("natal")
	uc.metrics.RecordCalcDuration("natal", time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, key, chart, uc.ttl); err != nil {
		uc.metrics.RecordCacheError()
		uc.logger.Warn("chart cache write failed", xlogger.Error(err))
	}
	uc.publishComputed(ctx, chart)
	return chart, nil
}

// Summary returns the compact view of a chart. It rides on Compute so
// a summary request warms the same cache entry as a full chart.
func (uc *BirthChartUseCase) Summary(ctx context.Context, bd models.BirthData, opts models.ChartOptions) (*models.ChartSummary, error) {
	opts.IncludeDominants = true
	chart, err := uc.Compute(ctx, bd, opts)
	if err != nil {
		return nil, err
	}

	s := &models.ChartSummary{ID: chart.ID}
	if chart.Dominants != nil {
		s.Dominants = *chart.Dominants
	}
	for _, p := range chart.Planets {
		switch p.Body {
		case string(ephemeris.Sun):
			s.SunSign = p.Sign
		case string(ephemeris.Moon):
			s.MoonSign = p.Sign
		}
	}
	risingSign, _ := astro.SignAt(chart.Houses.Ascendant)
	s.RisingSign = risingSign.Name
	return s, nil
}

func (uc *BirthChartUseCase) computeChart(ctx context.Context, id string, bd models.BirthData, opts models.ChartOptions) (*models.Chart, error) {
	jd := ephemeris.JulianDay(bd.Datetime)

	houses, err := astro.Houses(opts.HouseSystem, jd, bd.Latitude, bd.Longitude)
	if err != nil {
		return nil, err
	}

	raw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, jd)
	if err != nil {
		return nil, err
	}

	planets := astro.ToPlanetPositions(ephemeris.DefaultBodies, raw, &houses)
	chart := &models.Chart{
		ID:        id,
		BirthData: bd,
		Options:   opts,
		Planets:   planets,
		Houses:    houses,
	}
	if opts.IncludeAspects {
		chart.Aspects = astro.Aspects(planets, opts.IncludeMinor)
	}
	if opts.IncludeDominants {
		d := astro.Dominants(planets)
		chart.Dominants = &d
	}
	return chart, nil
}

// publishComputed emits a chart_computed event. Best effort: a dead
// broker must not fail the request.
func (uc *BirthChartUseCase) publishComputed(ctx context.Context, chart *models.Chart) {
	if uc.events == nil {
		return
	}
	evt := map[string]interface{}{
		"event":    "chart_computed",
		"chart_id": chart.ID,
		"kind":     "natal",
		"at":       time.Now().UTC().Format(time.RFC3339),
	}
	if err := uc.events.Publish(ctx, uc.topic, []byte(chart.ID), evt); err != nil {
		uc.logger.Warn("chart event publish failed", xlogger.Error(err))
	}
}
