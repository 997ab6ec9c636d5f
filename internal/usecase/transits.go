package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"astroengine/internal/astro"
	"astroengine/internal/domain/models"
	domrepo "astroengine/internal/domain/repository"
	"astroengine/internal/ephemeris"
	"astroengine/pkg/cache"
	xlogger "astroengine/pkg/logger"
)

// maxPeriodSamples bounds a period scan so one request cannot ask for
// decades of daily samples.
const maxPeriodSamples = 400

// TransitUseCase compares the moving sky against a natal chart.
type TransitUseCase struct {
	source  ephemeris.Source
	cache   cache.Service
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	ttl     time.Duration
	now     func() time.Time
}

func NewTransitUseCase(
	source ephemeris.Source,
	cacheSvc cache.Service,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	ttl time.Duration,
) *TransitUseCase {
	return &TransitUseCase{
		source:  source,
		cache:   cacheSvc,
		metrics: metrics,
		logger:  logger,
		ttl:     ttl,
		now:     time.Now,
	}
}

// natalPositions computes the natal placements a transit is measured
// against. No houses: transit work only needs longitudes and speeds.
func (uc *TransitUseCase) natalPositions(ctx context.Context, bd models.BirthData) ([]models.PlanetPosition, error) {
	jd := ephemeris.JulianDay(bd.Datetime)
	raw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, jd)
	if err != nil {
		return nil, err
	}
	return astro.ToPlanetPositions(ephemeris.DefaultBodies, raw, nil), nil
}

// Sky returns the positions of the given bodies at an instant, with no
// natal chart involved. Backs the raw positions endpoint.
func (uc *TransitUseCase) Sky(ctx context.Context, at time.Time, bodies []ephemeris.Body) ([]models.PlanetPosition, error) {
	if len(bodies) == 0 {
		bodies = ephemeris.DefaultBodies
	}
	for _, b := range bodies {
		if !ephemeris.IsValid(b) {
			return nil, models.NewValidationError("unknown body %q", b)
		}
	}
	raw, err := uc.source.PositionsAt(ctx, bodies, ephemeris.JulianDay(at))
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}
	return astro.ToPlanetPositions(bodies, raw, nil), nil
}

// At reports the sky and its contacts to the natal chart at one instant.
func (uc *TransitUseCase) At(ctx context.Context, bd models.BirthData, opts models.ChartOptions, at time.Time) (*models.TransitReport, error) {
	start := time.Now()
	natal, err := uc.natalPositions(ctx, bd)
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}

	raw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, ephemeris.JulianDay(at))
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}
	moving := astro.ToPlanetPositions(ephemeris.DefaultBodies, raw, nil)

	uc.metrics.RecordChartComputed("transit")
	uc.metrics.RecordCalcDuration("transit", time.Since(start).Seconds())
	return &models.TransitReport{
		Timestamp: at.UTC(),
		Positions: moving,
		Aspects:   astro.CrossAspects(moving, natal, opts.IncludeMinor),
	}, nil
}

// Period samples transits across a window at a fixed day step.
func (uc *TransitUseCase) Period(ctx context.Context, bd models.BirthData, opts models.ChartOptions, startAt, endAt time.Time, stepDays int) ([]models.TransitReport, error) {
	if !endAt.After(startAt) {
		return nil, models.NewValidationError("end must be after start")
	}
	if stepDays <= 0 {
		stepDays = 1
	}
	step := time.Duration(stepDays) * 24 * time.Hour
	if int(endAt.Sub(startAt)/step)+1 > maxPeriodSamples {
		return nil, models.NewValidationError(
			"window too large: at most %d samples per request", maxPeriodSamples)
	}

	natal, err := uc.natalPositions(ctx, bd)
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}

	var reports []models.TransitReport
	for at := startAt; !at.After(endAt); at = at.Add(step) {
		raw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, ephemeris.JulianDay(at))
		if err != nil {
			uc.metrics.RecordError(string(models.KindOf(err)))
			return nil, err
		}
		moving := astro.ToPlanetPositions(ephemeris.DefaultBodies, raw, nil)
		reports = append(reports, models.TransitReport{
			Timestamp: at.UTC(),
			Positions: moving,
			Aspects:   astro.CrossAspects(moving, natal, opts.IncludeMinor),
		})
	}
	uc.metrics.RecordChartComputed("transit_period")
	return reports, nil
}

// forecastRun tracks one in-orb contact while the scan walks forward,
// keeping the day the orb was tightest.
type forecastRun struct {
	best   models.ForecastEvent
	active bool
}

// Forecast scans years ahead for near-exact contacts from the slow
// movers to the natal chart, cached per natal input. Each contiguous
// in-orb stretch collapses to a single event at its tightest day.
func (uc *TransitUseCase) Forecast(ctx context.Context, bd models.BirthData, bodies []string, years, stepDays int) (*models.Forecast, error) {
	if years <= 0 {
		years = 5
	}
	if stepDays <= 0 {
		stepDays = 1
	}

	movers := make([]ephemeris.Body, 0, len(bodies))
	for _, b := range bodies {
		if !ephemeris.IsValid(ephemeris.Body(b)) {
			return nil, models.NewValidationError("unknown body %q", b)
		}
		movers = append(movers, ephemeris.Body(b))
	}

	startAt := uc.now().UTC().Truncate(24 * time.Hour)
	endAt := startAt.AddDate(years, 0, 0)

	// the scan start is part of the key so a cached forecast never
	// reports a window anchored on an earlier day
	key := cache.HashKey(cache.GenerateKeyWithParams(
		chartCacheKey("forecast", bd, models.ChartOptions{}),
		years, stepDays, strings.Join(bodies, ","),
		startAt.Format("2006-01-02"),
	))

	var cached models.Forecast
	err := uc.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		uc.metrics.RecordCacheHit("forecast")
		return &cached, nil
	case errors.Is(err, cache.ErrCacheMiss):
		uc.metrics.RecordCacheMiss("forecast")
	default:
		uc.metrics.RecordCacheError()
		uc.logger.Warn("forecast cache read failed, computing uncached", xlogger.Error(err))
	}

	natal, err := uc.natalPositions(ctx, bd)
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}

	step := time.Duration(stepDays) * 24 * time.Hour

	calcStart := time.Now()
	runs := make(map[[3]string]*forecastRun)
	var events []models.ForecastEvent

	for at := startAt; !at.After(endAt); at = at.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := uc.source.PositionsAt(ctx, movers, ephemeris.JulianDay(at))
		if err != nil {
			uc.metrics.RecordError(string(models.KindOf(err)))
			return nil, err
		}
		moving := astro.ToPlanetPositions(movers, raw, nil)
		hits := astro.CrossAspectsWith(moving, natal, astro.TightAspects)

		seen := make(map[[3]string]bool, len(hits))
		for _, h := range hits {
			id := [3]string{h.TransitBody, h.NatalBody, h.Type}
			seen[id] = true
			run, ok := runs[id]
			if !ok {
				run = &forecastRun{}
				runs[id] = run
			}
			if !run.active || h.Orb < run.best.Orb {
				run.best = models.ForecastEvent{
					Date:        at,
					TransitBody: h.TransitBody,
					NatalBody:   h.NatalBody,
					Type:        h.Type,
					Orb:         h.Orb,
					Applying:    h.Applying,
				}
			}
			run.active = true
		}
		for id, run := range runs {
			if run.active && !seen[id] {
				events = append(events, run.best)
				delete(runs, id)
			}
		}
	}
	for _, run := range runs {
		if run.active {
			events = append(events, run.best)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	forecast := &models.Forecast{Start: startAt, End: endAt, Bodies: bodies, Events: events}
	uc.metrics.RecordChartComputed("forecast")
	uc.metrics.RecordCalcDuration("forecast", time.Since(calcStart).Seconds())

	if err := uc.cache.Set(ctx, key, forecast, uc.ttl); err != nil {
		uc.metrics.RecordCacheError()
		uc.logger.Warn("forecast cache write failed", xlogger.Error(err))
	}
	return forecast, nil
}
