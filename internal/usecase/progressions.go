package usecase

import (
	"context"
	"time"

	"astroengine/internal/astro"
	"astroengine/internal/domain/models"
	domrepo "astroengine/internal/domain/repository"
	"astroengine/internal/ephemeris"
	xlogger "astroengine/pkg/logger"
)

// Days per year and per lunar (tropical) month used by the symbolic
// time mappings.
const (
	daysPerYear = 365.25
	lunarMonth  = 27.321582
)

// ProgressionUseCase advances a natal chart by symbolic time.
type ProgressionUseCase struct {
	source  ephemeris.Source
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

func NewProgressionUseCase(source ephemeris.Source, metrics domrepo.Metrics, logger *xlogger.Logger) *ProgressionUseCase {
	return &ProgressionUseCase{source: source, metrics: metrics, logger: logger}
}

// progressedJD maps elapsed real time onto the ephemeris per method.
// Secondary: a day per year. Tertiary: a day per lunar month. Minor: a
// lunar month per year.
func progressedJD(method string, natalJD float64, elapsedDays float64) float64 {
	years := elapsedDays / daysPerYear
	switch method {
	case models.ProgressionTertiary:
		return natalJD + elapsedDays/lunarMonth
	case models.ProgressionMinor:
		return natalJD + years*lunarMonth
	default: // secondary
		return natalJD + years
	}
}

// Compute returns the progressed chart for a target date, shaped like
// a natal chart cast at the progressed instant. Solar arc adds the
// secondary progressed Sun's arc to every natal longitude and directs
// the natal cusps by the same arc; the other methods read positions
// and houses straight from the progressed instant.
func (uc *ProgressionUseCase) Compute(ctx context.Context, bd models.BirthData, opts models.ChartOptions, method string, target time.Time) (*models.ProgressedChart, error) {
	if !target.After(bd.Datetime) {
		return nil, models.NewValidationError("target_date must be after the birth instant")
	}
	if opts.HouseSystem == "" {
		opts.HouseSystem = models.HousePlacidus
	}

	start := time.Now()
	natalJD := ephemeris.JulianDay(bd.Datetime)
	elapsedDays := target.Sub(bd.Datetime).Hours() / 24

	natalRaw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, natalJD)
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}
	natal := astro.ToPlanetPositions(ephemeris.DefaultBodies, natalRaw, nil)

	var (
		progressed []models.PlanetPosition
		houses     models.HouseCusps
	)
	if method == models.ProgressionSolarArc {
		progressed, houses, err = uc.solarArcChart(ctx, bd, opts, natal, natalJD, elapsedDays)
	} else {
		progressed, houses, err = uc.progressedChart(ctx, bd, opts, method, natalJD, elapsedDays)
	}
	if err != nil {
		uc.metrics.RecordError(string(models.KindOf(err)))
		return nil, err
	}

	uc.metrics.RecordChartComputed("progression")
	uc.metrics.RecordCalcDuration("progression", time.Since(start).Seconds())

	out := &models.ProgressedChart{
		Method:         method,
		TargetDate:     target.UTC(),
		Planets:        progressed,
		Houses:         houses,
		AspectsToNatal: astro.CrossAspects(progressed, natal, opts.IncludeMinor),
	}
	if opts.IncludeAspects {
		out.Aspects = astro.Aspects(progressed, opts.IncludeMinor)
	}
	if opts.IncludeDominants {
		d := astro.Dominants(progressed)
		out.Dominants = &d
	}
	return out, nil
}

// progressedChart casts a chart at the mapped instant over the natal
// place.
func (uc *ProgressionUseCase) progressedChart(ctx context.Context, bd models.BirthData, opts models.ChartOptions, method string, natalJD, elapsedDays float64) ([]models.PlanetPosition, models.HouseCusps, error) {
	jd := progressedJD(method, natalJD, elapsedDays)
	houses, err := astro.Houses(opts.HouseSystem, jd, bd.Latitude, bd.Longitude)
	if err != nil {
		return nil, models.HouseCusps{}, err
	}
	raw, err := uc.source.PositionsAt(ctx, ephemeris.DefaultBodies, jd)
	if err != nil {
		return nil, models.HouseCusps{}, err
	}
	return astro.ToPlanetPositions(ephemeris.DefaultBodies, raw, &houses), houses, nil
}

// solarArcChart shifts every natal position and cusp by the arc the
// secondary progressed Sun has moved.
func (uc *ProgressionUseCase) solarArcChart(ctx context.Context, bd models.BirthData, opts models.ChartOptions, natal []models.PlanetPosition, natalJD, elapsedDays float64) ([]models.PlanetPosition, models.HouseCusps, error) {
	houses, err := astro.Houses(opts.HouseSystem, natalJD, bd.Latitude, bd.Longitude)
	if err != nil {
		return nil, models.HouseCusps{}, err
	}

	progJD := progressedJD(models.ProgressionSecondary, natalJD, elapsedDays)
	progSun, err := uc.source.PositionAt(ctx, ephemeris.Sun, progJD)
	if err != nil {
		return nil, models.HouseCusps{}, err
	}
	natalSun, err := uc.source.PositionAt(ctx, ephemeris.Sun, natalJD)
	if err != nil {
		return nil, models.HouseCusps{}, err
	}
	arc := ephemeris.Norm360(progSun.Longitude - natalSun.Longitude)

	for i := range houses.Cusps {
		houses.Cusps[i] = ephemeris.Norm360(houses.Cusps[i] + arc)
	}
	houses.Ascendant = ephemeris.Norm360(houses.Ascendant + arc)
	houses.Midheaven = ephemeris.Norm360(houses.Midheaven + arc)

	out := make([]models.PlanetPosition, len(natal))
	for i, p := range natal {
		moved := p
		moved.Longitude = ephemeris.Norm360(p.Longitude + arc)
		sign, deg := astro.SignAt(moved.Longitude)
		moved.Sign = sign.Name
		moved.SignDegree = deg
		moved.House = astro.HouseOf(moved.Longitude, houses)
		out[i] = moved
	}
	return out, houses, nil
}
