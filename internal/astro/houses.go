package astro

import (
	"math"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
)

func norm360(d float64) float64 { return ephemeris.Norm360(d) }

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

// Houses computes the twelve cusps for the given system at an instant
// and place. Quadrant systems are undefined at circumpolar latitudes
// and return an unsupported house system error there; equal and whole
// sign always succeed.
func Houses(system string, jd, latitude, longitude float64) (models.HouseCusps, error) {
	eps := ephemeris.ObliquityDeg(jd)
	ramc := norm360(ephemeris.GMSTDeg(jd) + longitude)

	mc := midheaven(ramc, eps)
	asc := ascendant(ramc, eps, latitude)

	hc := models.HouseCusps{System: system, Ascendant: asc, Midheaven: mc}

	switch system {
	case models.HouseEqual:
		for i := 0; i < 12; i++ {
			hc.Cusps[i] = norm360(asc + float64(i)*30)
		}
	case models.HouseWholeSign:
		start := math.Floor(asc/30) * 30
		for i := 0; i < 12; i++ {
			hc.Cusps[i] = norm360(start + float64(i)*30)
		}
	case models.HousePorphyry:
		porphyryCusps(&hc, asc, mc)
	case models.HouseRegiomontanus:
		if err := checkQuadrantLatitude(system, latitude, eps); err != nil {
			return models.HouseCusps{}, err
		}
		regiomontanusCusps(&hc, ramc, eps, latitude, asc, mc)
	case models.HousePlacidus:
		if err := checkQuadrantLatitude(system, latitude, eps); err != nil {
			return models.HouseCusps{}, err
		}
		if err := placidusCusps(&hc, ramc, eps, latitude, asc, mc); err != nil {
			return models.HouseCusps{}, err
		}
	default:
		return models.HouseCusps{}, models.NewUnsupportedHouseSystem(
			"unknown house system %q", system)
	}
	return hc, nil
}

// midheaven returns the ecliptic longitude of the meridian crossing.
func midheaven(ramc, eps float64) float64 {
	r := deg2rad(ramc)
	return norm360(rad2deg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(deg2rad(eps)))))
}

// ascendant returns the ecliptic longitude rising on the eastern horizon.
func ascendant(ramc, eps, lat float64) float64 {
	r := deg2rad(ramc)
	e := deg2rad(eps)
	p := deg2rad(lat)
	return norm360(rad2deg(math.Atan2(
		math.Cos(r),
		-(math.Sin(r)*math.Cos(e) + math.Tan(p)*math.Sin(e)),
	)))
}

// checkQuadrantLatitude rejects latitudes where part of the ecliptic
// never crosses the horizon.
func checkQuadrantLatitude(system string, lat, eps float64) error {
	if math.Abs(lat) >= 90-eps {
		return models.NewUnsupportedHouseSystem(
			"%s houses are undefined at latitude %.2f", system, lat)
	}
	return nil
}

// porphyryCusps trisects the two ecliptic quadrants between the angles.
func porphyryCusps(hc *models.HouseCusps, asc, mc float64) {
	ic := norm360(mc + 180)
	upper := norm360(asc - mc) // MC to ASC
	lower := norm360(ic - asc) // ASC to IC

	hc.Cusps[0] = asc
	hc.Cusps[1] = norm360(asc + lower/3)
	hc.Cusps[2] = norm360(asc + 2*lower/3)
	hc.Cusps[9] = mc
	hc.Cusps[10] = norm360(mc + upper/3)
	hc.Cusps[11] = norm360(mc + 2*upper/3)
	fillOpposites(hc)
}

// regiomontanusCusps projects equal 30 degree divisions of the celestial
// equator through great circles onto the ecliptic.
func regiomontanusCusps(hc *models.HouseCusps, ramc, eps, lat, asc, mc float64) {
	e := deg2rad(eps)
	p := deg2rad(lat)

	cusp := func(h float64) float64 {
		r := deg2rad(norm360(ramc + h))
		pole := math.Atan(math.Tan(p) * math.Sin(deg2rad(h)))
		return norm360(rad2deg(math.Atan2(
			math.Sin(r),
			math.Cos(r)*math.Cos(e)-math.Tan(pole)*math.Sin(e),
		)))
	}

	hc.Cusps[0] = asc
	hc.Cusps[1] = cusp(120)
	hc.Cusps[2] = cusp(150)
	hc.Cusps[9] = mc
	hc.Cusps[10] = cusp(30)
	hc.Cusps[11] = cusp(60)
	fillOpposites(hc)
}

// placidusCusps divides diurnal and nocturnal semi-arcs by fixed point
// iteration on right ascension. Convergence is fast away from the
// polar circles; a cusp that fails to resolve reports the system as
// unsupported for the input.
func placidusCusps(hc *models.HouseCusps, ramc, eps, lat, asc, mc float64) error {
	e := deg2rad(eps)
	tanLat := math.Tan(deg2rad(lat))

	// f is the semi-arc fraction; day selects the diurnal arc above
	// the horizon (cusps 11, 12) versus the nocturnal one (2, 3).
	cusp := func(f float64, day bool, start float64) (float64, error) {
		ra := norm360(ramc + start)
		for i := 0; i < 30; i++ {
			decl := math.Atan(math.Tan(e) * math.Sin(deg2rad(ra)))
			x := tanLat * math.Tan(decl)
			if x < -1 || x > 1 {
				return 0, models.NewUnsupportedHouseSystem(
					"placidus houses are undefined at latitude %.2f", lat)
			}
			ad := rad2deg(math.Asin(x))
			var next float64
			if day {
				next = norm360(ramc + f*(90+ad))
			} else {
				next = norm360(ramc + 180 - f*(90-ad))
			}
			if math.Abs(ephemeris.SignedDelta(next, ra)) < 1e-7 {
				ra = next
				break
			}
			ra = next
		}
		r := deg2rad(ra)
		return norm360(rad2deg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e)))), nil
	}

	var err error
	if hc.Cusps[10], err = cusp(1.0/3.0, true, 30); err != nil {
		return err
	}
	if hc.Cusps[11], err = cusp(2.0/3.0, true, 60); err != nil {
		return err
	}
	if hc.Cusps[1], err = cusp(2.0/3.0, false, 120); err != nil {
		return err
	}
	if hc.Cusps[2], err = cusp(1.0/3.0, false, 150); err != nil {
		return err
	}
	hc.Cusps[0] = asc
	hc.Cusps[9] = mc
	fillOpposites(hc)
	return nil
}

// fillOpposites derives the western cusps 4-9 from the six already set.
func fillOpposites(hc *models.HouseCusps) {
	for _, i := range [...]int{0, 1, 2, 9, 10, 11} {
		hc.Cusps[(i+6)%12] = norm360(hc.Cusps[i] + 180)
	}
}

// HouseOf returns the 1-based house containing an ecliptic longitude.
func HouseOf(lon float64, hc models.HouseCusps) int {
	for i := 0; i < 12; i++ {
		next := (i + 1) % 12
		span := norm360(hc.Cusps[next] - hc.Cusps[i])
		if norm360(lon-hc.Cusps[i]) < span {
			return i + 1
		}
	}
	return 12
}
