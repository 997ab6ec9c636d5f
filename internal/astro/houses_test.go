package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
)

var testJD = ephemeris.JulianDay(time.Date(1990, 6, 15, 21, 25, 0, 0, time.UTC))

// cuspsIncrease checks the cusps walk forward around the circle exactly
// once starting at cusp 1.
func cuspsIncrease(t *testing.T, hc models.HouseCusps) {
	t.Helper()
	var total float64
	for i := 0; i < 12; i++ {
		span := norm360(hc.Cusps[(i+1)%12] - hc.Cusps[i])
		assert.Greater(t, span, 0.0, "cusp %d to %d", i+1, i+2)
		total += span
	}
	assert.InDelta(t, 360.0, total, 1e-6)
}

func TestEqualHouses(t *testing.T) {
	hc, err := Houses(models.HouseEqual, testJD, 34.05, -118.25)
	require.NoError(t, err)

	assert.InDelta(t, hc.Ascendant, hc.Cusps[0], 1e-9)
	for i := 1; i < 12; i++ {
		assert.InDelta(t, 30.0, norm360(hc.Cusps[i]-hc.Cusps[i-1]), 1e-6)
	}
	cuspsIncrease(t, hc)
}

func TestWholeSignHouses(t *testing.T) {
	hc, err := Houses(models.HouseWholeSign, testJD, 34.05, -118.25)
	require.NoError(t, err)

	for i, c := range hc.Cusps {
		assert.InDelta(t, 0.0, c-30.0*float64(int(c/30)), 1e-9, "cusp %d", i+1)
	}
	ascSign, _ := SignAt(hc.Ascendant)
	cusp1Sign, _ := SignAt(hc.Cusps[0])
	assert.Equal(t, ascSign.Name, cusp1Sign.Name)
	cuspsIncrease(t, hc)
}

func TestPorphyryHouses(t *testing.T) {
	hc, err := Houses(models.HousePorphyry, testJD, 34.05, -118.25)
	require.NoError(t, err)

	assert.InDelta(t, hc.Ascendant, hc.Cusps[0], 1e-9)
	assert.InDelta(t, hc.Midheaven, hc.Cusps[9], 1e-9)
	// each quadrant is split into three equal ecliptic arcs
	arc := norm360(hc.Cusps[0] - hc.Cusps[9])
	assert.InDelta(t, arc/3, norm360(hc.Cusps[10]-hc.Cusps[9]), 1e-6)
	assert.InDelta(t, arc/3, norm360(hc.Cusps[11]-hc.Cusps[10]), 1e-6)
	cuspsIncrease(t, hc)
}

func TestPlacidusHouses(t *testing.T) {
	hc, err := Houses(models.HousePlacidus, testJD, 34.05, -118.25)
	require.NoError(t, err)

	assert.InDelta(t, hc.Ascendant, hc.Cusps[0], 1e-9)
	assert.InDelta(t, hc.Midheaven, hc.Cusps[9], 1e-9)
	cuspsIncrease(t, hc)

	// opposite cusps face each other
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 180.0, norm360(hc.Cusps[i+6]-hc.Cusps[i]), 1e-6, "cusp %d", i+1)
	}
}

func TestRegiomontanusHouses(t *testing.T) {
	hc, err := Houses(models.HouseRegiomontanus, testJD, 34.05, -118.25)
	require.NoError(t, err)

	assert.InDelta(t, hc.Ascendant, hc.Cusps[0], 1e-9)
	assert.InDelta(t, hc.Midheaven, hc.Cusps[9], 1e-9)
	cuspsIncrease(t, hc)
}

func TestQuadrantSystemsAgreeOnAngles(t *testing.T) {
	pl, err := Houses(models.HousePlacidus, testJD, 48.85, 2.35)
	require.NoError(t, err)
	rg, err := Houses(models.HouseRegiomontanus, testJD, 48.85, 2.35)
	require.NoError(t, err)

	assert.InDelta(t, pl.Ascendant, rg.Ascendant, 1e-9)
	assert.InDelta(t, pl.Midheaven, rg.Midheaven, 1e-9)
}

func TestPlacidusPolarLatitudeFails(t *testing.T) {
	_, err := Houses(models.HousePlacidus, testJD, 78.5, 15.0)
	require.Error(t, err)
	assert.Equal(t, models.KindUnsupportedHouseSystem, models.KindOf(err))
}

func TestEqualHousesWorkAtPolarLatitude(t *testing.T) {
	hc, err := Houses(models.HouseEqual, testJD, 78.5, 15.0)
	require.NoError(t, err)
	cuspsIncrease(t, hc)
}

func TestUnknownSystem(t *testing.T) {
	_, err := Houses("campanus", testJD, 34.05, -118.25)
	require.Error(t, err)
	assert.Equal(t, models.KindUnsupportedHouseSystem, models.KindOf(err))
}

func TestHouseOf(t *testing.T) {
	hc, err := Houses(models.HouseEqual, testJD, 34.05, -118.25)
	require.NoError(t, err)

	assert.Equal(t, 1, HouseOf(hc.Ascendant, hc))
	assert.Equal(t, 1, HouseOf(hc.Ascendant+15, hc))
	assert.Equal(t, 2, HouseOf(hc.Ascendant+31, hc))
	assert.Equal(t, 12, HouseOf(hc.Ascendant-1, hc))
	assert.Equal(t, 7, HouseOf(hc.Ascendant+185, hc))
}
