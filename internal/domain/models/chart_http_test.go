package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBirthDataKeepsCarriedOffset(t *testing.T) {
	r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00-07:00", Latitude: 34.0522, Longitude: -118.2437}
	bd, err := r.ToBirthData()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 21, 25, 0, 0, time.UTC), bd.Datetime)
}

func TestToBirthDataResolvesNamedZone(t *testing.T) {
	r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00Z", Timezone: "America/Los_Angeles"}
	bd, err := r.ToBirthData()
	require.NoError(t, err)

	// 14:25 on a June wall clock in Los Angeles is PDT, seven hours
	// behind UTC
	assert.Equal(t, time.Date(1990, 6, 15, 21, 25, 0, 0, time.UTC), bd.Datetime)
}

func TestToBirthDataZonesDisambiguate(t *testing.T) {
	at := func(zone string) time.Time {
		t.Helper()
		r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00Z", Timezone: zone}
		bd, err := r.ToBirthData()
		require.NoError(t, err)
		return bd.Datetime
	}
	assert.Equal(t, 3*time.Hour, at("America/Los_Angeles").Sub(at("America/New_York")))
}

func TestToBirthDataFixedOffset(t *testing.T) {
	r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00Z", Timezone: "+05:30"}
	bd, err := r.ToBirthData()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 8, 55, 0, 0, time.UTC), bd.Datetime)
}

func TestToBirthDataUTCZone(t *testing.T) {
	r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00-07:00", Timezone: "UTC"}
	bd, err := r.ToBirthData()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 14, 25, 0, 0, time.UTC), bd.Datetime)
}

func TestToBirthDataUnknownZone(t *testing.T) {
	r := &BirthDataRequest{Datetime: "1990-06-15T14:25:00Z", Timezone: "Mars/Olympus_Mons"}
	_, err := r.ToBirthData()
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestChartOptionsIncludeDefaults(t *testing.T) {
	opts := ChartOptionsRequest{}.ToOptions()
	assert.True(t, opts.IncludeAspects)
	assert.True(t, opts.IncludeDominants)

	off := false
	opts = ChartOptionsRequest{IncludeAspects: &off, IncludeDominants: &off}.ToOptions()
	assert.False(t, opts.IncludeAspects)
	assert.False(t, opts.IncludeDominants)
}
