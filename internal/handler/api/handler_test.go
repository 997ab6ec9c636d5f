package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroengine/internal/ephemeris"
	"astroengine/internal/usecase"
	"astroengine/pkg/cache"
	xlogger "astroengine/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordChartComputed(string)         {}
func (nopMetrics) RecordCacheHit(string)              {}
func (nopMetrics) RecordCacheMiss(string)             {}
func (nopMetrics) RecordCacheError()                  {}
func (nopMetrics) RecordError(string)                 {}
func (nopMetrics) RecordCalcDuration(string, float64) {}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)

	src := ephemeris.New(1800, 2050)
	c := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))
	t.Cleanup(func() { c.Close() })
	m := nopMetrics{}

	charts := usecase.NewBirthChartUseCase(src, c, m, nil, l, time.Hour, "")
	transits := usecase.NewTransitUseCase(src, c, m, l, time.Hour)
	progressions := usecase.NewProgressionUseCase(src, m, l)

	h := NewHandler(l, charts, transits, progressions, 10*time.Second,
		[]string{"jupiter", "saturn", "uranus", "neptune", "pluto"})

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

const validChartBody = `{
	"birth_data": {
		"datetime": "1990-06-15T14:25:00-07:00",
		"latitude": 34.0522,
		"longitude": -118.2437
	},
	"options": {"house_system": "placidus"}
}`

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateChart(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/charts", validChartBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.NotEmpty(t, data["chart_id"])
	assert.Len(t, data["planets"], 12)
	assert.NotEmpty(t, data["aspects"])

	houses, ok := data["houses"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "placidus", houses["system"])
	assert.Len(t, houses["cusps"], 12)
}

func TestCreateChartDeterministic(t *testing.T) {
	e := newTestServer(t)
	first := doJSON(e, http.MethodPost, "/api/charts", validChartBody)
	second := doJSON(e, http.MethodPost, "/api/charts", validChartBody)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCreateChartValidation(t *testing.T) {
	e := newTestServer(t)

	cases := map[string]string{
		"latitude out of range": `{
			"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 95, "longitude": 0}
		}`,
		"longitude out of range": `{
			"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 0, "longitude": 200}
		}`,
		"bad datetime": `{
			"birth_data": {"datetime": "yesterday", "latitude": 0, "longitude": 0}
		}`,
		"bad house system": `{
			"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 0, "longitude": 0},
			"options": {"house_system": "campanus"}
		}`,
		"missing birth data": `{}`,
	}
	for name, body := range cases {
		rec := doJSON(e, http.MethodPost, "/api/charts", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s: %s", name, rec.Body.String())
	}
}

func TestCreateChartOutsideEpoch(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1750-06-15T12:00:00Z", "latitude": 48.85, "longitude": 2.35}
	}`
	rec := doJSON(e, http.MethodPost, "/api/charts", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

func TestCreateChartPolarPlacidus(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T12:00:00Z", "latitude": 78.5, "longitude": 15}
	}`
	rec := doJSON(e, http.MethodPost, "/api/charts", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestChartSummary(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet,
		"/api/charts/summary?datetime=1990-06-15T14%3A25%3A00-07%3A00&latitude=34.0522&longitude=-118.2437", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.Equal(t, "gemini", data["sun_sign"])
	assert.NotEmpty(t, data["moon_sign"])
	assert.NotEmpty(t, data["rising_sign"])
}

func TestChartSummaryRequiresDatetime(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/charts/summary?latitude=0&longitude=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanets(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/planets", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataOf(t, rec)
	assert.Len(t, data["positions"], 12)

	rec = doJSON(e, http.MethodGet, "/api/planets?datetime=2020-03-01T00%3A00%3A00Z&bodies=sun,moon", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data = dataOf(t, rec)
	assert.Len(t, data["positions"], 2)

	rec = doJSON(e, http.MethodGet, "/api/planets?bodies=vulcan", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransits(t *testing.T) {
	e := newTestServer(t)
	body := fmt.Sprintf(`{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"timestamp": %q
	}`, time.Now().UTC().Format(time.RFC3339))

	rec := doJSON(e, http.MethodPost, "/api/transits", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.Len(t, data["positions"], 12)
	assert.NotNil(t, data["aspects"])
}

func TestTransitPeriod(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"start": "2020-01-01T00:00:00Z",
		"end": "2020-01-05T00:00:00Z",
		"step_days": 1
	}`
	rec := doJSON(e, http.MethodPost, "/api/transits/period", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 5)
}

func TestTransitPeriodBadWindow(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"start": "2020-01-05T00:00:00Z",
		"end": "2020-01-01T00:00:00Z"
	}`
	rec := doJSON(e, http.MethodPost, "/api/transits/period", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitForecast(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet,
		"/api/transits/forecast?datetime=1990-06-15T14%3A25%3A00-07%3A00&latitude=34.0522&longitude=-118.2437&years=1&step_days=10", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.NotNil(t, data["events"])
	assert.Len(t, data["bodies"], 5)
}

func TestProgressions(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"method": "secondary",
		"target_date": "2020-06-15T00:00:00Z"
	}`
	rec := doJSON(e, http.MethodPost, "/api/progressions", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.Equal(t, "secondary", data["method"])
	assert.Len(t, data["planets"], 12)

	// the progressed chart carries the same shape as a natal chart
	houses, ok := data["houses"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, houses["cusps"], 12)
	assert.NotEmpty(t, data["aspects"])
	assert.NotEmpty(t, data["dominants"])
	assert.NotNil(t, data["aspects_to_natal"])
}

func TestProgressionsRejectsUnknownMethod(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"method": "dasha",
		"target_date": "2020-06-15T00:00:00Z"
	}`
	rec := doJSON(e, http.MethodPost, "/api/progressions", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateChartIncludeFlags(t *testing.T) {
	e := newTestServer(t)
	body := `{
		"birth_data": {"datetime": "1990-06-15T14:25:00-07:00", "latitude": 34.0522, "longitude": -118.2437},
		"options": {"include_aspects": false, "include_dominants": false}
	}`
	rec := doJSON(e, http.MethodPost, "/api/charts", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	assert.Len(t, data["planets"], 12)
	_, hasAspects := data["aspects"]
	_, hasDominants := data["dominants"]
	assert.False(t, hasAspects)
	assert.False(t, hasDominants)
}

func TestCreateChartResolvesTimezone(t *testing.T) {
	e := newTestServer(t)
	base := `{"birth_data": {"datetime": "1990-06-15T14:25:00Z", "latitude": 34.0522, "longitude": -118.2437, "timezone": %q}}`

	la := doJSON(e, http.MethodPost, "/api/charts", fmt.Sprintf(base, "America/Los_Angeles"))
	ny := doJSON(e, http.MethodPost, "/api/charts", fmt.Sprintf(base, "America/New_York"))
	require.Equal(t, http.StatusOK, la.Code, la.Body.String())
	require.Equal(t, http.StatusOK, ny.Code, ny.Body.String())

	// the same wall clock in different zones is a different instant,
	// hence a different chart
	assert.NotEqual(t, dataOf(t, la)["chart_id"], dataOf(t, ny)["chart_id"])

	bad := doJSON(e, http.MethodPost, "/api/charts",
		fmt.Sprintf(base, "Mars/Olympus_Mons"))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}
