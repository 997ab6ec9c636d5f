package api

import (
	"strings"
	"time"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
	xhttp "astroengine/pkg/http"
	xlogger "astroengine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateChart computes (or serves from cache) a full natal chart.
func (h *Handler) CreateChart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	bd, err := req.BirthData.ToBirthData()
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	chart, err := h.charts.Compute(ctx, bd, req.Options.ToOptions())
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, chart)
}

// ChartSummary returns the big three and dominant emphasis.
func (h *Handler) ChartSummary(c echo.Context) error {
	req := &models.ChartSummaryQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	t, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("datetime must be RFC3339").WithError(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	bd := models.BirthData{Datetime: t.UTC(), Latitude: req.Latitude, Longitude: req.Longitude}
	opts := models.ChartOptions{
		HouseSystem:      req.HouseSystem,
		IncludeAspects:   true,
		IncludeDominants: true,
		ZodiacType:       "tropical",
	}

	summary, err := h.charts.Summary(ctx, bd, opts)
	if err != nil {
		h.logger.Error("summary usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, summary)
}

// Planets returns raw positions for an instant, defaulting to now.
func (h *Handler) Planets(c echo.Context) error {
	req := &models.PlanetsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	at := time.Now().UTC()
	if req.Datetime != "" {
		t, err := time.Parse(time.RFC3339, req.Datetime)
		if err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("datetime must be RFC3339").WithError(err))
		}
		at = t.UTC()
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	positions, err := h.transits.Sky(ctx, at, parseBodies(req.Bodies))
	if err != nil {
		h.logger.Error("planets usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"timestamp": at.Format(time.RFC3339),
		"positions": positions,
	})
}

// parseBodies splits a comma separated body list, empty meaning all.
func parseBodies(s string) []ephemeris.Body {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]ephemeris.Body, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, ephemeris.Body(p))
		}
	}
	return out
}
