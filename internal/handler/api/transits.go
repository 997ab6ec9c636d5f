package api

import (
	"strings"
	"time"

	"astroengine/internal/domain/models"
	xhttp "astroengine/pkg/http"
	xlogger "astroengine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Transits reports current (or given instant) contacts to a natal chart.
func (h *Handler) Transits(c echo.Context) error {
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	bd, err := req.BirthData.ToBirthData()
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	at := time.Now().UTC()
	if req.Timestamp != "" {
		t, perr := time.Parse(time.RFC3339, req.Timestamp)
		if perr != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("timestamp must be RFC3339").WithError(perr))
		}
		at = t.UTC()
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	report, err := h.transits.At(ctx, bd, req.Options.ToOptions(), at)
	if err != nil {
		h.logger.Error("transit usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, report)
}

// TransitPeriod samples transits across a window.
func (h *Handler) TransitPeriod(c echo.Context) error {
	req := &models.TransitPeriodRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	bd, err := req.BirthData.ToBirthData()
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("start must be RFC3339").WithError(err))
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("end must be RFC3339").WithError(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	reports, err := h.transits.Period(ctx, bd, req.Options.ToOptions(), start.UTC(), end.UTC(), req.StepDays)
	if err != nil {
		h.logger.Error("transit period usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, reports)
}

// TransitForecast scans years ahead for near-exact slow-mover contacts.
func (h *Handler) TransitForecast(c echo.Context) error {
	req := &models.ForecastQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	t, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("datetime must be RFC3339").WithError(err))
	}
	bd := models.BirthData{Datetime: t.UTC(), Latitude: req.Latitude, Longitude: req.Longitude}

	bodies := h.forecastBodies
	if strings.TrimSpace(req.Bodies) != "" {
		bodies = nil
		for _, p := range strings.Split(req.Bodies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				bodies = append(bodies, p)
			}
		}
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	forecast, err := h.transits.Forecast(ctx, bd, bodies, req.Years, req.StepDays)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, forecast)
}
