package api

import (
	"time"

	"astroengine/internal/domain/models"
	xhttp "astroengine/pkg/http"
	xlogger "astroengine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Progressions computes a progressed chart for a target date.
func (h *Handler) Progressions(c echo.Context) error {
	req := &models.ProgressionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	bd, err := req.BirthData.ToBirthData()
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	target, err := time.Parse(time.RFC3339, req.TargetDate)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("target_date must be RFC3339").WithError(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	chart, err := h.progressions.Compute(ctx, bd, req.Options.ToOptions(), req.Method, target.UTC())
	if err != nil {
		h.logger.Error("progression usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, chart)
}
