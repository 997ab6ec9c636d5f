package api

import (
	"astroengine/internal/domain/models"
	xhttp "astroengine/pkg/http"
)

// toAppError translates domain error kinds into transport errors:
// bad input is 400, an unsupported epoch is 503, a blown deadline 504,
// anything else 500.
func toAppError(err error) *xhttp.AppError {
	switch models.KindOf(err) {
	case models.KindValidation, models.KindUnsupportedHouseSystem:
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case models.KindEphemerisUnavailable:
		return xhttp.UnavailableError(err.Error()).WithError(err)
	case models.KindProviderTimeout:
		return xhttp.TimeoutError("calculation exceeded the request deadline").WithError(err)
	default:
		return xhttp.InternalError("calculation failed").WithError(err)
	}
}
