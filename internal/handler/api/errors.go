package api

import (
	"errors"

	"SajuPulse/internal/domain/models"
	xhttp "SajuPulse/pkg/http"
)

// appError maps engine sentinel errors to 400s; anything else is internal.
func appError(err error) *xhttp.AppError {
	var code string
	switch {
	case errors.Is(err, models.ErrUnknownEventType):
		code = "ERR_UNKNOWN_EVENT_TYPE"
	case errors.Is(err, models.ErrUnknownCategory):
		code = "ERR_UNKNOWN_CATEGORY"
	case errors.Is(err, models.ErrInvalidHorizon):
		code = "ERR_INVALID_HORIZON"
	case errors.Is(err, models.ErrInvalidProfile):
		code = "ERR_INVALID_PROFILE"
	case errors.Is(err, models.ErrInvalidThresholds):
		code = "ERR_INVALID_THRESHOLDS"
	default:
		return xhttp.InternalError(err)
	}
	return xhttp.BadRequestError(code, err)
}

func isBadRequest(err error) bool {
	return appError(err).Status < 500
}
