package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/errs"
)

// respondError translates domain and application errors into the wire
// error taxonomy. Anything unrecognized is a 500 with no detail leaked.
func respondError(c echo.Context, err error) error {
	var transitionErr *delivery.TransitionError
	if errors.As(err, &transitionErr) {
		status := http.StatusConflict
		if transitionErr.Reason == delivery.ReasonRoleNotPermitted {
			status = http.StatusForbidden
		}
		return c.JSON(status, ErrorResponse{
			Code:    transitionErr.Reason.String(),
			Message: err.Error(),
		})
	}

	switch {
	case errors.Is(err, commands.ErrLocationRequired):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "LOCATION_REQUIRED",
			Message: err.Error(),
		})

	case errors.Is(err, commands.ErrActionNotPermitted),
		errors.Is(err, queries.ErrAvailableListIsPorterOnly),
		errors.Is(err, queries.ErrUnpaidListHasNoPorterView):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    "FORBIDDEN",
			Message: err.Error(),
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})

	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    "CONFLICT",
			Message: err.Error(),
		})

	case errors.Is(err, ErrInvalidTokenClaims):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: err.Error(),
		})

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}

// respondBadRequest is for malformed payloads caught before any command
// object exists.
func respondBadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	})
}
