package http

import (
	"context"
	"errors"
	"net/http"

	"deliveryhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

// respondError maps a domain error kind to its HTTP status. Unknown
// errors collapse to a generic 500 so collaborator details never leak.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrAuthFailed):
		return ctx.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid or expired token"})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, errorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrTimeout):
		return ctx.JSON(http.StatusGatewayTimeout, errorResponse{Message: "Request timed out"})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	}
}

// asTimeout converts a deadline expiry into the Timeout error kind so the
// mapping above can classify it. Other errors pass through unchanged.
func asTimeout(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewTimeoutErrorWithCause(operation, err)
	}
	return err
}
