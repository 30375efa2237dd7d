package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peanutblog/blog-api/internal/core/domain"
)

// errorResponse is the canonical failure envelope for all API errors.
type errorResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Errors  domain.FieldErrors `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns the boundary handler every failure bubbles to:
//   - *domain.Error renders with its own status, message and field errors.
//   - Known sentinels map to deterministic statuses.
//   - Echo's own errors (bind failures, method not allowed, ...) keep their
//     code.
//   - Anything else is logged with its real cause and answered with a
//     generic 500 so internal detail never reaches the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Message: msg, Errors: fields})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, domain.FieldErrors) {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Status, de.Message, de.Fields
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, "Admin not found", nil
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, "Role not found", nil
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusUnprocessableEntity, "Username is taken",
			domain.FieldErrors{"username": "Username is taken"}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusUnprocessableEntity, "Email is taken",
			domain.FieldErrors{"email": "Email is taken"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", nil
}
