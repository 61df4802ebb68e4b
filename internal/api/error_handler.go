package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and the fixed
//     operator-facing messages.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders the JSON envelope {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials. Try again."
	case errors.Is(err, domain.ErrInvalidBalance):
		return http.StatusUnprocessableEntity, "Invalid balance value."
	case errors.Is(err, domain.ErrInvalidBillingType):
		return http.StatusUnprocessableEntity, "Invalid billing type."
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusUnprocessableEntity, "All fields are required."
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusBadRequest, "confirmation required"
	case errors.Is(err, domain.ErrNoShopSelected):
		return http.StatusConflict, "No shop selected."
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, "shop not found"
	case errors.Is(err, domain.ErrUpstream):
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("shop api request failed")
		return http.StatusBadGateway, "shop API request failed"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
