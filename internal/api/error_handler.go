package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/api/middleware"
	"github.com/mobicorp/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope of the console. Alert carries
// the message the operator must see; Error is for everything else.
type errorResponse struct {
	Error string `json:"error,omitempty"`
	Alert string `json:"alert,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects to /login when the session ended or never started.
//   - Renders user alerts as {"alert": "<message>"}.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if target := redirectTarget(err, c); target != "" {
			_ = c.Redirect(http.StatusSeeOther, target)
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

// redirectTarget returns where the request must go instead of an error body.
// A request already on the login view is never redirected.
func redirectTarget(err error, c echo.Context) string {
	if c.Request().URL.Path == domain.LoginLocation {
		return ""
	}
	if nav := middleware.NavigationFrom(c.Request().Context()); nav != nil {
		if target := nav.Target(); target != "" {
			return target
		}
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return domain.LoginLocation
	}
	return ""
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var alert *domain.UserAlert
	if errors.As(err, &alert) {
		log.Error().Err(err).Str("path", c.Path()).Msg(alert.Message)
		return alertStatus(alert), errorResponse{Alert: alert.Message}
	}

	switch {
	case errors.Is(err, domain.ErrNoProductSelected):
		return http.StatusBadRequest, errorResponse{Error: "Seleccionar un producto"}
	case errors.Is(err, domain.ErrInvalidProductForm):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrRequestInFlight):
		return http.StatusConflict, errorResponse{Error: "request already in progress"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: "product not found"}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrUpstreamFailure):
		log.Error().Err(err).Str("path", c.Path()).Msg("upstream request failed")
		return http.StatusBadGateway, errorResponse{Error: "storefront API request failed"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// alertStatus keeps the API's client-error status for alerts caused by one;
// anything else is the upstream's fault.
func alertStatus(alert *domain.UserAlert) int {
	var apiErr *domain.APIError
	if errors.As(alert, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
