package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/domain"
)

// problemResponse is the canonical error envelope for all API errors
// (spec §7): title is a short human-readable summary, detail elaborates
// only for kinds safe to elaborate on, correlation_id lets an operator
// find the matching log line for a 500 without the client ever seeing
// the underlying cause.
type problemResponse struct {
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the
// domain.Err* taxonomy to spec §7's HTTP status codes and envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		correlationID := c.Response().Header().Get(echo.HeaderXRequestID)
		status, title, detail := resolveError(err, log, c, correlationID)
		_ = c.JSON(status, problemResponse{
			Title:         title,
			Status:        status,
			Detail:        detail,
			CorrelationID: correlationID,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, correlationID string) (status int, title, detail string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, http.StatusText(he.Code), fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid Request", err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthenticated", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden", ""
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found", ""
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Conflict", ""
	case errors.Is(err, domain.ErrUnprocessableEntity):
		return http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error()
	case errors.Is(err, domain.ErrGatewayTimeout):
		return http.StatusGatewayTimeout, "Gateway Timeout", ""
	}

	log.Error().
		Err(err).
		Str("correlation_id", correlationID).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error", ""
}
