package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/auth"
)

const callerContextKey = "caller"

// ctxCaller extracts the Caller capability object injected by
// middleware.Auth. Its absence means the middleware did not run for this
// route, a wiring bug rather than a client error, so it fails loud rather
// than falling back to an empty Caller that policy would silently deny.
func ctxCaller(c echo.Context) (auth.Caller, error) {
	caller, ok := c.Get(callerContextKey).(auth.Caller)
	if !ok {
		return auth.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return caller, nil
}
