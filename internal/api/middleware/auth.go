package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/auth"
)

// Auth validates the bearer token against verifier and injects the
// resolved Caller capability object into context. It performs no policy
// logic of its own — that is Authorization Policy's job — only
// token-shape validation and identity resolution (spec §4.1, §4.2).
func Auth(verifier auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				var unauth *auth.UnauthenticatedError
				if errors.As(err, &unauth) {
					return echo.NewHTTPError(http.StatusUnauthorized, string(unauth.Reason))
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("caller", auth.ResolveCaller(claims))
			return next(c)
		}
	}
}
