package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness and readiness probes (spec §6's
// GET /health, supplemented with a GET /health/ready that pings the
// active storage backend, no auth on either route).
type HealthHandler struct {
	ping func(ctx echo.Context) error
}

// NewHealthHandler builds a HealthHandler. ping checks the storage
// backend is reachable; pass nil to skip the check (e.g. the in-memory
// backend, which cannot fail).
func NewHealthHandler(ping func(c echo.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	if h.ping != nil {
		if err := h.ping(c); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
