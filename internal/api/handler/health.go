package handler

import (
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is up; it deliberately touches no
// dependency so a slow database cannot fail the probe.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return ok(c, "alive")
}
