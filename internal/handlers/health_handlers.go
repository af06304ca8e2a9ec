package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmacore/pkg/database"
)

// HealthHandlers exposes liveness and readiness probes
type HealthHandlers struct {
	db *database.DB
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *database.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready and verifies database
// connectivity.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.db.Pool.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
