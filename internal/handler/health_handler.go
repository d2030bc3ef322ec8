package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checkers []Checker
}

// NewHealthHandler aggregates dependency checkers.
func NewHealthHandler(checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Live always answers ok while the process serves requests.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready reports every dependency; any failure yields 503.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(h.checkers))
	for _, ch := range h.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		report[ch.Name()] = "ok"
	}
	return c.JSON(status, report)
}
