package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/catalog"
	"sakhigps/internal/models"
	"sakhigps/internal/render"
	"sakhigps/internal/services"
)

const safetyReportTTL = 10 * time.Minute

// SafetyHandler serves the safety score screen
type SafetyHandler struct {
	cache *services.RedisCache
}

// NewSafetyHandler creates a new SafetyHandler. cache may be nil.
func NewSafetyHandler(cache *services.RedisCache) *SafetyHandler {
	return &SafetyHandler{cache: cache}
}

func (h *SafetyHandler) report(c echo.Context) (models.SafetyReport, error) {
	return services.GetOrSet(c.Request().Context(), h.cache, "safety:report", safetyReportTTL, func() (models.SafetyReport, error) {
		return catalog.SafetyReport(), nil
	})
}

// SafetyPage renders the safety score breakdown
func (h *SafetyHandler) SafetyPage(c echo.Context) error {
	report, err := h.report(c)
	if err != nil {
		return err
	}
	return renderPage(c, "safety-score.html", "Safety Score", "safety", []render.Breadcrumb{{Title: "Safety Score"}}, report)
}

// APISafety returns the safety score breakdown
func (h *SafetyHandler) APISafety(c echo.Context) error {
	report, err := h.report(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
