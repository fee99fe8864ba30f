package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/service"
)

// DashboardHandler handles the KPI views.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Operational godoc
// @Summary Operational KPIs: alarms, availability, round counts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.OperationalKPIs
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard/operational [get]
func (h *DashboardHandler) Operational(c echo.Context) error {
	kpis, err := h.dashboardService.Operational(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, kpis)
}

// Maintenance godoc
// @Summary Maintenance KPIs: defect hotspots by zone and type
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.MaintenanceKPIs
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard/maintenance [get]
func (h *DashboardHandler) Maintenance(c echo.Context) error {
	kpis, err := h.dashboardService.Maintenance(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, kpis)
}

// Performance godoc
// @Summary Performance KPIs: completion rate and operator activity
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.PerformanceKPIs
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard/performance [get]
func (h *DashboardHandler) Performance(c echo.Context) error {
	kpis, err := h.dashboardService.Performance(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, kpis)
}
