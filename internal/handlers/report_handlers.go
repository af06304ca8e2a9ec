package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/analytics"
	"pharmacore/internal/common"
)

// ReportHandlers serves the sales and restock analytics endpoints
type ReportHandlers struct {
	analyticsService *analytics.AnalyticsService
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(analyticsService *analytics.AnalyticsService) *ReportHandlers {
	return &ReportHandlers{analyticsService: analyticsService}
}

// TopSellingMedicines handles GET /reports/top-selling
func (h *ReportHandlers) TopSellingMedicines(c echo.Context) error {
	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	report, err := h.analyticsService.TopSellingMedicines(c.Request().Context(), limit)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// MonthlyRevenueTrend handles GET /reports/revenue
func (h *ReportHandlers) MonthlyRevenueTrend(c echo.Context) error {
	months := 12
	if monthsStr := c.QueryParam("months"); monthsStr != "" {
		if parsed, err := strconv.Atoi(monthsStr); err == nil {
			months = parsed
		}
	}

	report, err := h.analyticsService.MonthlyRevenueTrend(c.Request().Context(), months)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// EmployeePerformance handles GET /reports/employee-performance
func (h *ReportHandlers) EmployeePerformance(c echo.Context) error {
	report, err := h.analyticsService.EmployeePerformance(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// RestockRecommendations handles GET /reports/restock
func (h *ReportHandlers) RestockRecommendations(c echo.Context) error {
	report, err := h.analyticsService.RestockRecommendations(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// RestockCSV handles GET /reports/restock.csv and streams the report as
// a spreadsheet-friendly download.
func (h *ReportHandlers) RestockCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="restock_report.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.analyticsService.WriteRestockCSV(c.Request().Context(), c.Response())
}
