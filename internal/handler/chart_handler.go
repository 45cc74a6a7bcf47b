package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// ChartHandler exposes chart series endpoints.
type ChartHandler struct {
	charts *service.ChartService
}

// NewChartHandler constructs a chart handler.
func NewChartHandler(charts *service.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// Series godoc
// @Summary Render-ready chart series
// @Tags Charts
// @Produce json
// @Param id path string true "Student ID"
// @Param series path string true "Series key" Enums(gpa-trend, weekly-pattern, category-progress, hourly-efficiency)
// @Success 200 {object} response.Envelope
// @Router /students/{id}/charts/{series} [get]
func (h *ChartHandler) Series(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	series, err := h.charts.Series(c.Request.Context(), studentID, c.Param("series"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, series, nil)
}
