package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// AnalyticsHandler exposes study analytics endpoints.
type AnalyticsHandler struct {
	sessions   *service.SessionService
	patterns   *service.PatternService
	efficiency *service.EfficiencyService
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler(sessions *service.SessionService, patterns *service.PatternService, efficiency *service.EfficiencyService) *AnalyticsHandler {
	return &AnalyticsHandler{sessions: sessions, patterns: patterns, efficiency: efficiency}
}

// Study godoc
// @Summary Aggregate study statistics
// @Tags Analytics
// @Produce json
// @Param id path string true "Student ID"
// @Param subject query string false "Filter by subject"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/analytics/study [get]
func (h *AnalyticsHandler) Study(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	filter, err := sessionFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.sessions.Stats(c.Request.Context(), studentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Patterns godoc
// @Summary Mined study patterns (best hours, locations, weekly rhythm)
// @Tags Analytics
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/analytics/patterns [get]
func (h *AnalyticsHandler) Patterns(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	filter, err := sessionFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	patterns, err := h.patterns.Patterns(c.Request.Context(), studentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patterns, nil)
}

// Efficiency godoc
// @Summary Focus score, trend and burnout risk
// @Tags Analytics
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/analytics/efficiency [get]
func (h *AnalyticsHandler) Efficiency(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	report, err := h.efficiency.Report(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
