package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// RecommendationHandler exposes the recommendation endpoint.
type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

// NewRecommendationHandler constructs a recommendation handler.
func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// List godoc
// @Summary Prioritised study recommendations
// @Tags Recommendations
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	recommendations, err := h.recommendations.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recommendations, nil)
}
