package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// DegreeHandler exposes degree progress endpoints.
type DegreeHandler struct {
	degrees *service.DegreeService
}

// NewDegreeHandler constructs a degree handler.
func NewDegreeHandler(degrees *service.DegreeService) *DegreeHandler {
	return &DegreeHandler{degrees: degrees}
}

// Progress godoc
// @Summary Degree progress against the program requirements table
// @Tags Degree
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope "No requirements table configured for the program"
// @Router /students/{id}/degree-progress [get]
func (h *DegreeHandler) Progress(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	progress, err := h.degrees.Progress(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
