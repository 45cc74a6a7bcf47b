package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/middleware"
	"github.com/noah-isme/uni-portal-api/internal/service"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// RecordHandler exposes academic record endpoints.
type RecordHandler struct {
	records *service.RecordService
}

// NewRecordHandler constructs a record handler.
func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// AcademicRecord godoc
// @Summary Full academic record with per-semester and cumulative GPA
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/academic-record [get]
func (h *RecordHandler) AcademicRecord(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	record, cacheHit, err := h.records.AcademicRecord(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, record, nil, middleware.ExtractMeta(c))
}

// Summary godoc
// @Summary Compact academic summary
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/academic-record/summary [get]
func (h *RecordHandler) Summary(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	summary, err := h.records.Summary(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// PostGrade godoc
// @Summary Finalize an enrollment with a terminal status and grade
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param enrollmentId path string true "Enrollment ID"
// @Param payload body service.PostGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollments/{enrollmentId}/grade [put]
func (h *RecordHandler) PostGrade(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req service.PostGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.records.PostGrade(c.Request.Context(), studentID, c.Param("enrollmentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment, nil)
}
