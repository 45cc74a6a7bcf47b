package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/models"
	"github.com/noah-isme/uni-portal-api/internal/service"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// SessionHandler exposes study session CRUD endpoints.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List godoc
// @Summary List study sessions
// @Tags Sessions
// @Produce json
// @Param id path string true "Student ID"
// @Param subject query string false "Filter by subject"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/study-sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	filter, err := sessionFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	sessions, err := h.sessions.List(c.Request.Context(), studentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}

// Log godoc
// @Summary Record a manual study session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.LogSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/study-sessions [post]
func (h *SessionHandler) Log(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req service.LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.sessions.Log(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Update godoc
// @Summary Update a manual study session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param sessionId path string true "Session ID"
// @Param payload body service.UpdateSessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/study-sessions/{sessionId} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req service.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.sessions.Update(c.Request.Context(), studentID, c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Delete godoc
// @Summary Delete a manual study session
// @Tags Sessions
// @Param id path string true "Student ID"
// @Param sessionId path string true "Session ID"
// @Success 204
// @Router /students/{id}/study-sessions/{sessionId} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), studentID, c.Param("sessionId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func sessionFilterFromQuery(c *gin.Context) (models.StudySessionFilter, error) {
	filter := models.StudySessionFilter{Subject: c.Query("subject")}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "from must be RFC3339")
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "to must be RFC3339")
		}
		filter.DateTo = &to
	}
	return filter, nil
}
