package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// GoalHandler exposes learning goal endpoints.
type GoalHandler struct {
	goals *service.GoalService
}

// NewGoalHandler constructs a goal handler.
func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// List godoc
// @Summary List learning goals with derived progress
// @Tags Goals
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	goals, err := h.goals.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goals, nil)
}

// Create godoc
// @Summary Declare a learning goal
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.CreateGoalRequest true "Goal payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req service.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	goal, err := h.goals.Create(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, goal)
}

// Update godoc
// @Summary Advance goal progress or transition status
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param goalId path string true "Goal ID"
// @Param payload body service.UpdateGoalRequest true "Goal payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/goals/{goalId} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req service.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	goal, err := h.goals.Update(c.Request.Context(), studentID, c.Param("goalId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal, nil)
}
