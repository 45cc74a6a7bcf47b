package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

type goalRepo interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.LearningGoal, error)
	FindByID(ctx context.Context, id string) (*models.LearningGoal, error)
	Insert(ctx context.Context, goal *models.LearningGoal) error
	Update(ctx context.Context, goal *models.LearningGoal) error
}

// CreateGoalRequest declares a new learning goal.
type CreateGoalRequest struct {
	Category    string  `json:"category" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	TargetValue float64 `json:"target_value" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required"`
	Deadline    string  `json:"deadline" validate:"required"`
}

// UpdateGoalRequest advances progress or transitions status.
type UpdateGoalRequest struct {
	CurrentValue *float64 `json:"current_value" validate:"omitempty,gte=0"`
	Status       *string  `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED PAUSED FAILED"`
}

// GoalService manages learning-goal lifecycle and derives progress
// percentages.
type GoalService struct {
	goals     goalRepo
	students  studentReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGoalService constructs a GoalService.
func NewGoalService(goals goalRepo, students studentReader, validate *validator.Validate, logger *zap.Logger) *GoalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{goals: goals, students: students, validator: validate, logger: logger}
}

// List returns a student's goals with derived progress.
func (s *GoalService) List(ctx context.Context, studentID string) ([]models.LearningGoal, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list goals")
	}
	result := make([]models.LearningGoal, 0, len(goals))
	for _, goal := range goals {
		goal.Progress = GoalProgress(goal)
		result = append(result, goal)
	}
	return result, nil
}

// Create declares a goal, always starting active.
func (s *GoalService) Create(ctx context.Context, studentID string, req CreateGoalRequest) (*models.LearningGoal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid goal payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deadline must be RFC3339")
	}
	goal := &models.LearningGoal{
		StudentID:   studentID,
		Category:    req.Category,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Deadline:    deadline.UTC(),
		Status:      models.GoalStatusActive,
	}
	if err := s.goals.Insert(ctx, goal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert goal")
	}
	goal.Progress = GoalProgress(*goal)
	return goal, nil
}

// Update advances a goal's current value or transitions its status.
func (s *GoalService) Update(ctx context.Context, studentID, goalID string, req UpdateGoalRequest) (*models.LearningGoal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid goal payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load goal")
	}
	if goal.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}
	if req.Status != nil {
		next := models.GoalStatus(*req.Status)
		if err := validateGoalTransition(goal.Status, next); err != nil {
			return nil, err
		}
		goal.Status = next
	} else if goal.Status == models.GoalStatusActive && goal.TargetValue > 0 && goal.CurrentValue >= goal.TargetValue {
		goal.Status = models.GoalStatusCompleted
	}
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update goal")
	}
	goal.Progress = GoalProgress(*goal)
	return goal, nil
}

// GoalProgress derives the clamped completion percentage.
func GoalProgress(goal models.LearningGoal) float64 {
	if goal.TargetValue <= 0 {
		return 0
	}
	return Round2(ClampPercent(goal.CurrentValue / goal.TargetValue * 100))
}

// validateGoalTransition enforces the goal lifecycle: terminal states never
// transition again, paused goals may only resume.
func validateGoalTransition(current, next models.GoalStatus) error {
	if current == next {
		return nil
	}
	switch current {
	case models.GoalStatusActive:
		return nil
	case models.GoalStatusPaused:
		if next == models.GoalStatusActive || next == models.GoalStatusFailed {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrConflict,
		fmt.Sprintf("cannot transition goal from %s to %s", current, next))
}

func (s *GoalService) ensureStudent(ctx context.Context, studentID string) error {
	if studentID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return nil
}
