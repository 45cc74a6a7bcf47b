package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

func newGoalService(goals *fakeGoals) *GoalService {
	return NewGoalService(goals, knownStudent("stu-1"), nil, nil)
}

func activeGoal(id string, current, target float64) *models.LearningGoal {
	return &models.LearningGoal{
		ID: id, StudentID: "stu-1", Category: "study_hours", Title: "Goal " + id,
		TargetValue: target, CurrentValue: current, Unit: "hours",
		Deadline: time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.GoalStatusActive,
	}
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(s string) *string { return &s }

func TestGoalProgressClamped(t *testing.T) {
	assert.Equal(t, 50.0, GoalProgress(*activeGoal("g", 5, 10)))
	assert.Equal(t, 100.0, GoalProgress(*activeGoal("g", 15, 10)))
	assert.Equal(t, 0.0, GoalProgress(*activeGoal("g", 5, 0)))
	assert.Equal(t, 33.33, GoalProgress(*activeGoal("g", 1, 3)))
}

func TestCreateGoalStartsActive(t *testing.T) {
	repo := &fakeGoals{}
	svc := newGoalService(repo)

	goal, err := svc.Create(context.Background(), "stu-1", CreateGoalRequest{
		Category:    "study_hours",
		Title:       "Study 40 hours",
		TargetValue: 40,
		Unit:        "hours",
		Deadline:    "2026-10-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, goal.Status)
	assert.Equal(t, 0.0, goal.Progress)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), goal.Deadline)
	require.Len(t, repo.inserted, 1)
}

func TestCreateGoalRejectsBadDeadline(t *testing.T) {
	repo := &fakeGoals{}
	svc := newGoalService(repo)

	_, err := svc.Create(context.Background(), "stu-1", CreateGoalRequest{
		Category:    "study_hours",
		Title:       "Study 40 hours",
		TargetValue: 40,
		Unit:        "hours",
		Deadline:    "next tuesday",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.inserted)
}

func TestCreateGoalRejectsNonPositiveTarget(t *testing.T) {
	svc := newGoalService(&fakeGoals{})

	_, err := svc.Create(context.Background(), "stu-1", CreateGoalRequest{
		Category:    "study_hours",
		Title:       "Study",
		TargetValue: 0,
		Unit:        "hours",
		Deadline:    "2026-10-01T00:00:00Z",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUpdateGoalAutoCompletesOnTarget(t *testing.T) {
	repo := &fakeGoals{byID: map[string]*models.LearningGoal{
		"goal-1": activeGoal("goal-1", 30, 40),
	}}
	svc := newGoalService(repo)

	goal, err := svc.Update(context.Background(), "stu-1", "goal-1", UpdateGoalRequest{
		CurrentValue: floatPtr(40),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCompleted, goal.Status)
	assert.Equal(t, 100.0, goal.Progress)
	require.Len(t, repo.updated, 1)
}

func TestUpdateGoalPausedCannotComplete(t *testing.T) {
	paused := activeGoal("goal-1", 40, 40)
	paused.Status = models.GoalStatusPaused
	repo := &fakeGoals{byID: map[string]*models.LearningGoal{"goal-1": paused}}
	svc := newGoalService(repo)

	_, err := svc.Update(context.Background(), "stu-1", "goal-1", UpdateGoalRequest{
		Status: stringPtr("COMPLETED"),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, repo.updated)
}

func TestUpdateGoalPausedCanResume(t *testing.T) {
	paused := activeGoal("goal-1", 10, 40)
	paused.Status = models.GoalStatusPaused
	repo := &fakeGoals{byID: map[string]*models.LearningGoal{"goal-1": paused}}
	svc := newGoalService(repo)

	goal, err := svc.Update(context.Background(), "stu-1", "goal-1", UpdateGoalRequest{
		Status: stringPtr("ACTIVE"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, goal.Status)
}

func TestUpdateGoalOtherStudentIsNotFound(t *testing.T) {
	other := activeGoal("goal-1", 10, 40)
	other.StudentID = "stu-2"
	repo := &fakeGoals{byID: map[string]*models.LearningGoal{"goal-1": other}}
	svc := newGoalService(repo)

	_, err := svc.Update(context.Background(), "stu-1", "goal-1", UpdateGoalRequest{
		CurrentValue: floatPtr(20),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestListGoalsDerivesProgress(t *testing.T) {
	repo := &fakeGoals{goals: []models.LearningGoal{*activeGoal("goal-1", 10, 40)}}
	svc := newGoalService(repo)

	goals, err := svc.List(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 25.0, goals[0].Progress)
}
