package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

func newRecommendationService(repo *fakeSessions, performances *fakePerformances, goals *fakeGoals, now time.Time) *RecommendationService {
	sessions := newSessionService(knownStudent("stu-1"), repo)
	patterns := NewPatternService(sessions, nil)
	efficiency := NewEfficiencyService(sessions, nil, EfficiencyServiceConfig{})
	efficiency.now = func() time.Time { return now }
	svc := NewRecommendationService(patterns, efficiency, performances, goals, &fakeEnrollments{}, nil, RecommendationServiceConfig{})
	svc.now = func() time.Time { return now }
	return svc
}

func performance(subject string, grade models.LetterGrade) models.SubjectPerformance {
	return models.SubjectPerformance{
		ID: "perf-" + subject, StudentID: "stu-1", Subject: subject,
		AcademicYear: 2026, Semester: models.SemesterSpring, CurrentGrade: grade,
	}
}

func TestRecommendationsEmptyInputs(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	svc := newRecommendationService(&fakeSessions{}, &fakePerformances{}, &fakeGoals{}, now)

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.NotNil(t, recommendations)
	assert.Empty(t, recommendations)
}

func TestSubjectFocusWorstGradesFirst(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	performances := &fakePerformances{performances: []models.SubjectPerformance{
		performance("Statistics", "C"),
		performance("Physics", "F"),
		performance("Chemistry", "D"),
		performance("Literature", "A"),
	}}
	svc := newRecommendationService(&fakeSessions{}, performances, &fakeGoals{}, now)

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	rec := recommendations[0]
	assert.Equal(t, "rec-subject-focus", rec.ID)
	assert.Equal(t, models.PriorityHigh, rec.Priority)
	// Worst two grades only: F before D, the C is cut by the cap.
	assert.Contains(t, rec.Title, "Physics")
	assert.Contains(t, rec.Title, "Chemistry")
	assert.NotContains(t, rec.Title, "Statistics")
	require.Len(t, rec.ActionItems, 2)
}

func TestScheduleRecommendationNamesBestHour(t *testing.T) {
	now := time.Date(2026, time.August, 30, 20, 0, 0, 0, time.UTC)
	repo := &fakeSessions{sessions: []models.StudySession{
		efficiencySession(dayAt(2026, time.August, 24, 9), 60, 5),
		efficiencySession(dayAt(2026, time.August, 25, 9), 60, 5),
		efficiencySession(dayAt(2026, time.August, 24, 22), 60, 2),
	}}
	svc := newRecommendationService(repo, &fakePerformances{}, &fakeGoals{}, now)

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	var schedule *models.Recommendation
	for i := range recommendations {
		if recommendations[i].ID == "rec-schedule-optimization" {
			schedule = &recommendations[i]
		}
	}
	require.NotNil(t, schedule)
	assert.Contains(t, schedule.Title, "09:00-10:00")
}

func TestGoalPacingFlagsBehindGoals(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	goals := &fakeGoals{goals: []models.LearningGoal{
		{
			ID: "goal-1", StudentID: "stu-1", Title: "Read 10 papers",
			TargetValue: 10, CurrentValue: 2, Status: models.GoalStatusActive,
			Deadline: now.AddDate(0, 0, 7),
		},
		{
			ID: "goal-2", StudentID: "stu-1", Title: "Far deadline",
			TargetValue: 10, CurrentValue: 2, Status: models.GoalStatusActive,
			Deadline: now.AddDate(0, 2, 0),
		},
	}}
	svc := newRecommendationService(&fakeSessions{}, &fakePerformances{}, goals, now)

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "rec-goal-pacing", recommendations[0].ID)
	require.Len(t, recommendations[0].ActionItems, 1)
	assert.Contains(t, recommendations[0].ActionItems[0], "Read 10 papers")
}

func TestStudyLoadFlagsUnderStudying(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	svc := newRecommendationService(&fakeSessions{}, &fakePerformances{}, &fakeGoals{}, now)
	svc.enrollments = &fakeEnrollments{enrollments: []models.Enrollment{
		registeredEnrollment("e1", 3),
		registeredEnrollment("e2", 4),
	}}

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	rec := recommendations[0]
	assert.Equal(t, "rec-study-load", rec.ID)
	assert.Equal(t, models.PriorityMedium, rec.Priority)
	// 7 registered credits at the default 2 hours per credit.
	assert.Contains(t, rec.Title, "14 study hours")
	assert.Contains(t, rec.Description, "7 registered credits")
}

func TestStudyLoadQuietWhenHoursKeepPace(t *testing.T) {
	now := time.Date(2026, time.August, 30, 20, 0, 0, 0, time.UTC)
	repo := &fakeSessions{sessions: []models.StudySession{
		efficiencySession(dayAt(2026, time.August, 27, 9), 300, 3),
		efficiencySession(dayAt(2026, time.August, 28, 9), 300, 3),
	}}
	svc := newRecommendationService(repo, &fakePerformances{}, &fakeGoals{}, now)
	svc.enrollments = &fakeEnrollments{enrollments: []models.Enrollment{
		registeredEnrollment("e1", 3),
		registeredEnrollment("e2", 4),
	}}

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	// 10 logged hours against a 14-hour plan stays above the shortfall line.
	for _, rec := range recommendations {
		assert.NotEqual(t, "rec-study-load", rec.ID)
	}
}

func TestRecommendationsOrderedByPriorityAndCapped(t *testing.T) {
	now := time.Date(2026, time.August, 30, 20, 0, 0, 0, time.UTC)
	var sessions []models.StudySession
	for day := 0; day < 7; day++ {
		started := now.AddDate(0, 0, -day).Add(-10 * time.Hour)
		sessions = append(sessions,
			efficiencySession(started, 270, 2),
			models.StudySession{
				ID: "home", StudentID: "stu-1", Subject: "Algorithms",
				StartedAt: started.Add(5 * time.Hour), DurationMinutes: 270,
				Activity: models.ActivityStudy, Location: models.LocationHome,
				Efficiency: 4, Manual: true,
			})
	}
	performances := &fakePerformances{performances: []models.SubjectPerformance{
		performance("Physics", "F"),
	}}
	svc := newRecommendationService(&fakeSessions{sessions: sessions}, performances, &fakeGoals{}, now)

	recommendations, err := svc.ForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)
	assert.LessOrEqual(t, len(recommendations), 6)
	for i := 1; i < len(recommendations); i++ {
		assert.LessOrEqual(t,
			priorityRank[recommendations[i-1].Priority],
			priorityRank[recommendations[i].Priority])
	}
}
