package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

func patternSession(startedAt time.Time, minutes, efficiency int, location models.StudyLocation) models.StudySession {
	return models.StudySession{
		ID: "ses", StudentID: "stu-1", Subject: "Algorithms", StartedAt: startedAt,
		DurationMinutes: minutes, Activity: models.ActivityStudy,
		Location: location, Efficiency: efficiency, Manual: true,
	}
}

func TestMineEmptySessions(t *testing.T) {
	patterns := Mine("stu-1", nil)

	assert.Empty(t, patterns.PreferredHours)
	assert.Empty(t, patterns.PreferredLocations)
	require.Len(t, patterns.WeeklyPattern, 7)
	for weekday, day := range patterns.WeeklyPattern {
		assert.Equal(t, weekday, day.Weekday)
		assert.Zero(t, day.TotalHours)
		assert.Zero(t, day.AverageEfficiency)
	}
}

func TestMineRanksHoursByEfficiency(t *testing.T) {
	sessions := []models.StudySession{
		patternSession(dayAt(2026, time.August, 24, 9), 60, 5, models.LocationLibrary),
		patternSession(dayAt(2026, time.August, 25, 9), 60, 5, models.LocationLibrary),
		patternSession(dayAt(2026, time.August, 24, 21), 60, 2, models.LocationHome),
	}

	patterns := Mine("stu-1", sessions)

	require.Len(t, patterns.PreferredHours, 2)
	assert.Equal(t, 9, patterns.PreferredHours[0].Hour)
	assert.InDelta(t, 5.0, patterns.PreferredHours[0].AverageEfficiency, 0.001)
	assert.Equal(t, 2, patterns.PreferredHours[0].Sessions)
	assert.Equal(t, 21, patterns.PreferredHours[1].Hour)
}

func TestMineRanksLocations(t *testing.T) {
	sessions := []models.StudySession{
		patternSession(dayAt(2026, time.August, 24, 9), 60, 5, models.LocationLibrary),
		patternSession(dayAt(2026, time.August, 25, 10), 60, 2, models.LocationHome),
	}

	patterns := Mine("stu-1", sessions)

	require.Len(t, patterns.PreferredLocations, 2)
	assert.Equal(t, models.LocationLibrary, patterns.PreferredLocations[0].Location)
	assert.Equal(t, models.LocationHome, patterns.PreferredLocations[1].Location)
}

func TestMineTieBreaksDeterministic(t *testing.T) {
	sessions := []models.StudySession{
		patternSession(dayAt(2026, time.August, 24, 14), 60, 4, models.LocationHome),
		patternSession(dayAt(2026, time.August, 24, 9), 60, 4, models.LocationLibrary),
	}

	patterns := Mine("stu-1", sessions)

	// Equal efficiency ties resolve by ascending hour and location.
	require.Len(t, patterns.PreferredHours, 2)
	assert.Equal(t, 9, patterns.PreferredHours[0].Hour)
	require.Len(t, patterns.PreferredLocations, 2)
	assert.Equal(t, models.LocationHome, patterns.PreferredLocations[0].Location)
}

func TestMineWeeklyPatternAggregates(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := dayAt(2026, time.August, 24, 9)
	sessions := []models.StudySession{
		patternSession(monday, 60, 4, models.LocationLibrary),
		patternSession(monday.Add(4*time.Hour), 30, 2, models.LocationLibrary),
	}

	patterns := Mine("stu-1", sessions)

	require.Len(t, patterns.WeeklyPattern, 7)
	mondayEntry := patterns.WeeklyPattern[1]
	assert.Equal(t, 1, mondayEntry.Weekday)
	assert.InDelta(t, 1.5, mondayEntry.TotalHours, 0.001)
	assert.InDelta(t, 3.0, mondayEntry.AverageEfficiency, 0.001)
	assert.Zero(t, patterns.WeeklyPattern[0].TotalHours)
}

func TestMineSkipsNonPositiveDurations(t *testing.T) {
	sessions := []models.StudySession{
		patternSession(dayAt(2026, time.August, 24, 9), 0, 5, models.LocationLibrary),
	}

	patterns := Mine("stu-1", sessions)

	assert.Empty(t, patterns.PreferredHours)
	assert.Empty(t, patterns.PreferredLocations)
}

func TestPatternsEmptyIsNotAnError(t *testing.T) {
	svc := NewPatternService(newSessionService(knownStudent("stu-1"), &fakeSessions{}), nil)

	patterns, err := svc.Patterns(context.Background(), "stu-1", models.StudySessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, patterns.PreferredHours)
	require.Len(t, patterns.WeeklyPattern, 7)
}
