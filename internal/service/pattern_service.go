package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// PatternService mines time-of-day, location and weekday distributions from
// study sessions.
type PatternService struct {
	sessions *SessionService
	logger   *zap.Logger
}

// NewPatternService constructs a PatternService.
func NewPatternService(sessions *SessionService, logger *zap.Logger) *PatternService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternService{sessions: sessions, logger: logger}
}

// Patterns loads a student's sessions and mines them. An empty session list
// yields empty preference rankings and a 7-entry all-zero weekly pattern.
func (s *PatternService) Patterns(ctx context.Context, studentID string, filter models.StudySessionFilter) (*models.LearningPatterns, error) {
	sessions, err := s.sessions.List(ctx, studentID, filter)
	if err != nil {
		return nil, err
	}
	return Mine(studentID, sessions), nil
}

// Mine derives learning patterns from a session snapshot. Pure; safe for
// concurrent callers as long as each receives its own input slice.
func Mine(studentID string, sessions []models.StudySession) *models.LearningPatterns {
	patterns := &models.LearningPatterns{
		StudentID:          studentID,
		PreferredHours:     []models.HourlyEfficiency{},
		PreferredLocations: []models.LocationEfficiency{},
	}

	type bucket struct {
		sessions   int
		efficiency float64
		hours      float64
	}

	hourBuckets := make(map[int]*bucket)
	locationBuckets := make(map[models.StudyLocation]*bucket)
	var weekdayBuckets [7]bucket

	for _, session := range sessions {
		if session.DurationMinutes <= 0 {
			continue
		}
		hour := session.StartedAt.UTC().Hour()
		if hourBuckets[hour] == nil {
			hourBuckets[hour] = &bucket{}
		}
		hourBuckets[hour].sessions++
		hourBuckets[hour].efficiency += float64(session.Efficiency)

		if locationBuckets[session.Location] == nil {
			locationBuckets[session.Location] = &bucket{}
		}
		locationBuckets[session.Location].sessions++
		locationBuckets[session.Location].efficiency += float64(session.Efficiency)

		weekday := int(session.StartedAt.UTC().Weekday())
		weekdayBuckets[weekday].sessions++
		weekdayBuckets[weekday].efficiency += float64(session.Efficiency)
		weekdayBuckets[weekday].hours += float64(session.DurationMinutes) / 60
	}

	for hour, b := range hourBuckets {
		patterns.PreferredHours = append(patterns.PreferredHours, models.HourlyEfficiency{
			Hour:              hour,
			Sessions:          b.sessions,
			AverageEfficiency: Round2(b.efficiency / float64(b.sessions)),
		})
	}
	sort.Slice(patterns.PreferredHours, func(i, j int) bool {
		a, b := patterns.PreferredHours[i], patterns.PreferredHours[j]
		if a.AverageEfficiency != b.AverageEfficiency {
			return a.AverageEfficiency > b.AverageEfficiency
		}
		return a.Hour < b.Hour
	})

	for location, b := range locationBuckets {
		patterns.PreferredLocations = append(patterns.PreferredLocations, models.LocationEfficiency{
			Location:          location,
			Sessions:          b.sessions,
			AverageEfficiency: Round2(b.efficiency / float64(b.sessions)),
		})
	}
	sort.Slice(patterns.PreferredLocations, func(i, j int) bool {
		a, b := patterns.PreferredLocations[i], patterns.PreferredLocations[j]
		if a.AverageEfficiency != b.AverageEfficiency {
			return a.AverageEfficiency > b.AverageEfficiency
		}
		return a.Location < b.Location
	})

	// Callers may assume a fixed 7-element result: zero-hour weekdays are
	// explicit entries, not omitted days.
	patterns.WeeklyPattern = make([]models.WeekdayPattern, 7)
	for weekday := 0; weekday < 7; weekday++ {
		b := weekdayBuckets[weekday]
		entry := models.WeekdayPattern{Weekday: weekday, TotalHours: Round2(b.hours)}
		if b.sessions > 0 {
			entry.AverageEfficiency = Round2(b.efficiency / float64(b.sessions))
		}
		patterns.WeeklyPattern[weekday] = entry
	}

	return patterns
}
