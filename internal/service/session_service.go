package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

type sessionRepo interface {
	ListByStudent(ctx context.Context, studentID string, filter models.StudySessionFilter) ([]models.StudySession, error)
	FindByID(ctx context.Context, id string) (*models.StudySession, error)
	Insert(ctx context.Context, session *models.StudySession) error
	Update(ctx context.Context, session *models.StudySession) error
	Delete(ctx context.Context, id string) error
}

// LogSessionRequest is the payload for recording a manual study session.
type LogSessionRequest struct {
	Subject         string `json:"subject" validate:"required"`
	StartedAt       string `json:"started_at" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Activity        string `json:"activity" validate:"required,oneof=LECTURE STUDY ASSIGNMENT EXAM REVIEW"`
	Location        string `json:"location" validate:"required,oneof=CLASSROOM LIBRARY HOME ONLINE"`
	Efficiency      int    `json:"efficiency" validate:"required,min=1,max=5"`
}

// UpdateSessionRequest mirrors LogSessionRequest for explicit updates.
type UpdateSessionRequest struct {
	Subject         string `json:"subject" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Efficiency      int    `json:"efficiency" validate:"required,min=1,max=5"`
}

// SessionService owns the study-session boundary: list/add/update/delete, and
// the pure aggregation into StudyStats including streak figures.
type SessionService struct {
	sessions  sessionRepo
	students  studentReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(sessions sessionRepo, students studentReader, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions:  sessions,
		students:  students,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns a student's sessions, optionally windowed.
func (s *SessionService) List(ctx context.Context, studentID string, filter models.StudySessionFilter) ([]models.StudySession, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByStudent(ctx, studentID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	return sessions, nil
}

// Log records a new manual session.
func (s *SessionService) Log(ctx context.Context, studentID string, req LogSessionRequest) (*models.StudySession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	startedAt, err := time.Parse(time.RFC3339, req.StartedAt)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "started_at must be RFC3339")
	}
	session := &models.StudySession{
		StudentID:       studentID,
		Subject:         req.Subject,
		StartedAt:       startedAt.UTC(),
		DurationMinutes: req.DurationMinutes,
		Activity:        models.ActivityType(req.Activity),
		Location:        models.StudyLocation(req.Location),
		Efficiency:      req.Efficiency,
		Manual:          true,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert session")
	}
	return session, nil
}

// Update applies an explicit update to a logged session.
func (s *SessionService) Update(ctx context.Context, studentID, sessionID string, req UpdateSessionRequest) (*models.StudySession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	session, err := s.ownedSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	session.Subject = req.Subject
	session.DurationMinutes = req.DurationMinutes
	session.Efficiency = req.Efficiency
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}
	return session, nil
}

// Delete removes a session. Only manually-added sessions are deletable;
// derived sessions are immutable.
func (s *SessionService) Delete(ctx context.Context, studentID, sessionID string) error {
	session, err := s.ownedSession(ctx, studentID, sessionID)
	if err != nil {
		return err
	}
	if !session.Manual {
		return appErrors.Clone(appErrors.ErrImmutable, "derived sessions cannot be deleted")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	return nil
}

// Stats aggregates a student's sessions into headline study figures. An
// empty session list is a normal state and yields a zero-valued result.
func (s *SessionService) Stats(ctx context.Context, studentID string, filter models.StudySessionFilter) (*models.StudyStats, error) {
	sessions, err := s.List(ctx, studentID, filter)
	if err != nil {
		return nil, err
	}
	stats := s.computeStats(studentID, sessions)
	return stats, nil
}

func (s *SessionService) computeStats(studentID string, sessions []models.StudySession) *models.StudyStats {
	stats := &models.StudyStats{StudentID: studentID}

	var totalMinutes float64
	counted := 0
	for _, session := range sessions {
		if session.DurationMinutes <= 0 {
			// Malformed sessions are skipped, never fatal.
			s.logger.Warn("session with non-positive duration skipped",
				zap.String("session_id", session.ID))
			continue
		}
		totalMinutes += float64(session.DurationMinutes)
		counted++
	}
	stats.SessionCount = counted
	stats.TotalStudyHours = Round2(totalMinutes / 60)
	if counted > 0 {
		stats.AverageSessionMinutes = Round2(totalMinutes / float64(counted))
	}

	dates := distinctDates(sessions)
	stats.CurrentStreakDays = currentStreak(dates, s.now().UTC())
	stats.LongestStreakDays = longestStreak(dates)
	return stats
}

func (s *SessionService) ensureStudent(ctx context.Context, studentID string) error {
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

func (s *SessionService) ownedSession(ctx context.Context, studentID, sessionID string) (*models.StudySession, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return session, nil
}

// distinctDates returns the deduplicated calendar days carrying at least one
// session, sorted ascending. Input order is never mutated.
func distinctDates(sessions []models.StudySession) []time.Time {
	seen := make(map[time.Time]struct{}, len(sessions))
	dates := make([]time.Time, 0, len(sessions))
	for _, session := range sessions {
		day := truncateToDay(session.StartedAt)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// currentStreak walks backward from today: the i-th most recent distinct
// session day must land exactly i days before today. The first gap breaks
// the streak.
func currentStreak(sortedDates []time.Time, now time.Time) int {
	today := truncateToDay(now)
	streak := 0
	for i := len(sortedDates) - 1; i >= 0; i-- {
		expected := today.AddDate(0, 0, -streak)
		if !sortedDates[i].Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// longestStreak scans distinct session days for maximal runs of day-to-day
// adjacency. Any gap other than exactly one day resets the running counter.
func longestStreak(sortedDates []time.Time) int {
	if len(sortedDates) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(sortedDates); i++ {
		if sortedDates[i].Sub(sortedDates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
