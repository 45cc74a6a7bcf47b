package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

// Shared in-memory fakes for the consumer-side repository interfaces.

type fakeStudents struct {
	students map[string]*models.Student
	err      error
}

func (f *fakeStudents) FindByID(_ context.Context, id string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	student, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return student, nil
}

func knownStudent(id string) *fakeStudents {
	return &fakeStudents{students: map[string]*models.Student{
		id: {ID: id, Number: "S-0001", FullName: "Test Student", ProgramID: "prog-cs", Active: true},
	}}
}

type statusChange struct {
	id     string
	status models.EnrollmentStatus
	grade  *models.LetterGrade
	points *float64
}

type fakeEnrollments struct {
	enrollments []models.Enrollment
	updated     []statusChange
	err         error
	updateErr   error
}

func (f *fakeEnrollments) ListByStudent(context.Context, string, models.EnrollmentFilter) ([]models.Enrollment, error) {
	return f.enrollments, f.err
}

func (f *fakeEnrollments) UpdateStatus(_ context.Context, id string, status models.EnrollmentStatus, grade *models.LetterGrade, points *float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, statusChange{id: id, status: status, grade: grade, points: points})
	return nil
}

// fakeCacheRepo backs a real CacheService so invalidation patterns are
// observable.
type fakeCacheRepo struct {
	entries     map[string]interface{}
	invalidated []string
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, _ interface{}) error {
	if _, ok := f.entries[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if f.entries == nil {
		f.entries = map[string]interface{}{}
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	return nil
}

type fakeRequirements struct {
	requirements *models.ProgramRequirements
	err          error
}

func (f *fakeRequirements) FindByProgram(context.Context, string) (*models.ProgramRequirements, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.requirements == nil {
		return nil, sql.ErrNoRows
	}
	return f.requirements, nil
}

type fakeSessions struct {
	sessions []models.StudySession
	byID     map[string]*models.StudySession
	inserted []*models.StudySession
	updated  []*models.StudySession
	deleted  []string
	err      error
}

func (f *fakeSessions) ListByStudent(context.Context, string, models.StudySessionFilter) ([]models.StudySession, error) {
	return f.sessions, f.err
}

func (f *fakeSessions) FindByID(_ context.Context, id string) (*models.StudySession, error) {
	session, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (f *fakeSessions) Insert(_ context.Context, session *models.StudySession) error {
	f.inserted = append(f.inserted, session)
	return nil
}

func (f *fakeSessions) Update(_ context.Context, session *models.StudySession) error {
	f.updated = append(f.updated, session)
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePerformances struct {
	performances []models.SubjectPerformance
	err          error
}

func (f *fakePerformances) ListByStudent(context.Context, string) ([]models.SubjectPerformance, error) {
	return f.performances, f.err
}

type fakeGoals struct {
	goals    []models.LearningGoal
	byID     map[string]*models.LearningGoal
	inserted []*models.LearningGoal
	updated  []*models.LearningGoal
	err      error
}

func (f *fakeGoals) ListByStudent(context.Context, string) ([]models.LearningGoal, error) {
	return f.goals, f.err
}

func (f *fakeGoals) FindByID(_ context.Context, id string) (*models.LearningGoal, error) {
	goal, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return goal, nil
}

func (f *fakeGoals) Insert(_ context.Context, goal *models.LearningGoal) error {
	f.inserted = append(f.inserted, goal)
	return nil
}

func (f *fakeGoals) Update(_ context.Context, goal *models.LearningGoal) error {
	f.updated = append(f.updated, goal)
	return nil
}

func gradePtr(g models.LetterGrade) *models.LetterGrade {
	return &g
}

func dayAt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
