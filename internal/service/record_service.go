package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

type enrollmentLister interface {
	ListByStudent(ctx context.Context, studentID string, filter models.EnrollmentFilter) ([]models.Enrollment, error)
}

type enrollmentStore interface {
	enrollmentLister
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, finalGrade *models.LetterGrade, gradePoints *float64) error
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// RecordServiceConfig carries the honor/probation thresholds.
type RecordServiceConfig struct {
	DeansListGPA float64
	HonorRollGPA float64
	ProbationGPA float64
	CacheTTL     time.Duration
}

// RecordService aggregates enrollment history into GPA figures, semester
// records and honor/probation flags. All computation is stateless; each call
// works on its own snapshot of the enrollment list.
type RecordService struct {
	enrollments enrollmentStore
	students    studentReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         RecordServiceConfig
}

// NewRecordService constructs a RecordService with threshold defaults.
func NewRecordService(enrollments enrollmentStore, students studentReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg RecordServiceConfig) *RecordService {
	if cfg.DeansListGPA <= 0 {
		cfg.DeansListGPA = 3.7
	}
	if cfg.HonorRollGPA <= 0 {
		cfg.HonorRollGPA = 3.5
	}
	if cfg.ProbationGPA <= 0 {
		cfg.ProbationGPA = 2.0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		enrollments: enrollments,
		students:    students,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// AcademicRecord returns the aggregated record for a student. The boolean
// indicates whether the result came from cache. An unknown student is a
// NotFound failure; a known student with no enrollments yields a well-formed
// zero record.
func (s *RecordService) AcademicRecord(ctx context.Context, studentID string) (*models.AcademicRecord, bool, error) {
	if studentID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	cacheKey := fmt.Sprintf("record:%s", studentID)
	var cached models.AcademicRecord
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	start := time.Now()
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("enrollments_by_student", time.Since(start))
	}

	record := s.aggregate(studentID, enrollments)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, record, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("cache academic record", zap.Error(err))
		}
	}
	return record, false, nil
}

// Summary reduces a record to its minimal textual form for non-tabular
// consumers.
func (s *RecordService) Summary(ctx context.Context, studentID string) (*models.RecordSummary, error) {
	record, _, err := s.AcademicRecord(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &models.RecordSummary{
		StudentID:          record.StudentID,
		CumulativeGPA:      record.CumulativeGPA,
		TotalCreditsEarned: record.TotalCreditsEarned,
	}, nil
}

// Invalidate drops cached aggregations for a student after enrollment or
// grade changes.
func (s *RecordService) Invalidate(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("record:%s*", studentID)); err != nil {
		s.logger.Warn("invalidate record cache", zap.String("student_id", studentID), zap.Error(err))
	}
}

// PostGradeRequest finalizes an enrollment. Status must be a terminal state;
// a grade is required when completing and ignored otherwise.
type PostGradeRequest struct {
	Status string `json:"status" binding:"required"`
	Grade  string `json:"grade"`
}

// PostGrade moves a registered or waitlisted enrollment into a terminal
// status and records the final grade. Enrollments already in a terminal
// status are immutable. The student's cached record is invalidated on
// success.
func (s *RecordService) PostGrade(ctx context.Context, studentID, enrollmentID string, req PostGradeRequest) (*models.Enrollment, error) {
	if studentID == "" || enrollmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and enrollment id are required")
	}

	status := models.EnrollmentStatus(req.Status)
	switch status {
	case models.EnrollmentStatusCompleted, models.EnrollmentStatusFailed, models.EnrollmentStatusDropped:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("status %q is not a terminal enrollment status", req.Status))
	}

	var finalGrade *models.LetterGrade
	var gradePoints *float64
	if status == models.EnrollmentStatusCompleted {
		if req.Grade == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "grade is required when completing an enrollment")
		}
		grade := models.LetterGrade(req.Grade)
		points, ok := GradePoints(grade)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown grade %q", req.Grade))
		}
		finalGrade = &grade
		gradePoints = &points
	}

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	var target *models.Enrollment
	for i := range enrollments {
		if enrollments[i].ID == enrollmentID {
			target = &enrollments[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	switch target.Status {
	case models.EnrollmentStatusCompleted, models.EnrollmentStatusFailed, models.EnrollmentStatusDropped:
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("enrollment already %s", target.Status))
	}

	if err := s.enrollments.UpdateStatus(ctx, enrollmentID, status, finalGrade, gradePoints); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enrollment")
	}
	s.Invalidate(ctx, studentID)

	target.Status = status
	target.FinalGrade = finalGrade
	target.GradePoints = gradePoints
	return target, nil
}

type semesterKey struct {
	year     int
	semester models.Semester
}

// gradedEnrollment pairs an enrollment with its resolved earned credits and
// point value so anomalies are flagged exactly once.
type gradedEnrollment struct {
	models.Enrollment
	earned int
	points float64
}

func (s *RecordService) aggregate(studentID string, enrollments []models.Enrollment) *models.AcademicRecord {
	record := &models.AcademicRecord{
		StudentID:       studentID,
		SemesterRecords: []models.SemesterRecord{},
		Honors:          []models.Honor{},
		Probations:      []models.Probation{},
	}

	grouped := make(map[semesterKey][]gradedEnrollment)
	var keys []semesterKey

	var cumulativePoints, cumulativeCredits float64
	for _, e := range enrollments {
		if e.Credits < 0 {
			record.DataQualityNotes = append(record.DataQualityNotes,
				fmt.Sprintf("enrollment %s has negative credits, skipped", e.ID))
			s.logger.Warn("negative credits", zap.String("enrollment_id", e.ID))
			continue
		}

		resolved := gradedEnrollment{Enrollment: e}
		resolved.earned = s.earnedCredits(e, record)
		resolved.points = s.pointsOf(e)

		key := semesterKey{year: e.AcademicYear, semester: e.Semester}
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], resolved)

		switch e.Status {
		case models.EnrollmentStatusCompleted, models.EnrollmentStatusFailed:
			record.TotalCreditsAttempted += e.Credits
		case models.EnrollmentStatusRegistered:
			record.TotalCreditsInProgress += e.Credits
		}

		record.TotalCreditsEarned += resolved.earned
		if resolved.earned > 0 {
			cumulativePoints += resolved.points * float64(resolved.earned)
			cumulativeCredits += float64(resolved.earned)
		}
	}

	// Earned-only GPA policy: failed enrollments earn zero credits, so they
	// never enter the weighted numerator or denominator. They still count
	// toward attempted credits above.
	if cumulativeCredits > 0 {
		record.CumulativeGPA = Round2(cumulativePoints / cumulativeCredits)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return SemesterIndex(keys[i].semester) < SemesterIndex(keys[j].semester)
	})

	for _, key := range keys {
		semRecord := buildSemesterRecord(key, grouped[key])
		record.SemesterRecords = append(record.SemesterRecords, semRecord)

		gpa := semRecord.SemesterGPA
		switch {
		case gpa >= s.cfg.DeansListGPA:
			record.Honors = append(record.Honors, models.Honor{
				Type: models.HonorDeansList, AcademicYear: key.year, Semester: key.semester, SemesterGPA: gpa,
			})
		case gpa >= s.cfg.HonorRollGPA:
			record.Honors = append(record.Honors, models.Honor{
				Type: models.HonorRoll, AcademicYear: key.year, Semester: key.semester, SemesterGPA: gpa,
			})
		case gpa > 0 && gpa < s.cfg.ProbationGPA:
			record.Probations = append(record.Probations, models.Probation{
				Type: models.ProbationWarning, AcademicYear: key.year, Semester: key.semester, SemesterGPA: gpa,
			})
		}
	}

	return record
}

func buildSemesterRecord(key semesterKey, enrollments []gradedEnrollment) models.SemesterRecord {
	var points, credits float64
	var earnedTotal int
	plain := make([]models.Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		plain = append(plain, e.Enrollment)
		earnedTotal += e.earned
		if e.earned > 0 {
			points += e.points * float64(e.earned)
			credits += float64(e.earned)
		}
	}
	// Explicit zero when no graded enrollments exist keeps downstream math
	// well-defined.
	gpa := 0.0
	if credits > 0 {
		gpa = Round2(points / credits)
	}
	return models.SemesterRecord{
		AcademicYear:    key.year,
		Semester:        key.semester,
		SemesterGPA:     gpa,
		SemesterCredits: earnedTotal,
		Enrollments:     plain,
	}
}

// earnedCredits applies the earned-credit policy: dropped and failed
// enrollments never contribute, ungraded enrollments contribute nothing yet.
// Unknown grade codes are flagged once and earn their credits at zero points.
func (s *RecordService) earnedCredits(e models.Enrollment, record *models.AcademicRecord) int {
	if e.Status == models.EnrollmentStatusDropped || e.Status == models.EnrollmentStatusFailed {
		return 0
	}
	if e.FinalGrade == nil {
		return 0
	}
	if *e.FinalGrade == failingGrade {
		return 0
	}
	if _, ok := GradePoints(*e.FinalGrade); !ok {
		record.DataQualityNotes = append(record.DataQualityNotes,
			fmt.Sprintf("enrollment %s has unrecognized grade %q", e.ID, string(*e.FinalGrade)))
		s.logger.Warn("unrecognized grade code",
			zap.String("enrollment_id", e.ID), zap.String("grade", string(*e.FinalGrade)))
	}
	return e.Credits
}

// pointsOf resolves the grade-point value, preferring the stored derivation
// and falling back to the fixed table. Unknown codes default to 0.0.
func (s *RecordService) pointsOf(e models.Enrollment) float64 {
	if e.GradePoints != nil {
		return *e.GradePoints
	}
	if e.FinalGrade == nil {
		return 0
	}
	points, _ := GradePoints(*e.FinalGrade)
	return points
}
