package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// EnrollmentRepository manages persistence for course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByStudent returns a student's enrollments matching the filter, oldest
// term first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	query := `SELECT id, student_id, course_id, course_code, course_name, credits, category, status,
        academic_year, semester, final_grade, grade_points, registered_at, completed_at, dropped_at
        FROM enrollments WHERE student_id = $1`
	args := []interface{}{studentID}
	if filter.AcademicYear != 0 {
		query += fmt.Sprintf(" AND academic_year = $%d", len(args)+1)
		args = append(args, filter.AcademicYear)
	}
	if filter.Semester != "" {
		query += fmt.Sprintf(" AND semester = $%d", len(args)+1)
		args = append(args, filter.Semester)
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, filter.Category)
	}
	query += " ORDER BY academic_year ASC, registered_at ASC, course_code ASC"

	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Insert stores a new enrollment.
func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.RegisteredAt.IsZero() {
		enrollment.RegisteredAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollments (id, student_id, course_id, course_code, course_name, credits, category, status,
        academic_year, semester, final_grade, grade_points, registered_at, completed_at, dropped_at)
        VALUES (:id, :student_id, :course_id, :course_code, :course_name, :credits, :category, :status,
        :academic_year, :semester, :final_grade, :grade_points, :registered_at, :completed_at, :dropped_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// UpdateStatus transitions an enrollment's status and optionally posts the
// final grade. Enrollments are never deleted.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, finalGrade *models.LetterGrade, gradePoints *float64) error {
	now := time.Now().UTC()
	var completedAt, droppedAt *time.Time
	switch status {
	case models.EnrollmentStatusCompleted, models.EnrollmentStatusFailed:
		completedAt = &now
	case models.EnrollmentStatusDropped:
		droppedAt = &now
	}
	const query = `UPDATE enrollments SET status = $1, final_grade = $2, grade_points = $3,
        completed_at = COALESCE($4, completed_at), dropped_at = COALESCE($5, dropped_at)
        WHERE id = $6`
	if _, err := r.db.ExecContext(ctx, query, status, finalGrade, gradePoints, completedAt, droppedAt, id); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}
