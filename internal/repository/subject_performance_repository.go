package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// SubjectPerformanceRepository manages per-subject performance snapshots.
type SubjectPerformanceRepository struct {
	db *sqlx.DB
}

// NewSubjectPerformanceRepository constructs a SubjectPerformanceRepository.
func NewSubjectPerformanceRepository(db *sqlx.DB) *SubjectPerformanceRepository {
	return &SubjectPerformanceRepository{db: db}
}

// ListByStudent returns a student's performance snapshots across all terms.
func (r *SubjectPerformanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.SubjectPerformance, error) {
	const query = `SELECT id, student_id, subject, academic_year, semester, current_grade,
        attendance_rate, study_hours, difficulty_rating, satisfaction_rating
        FROM subject_performances WHERE student_id = $1
        ORDER BY academic_year DESC, subject ASC`
	var performances []models.SubjectPerformance
	if err := r.db.SelectContext(ctx, &performances, query, studentID); err != nil {
		return nil, fmt.Errorf("list subject performances: %w", err)
	}
	return performances, nil
}

// Upsert inserts or replaces the snapshot for one subject/term pair.
func (r *SubjectPerformanceRepository) Upsert(ctx context.Context, perf *models.SubjectPerformance) error {
	if perf.ID == "" {
		perf.ID = uuid.NewString()
	}
	const query = `INSERT INTO subject_performances (id, student_id, subject, academic_year, semester, current_grade,
        attendance_rate, study_hours, difficulty_rating, satisfaction_rating)
        VALUES (:id, :student_id, :subject, :academic_year, :semester, :current_grade,
        :attendance_rate, :study_hours, :difficulty_rating, :satisfaction_rating)
        ON CONFLICT (student_id, subject, academic_year, semester)
        DO UPDATE SET current_grade = EXCLUDED.current_grade, attendance_rate = EXCLUDED.attendance_rate,
        study_hours = EXCLUDED.study_hours, difficulty_rating = EXCLUDED.difficulty_rating,
        satisfaction_rating = EXCLUDED.satisfaction_rating`
	if _, err := r.db.NamedExecContext(ctx, query, perf); err != nil {
		return fmt.Errorf("upsert subject performance: %w", err)
	}
	return nil
}
