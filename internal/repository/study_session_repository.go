package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// StudySessionRepository manages persistence for study sessions.
type StudySessionRepository struct {
	db *sqlx.DB
}

// NewStudySessionRepository constructs a StudySessionRepository.
func NewStudySessionRepository(db *sqlx.DB) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

// ListByStudent returns a student's sessions matching the filter, most recent
// first.
func (r *StudySessionRepository) ListByStudent(ctx context.Context, studentID string, filter models.StudySessionFilter) ([]models.StudySession, error) {
	query := `SELECT id, student_id, subject, started_at, duration_minutes, activity, location, efficiency, manual, created_at, updated_at
        FROM study_sessions WHERE student_id = $1`
	args := []interface{}{studentID}
	if filter.Subject != "" {
		query += fmt.Sprintf(" AND subject = $%d", len(args)+1)
		args = append(args, filter.Subject)
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND started_at >= $%d", len(args)+1)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND started_at <= $%d", len(args)+1)
		args = append(args, *filter.DateTo)
	}
	query += " ORDER BY started_at DESC"

	var sessions []models.StudySession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	return sessions, nil
}

// FindByID fetches one session. Returns sql.ErrNoRows when absent.
func (r *StudySessionRepository) FindByID(ctx context.Context, id string) (*models.StudySession, error) {
	const query = `SELECT id, student_id, subject, started_at, duration_minutes, activity, location, efficiency, manual, created_at, updated_at
        FROM study_sessions WHERE id = $1`
	var session models.StudySession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// Insert stores a new session.
func (r *StudySessionRepository) Insert(ctx context.Context, session *models.StudySession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	const query = `INSERT INTO study_sessions (id, student_id, subject, started_at, duration_minutes, activity, location, efficiency, manual, created_at, updated_at)
        VALUES (:id, :student_id, :subject, :started_at, :duration_minutes, :activity, :location, :efficiency, :manual, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("insert study session: %w", err)
	}
	return nil
}

// Update rewrites a session's mutable fields.
func (r *StudySessionRepository) Update(ctx context.Context, session *models.StudySession) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE study_sessions SET subject = :subject, started_at = :started_at, duration_minutes = :duration_minutes,
        activity = :activity, location = :location, efficiency = :efficiency, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("update study session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *StudySessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM study_sessions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete study session: %w", err)
	}
	return nil
}
