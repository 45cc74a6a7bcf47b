package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// LearningGoalRepository manages persistence for learning goals.
type LearningGoalRepository struct {
	db *sqlx.DB
}

// NewLearningGoalRepository constructs a LearningGoalRepository.
func NewLearningGoalRepository(db *sqlx.DB) *LearningGoalRepository {
	return &LearningGoalRepository{db: db}
}

// ListByStudent returns a student's goals, nearest deadline first.
func (r *LearningGoalRepository) ListByStudent(ctx context.Context, studentID string) ([]models.LearningGoal, error) {
	const query = `SELECT id, student_id, category, title, target_value, current_value, unit, deadline, status, created_at, updated_at
        FROM learning_goals WHERE student_id = $1 ORDER BY deadline ASC`
	var goals []models.LearningGoal
	if err := r.db.SelectContext(ctx, &goals, query, studentID); err != nil {
		return nil, fmt.Errorf("list learning goals: %w", err)
	}
	return goals, nil
}

// FindByID fetches one goal. Returns sql.ErrNoRows when absent.
func (r *LearningGoalRepository) FindByID(ctx context.Context, id string) (*models.LearningGoal, error) {
	const query = `SELECT id, student_id, category, title, target_value, current_value, unit, deadline, status, created_at, updated_at
        FROM learning_goals WHERE id = $1`
	var goal models.LearningGoal
	if err := r.db.GetContext(ctx, &goal, query, id); err != nil {
		return nil, err
	}
	return &goal, nil
}

// Insert stores a new goal.
func (r *LearningGoalRepository) Insert(ctx context.Context, goal *models.LearningGoal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	const query = `INSERT INTO learning_goals (id, student_id, category, title, target_value, current_value, unit, deadline, status, created_at, updated_at)
        VALUES (:id, :student_id, :category, :title, :target_value, :current_value, :unit, :deadline, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, goal); err != nil {
		return fmt.Errorf("insert learning goal: %w", err)
	}
	return nil
}

// Update rewrites a goal's progress and status.
func (r *LearningGoalRepository) Update(ctx context.Context, goal *models.LearningGoal) error {
	goal.UpdatedAt = time.Now().UTC()
	const query = `UPDATE learning_goals SET current_value = :current_value, status = :status, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, goal); err != nil {
		return fmt.Errorf("update learning goal: %w", err)
	}
	return nil
}
