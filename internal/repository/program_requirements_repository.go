package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// ProgramRequirementsRepository reads the per-program credit requirements
// tables that degree-progress computation depends on.
type ProgramRequirementsRepository struct {
	db *sqlx.DB
}

// NewProgramRequirementsRepository constructs a ProgramRequirementsRepository.
func NewProgramRequirementsRepository(db *sqlx.DB) *ProgramRequirementsRepository {
	return &ProgramRequirementsRepository{db: db}
}

// FindByProgram loads the requirements table for one program. Returns
// sql.ErrNoRows when no table is configured for the program.
func (r *ProgramRequirementsRepository) FindByProgram(ctx context.Context, programID string) (*models.ProgramRequirements, error) {
	const programQuery = `SELECT program_id, program_name, total_required_credits
        FROM program_requirements WHERE program_id = $1`
	var requirements models.ProgramRequirements
	if err := r.db.GetContext(ctx, &requirements, programQuery, programID); err != nil {
		return nil, err
	}

	const categoryQuery = `SELECT category, required_credits
        FROM program_category_requirements WHERE program_id = $1 ORDER BY category ASC`
	if err := r.db.SelectContext(ctx, &requirements.Categories, categoryQuery, programID); err != nil {
		return nil, fmt.Errorf("list category requirements: %w", err)
	}
	return &requirements, nil
}
