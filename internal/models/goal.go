package models

import "time"

// GoalStatus is the lifecycle state of a learning goal.
type GoalStatus string

// Goal lifecycle states. Goals are created active.
const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusPaused    GoalStatus = "PAUSED"
	GoalStatusFailed    GoalStatus = "FAILED"
)

// LearningGoal is a user-declared numeric target with a deadline.
type LearningGoal struct {
	ID           string     `db:"id" json:"id"`
	StudentID    string     `db:"student_id" json:"student_id"`
	Category     string     `db:"category" json:"category"`
	Title        string     `db:"title" json:"title"`
	TargetValue  float64    `db:"target_value" json:"target_value"`
	CurrentValue float64    `db:"current_value" json:"current_value"`
	Unit         string     `db:"unit" json:"unit"`
	Deadline     time.Time  `db:"deadline" json:"deadline"`
	Status       GoalStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	// Progress is derived as min(100, current/target*100), clamped at both
	// ends. Never stored.
	Progress float64 `db:"-" json:"progress"`
}
