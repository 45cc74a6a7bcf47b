package models

import "time"

// CategoryRequirement defines the credits a program demands in one bucket.
type CategoryRequirement struct {
	Category        CourseCategory `db:"category" json:"category"`
	RequiredCredits int            `db:"required_credits" json:"required_credits"`
}

// ProgramRequirements is the per-program credits table. It is always an
// explicit input to degree-progress computation; no generic default exists.
type ProgramRequirements struct {
	ProgramID            string                `db:"program_id" json:"program_id"`
	ProgramName          string                `db:"program_name" json:"program_name"`
	TotalRequiredCredits int                   `db:"total_required_credits" json:"total_required_credits"`
	Categories           []CategoryRequirement `json:"categories"`
}

// CategoryProgress tracks earned and in-progress credits against one bucket.
type CategoryProgress struct {
	Category          CourseCategory `json:"category"`
	RequiredCredits   int            `json:"required_credits"`
	EarnedCredits     int            `json:"earned_credits"`
	InProgressCredits int            `json:"in_progress_credits"`
	// Percentage is clamped to [0, 100] even when earned exceeds required.
	Percentage float64 `json:"percentage"`
}

// DegreeProgress is a fully derived graduation snapshot.
type DegreeProgress struct {
	StudentID             string             `json:"student_id"`
	ProgramID             string             `json:"program_id"`
	TotalRequiredCredits  int                `json:"total_required_credits"`
	TotalEarnedCredits    int                `json:"total_earned_credits"`
	RemainingCredits      int                `json:"remaining_credits"`
	OverallPercentage     float64            `json:"overall_percentage"`
	Categories            []CategoryProgress `json:"categories"`
	GraduationEligible    bool               `json:"graduation_eligible"`
	ExpectedGraduation    time.Time          `json:"expected_graduation"`
	RemainingRequirements []string           `json:"remaining_requirements"`
}
