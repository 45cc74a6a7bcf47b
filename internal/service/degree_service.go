package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

type requirementsReader interface {
	FindByProgram(ctx context.Context, programID string) (*models.ProgramRequirements, error)
}

// DegreeServiceConfig exposes graduation pacing as parameters rather than
// hard-coded constants.
type DegreeServiceConfig struct {
	AvgCreditsPerSemester int
	SemesterMonths        int
}

// DegreeService combines a program's credit requirements with a student's
// enrollment history to produce a graduation-eligibility verdict.
type DegreeService struct {
	enrollments  enrollmentLister
	students     studentReader
	requirements requirementsReader
	logger       *zap.Logger
	cfg          DegreeServiceConfig
	now          func() time.Time
}

// NewDegreeService constructs a DegreeService.
func NewDegreeService(enrollments enrollmentLister, students studentReader, requirements requirementsReader, logger *zap.Logger, cfg DegreeServiceConfig) *DegreeService {
	if cfg.AvgCreditsPerSemester <= 0 {
		cfg.AvgCreditsPerSemester = 15
	}
	if cfg.SemesterMonths <= 0 {
		cfg.SemesterMonths = 6
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DegreeService{
		enrollments:  enrollments,
		students:     students,
		requirements: requirements,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Progress computes the degree-progress snapshot for a student. A missing
// requirements table is a caller error: no generic default exists.
func (s *DegreeService) Progress(ctx context.Context, studentID string) (*models.DegreeProgress, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	requirements, err := s.requirements.FindByProgram(ctx, student.ProgramID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrConfigurationMissing,
				fmt.Sprintf("no requirements table configured for program %s", student.ProgramID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program requirements")
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	return s.compute(studentID, requirements, enrollments)
}

func (s *DegreeService) compute(studentID string, requirements *models.ProgramRequirements, enrollments []models.Enrollment) (*models.DegreeProgress, error) {
	if requirements == nil || requirements.TotalRequiredCredits <= 0 {
		return nil, appErrors.Clone(appErrors.ErrConfigurationMissing, "program requirements table is required")
	}

	type bucket struct {
		earned     int
		inProgress int
	}
	buckets := make(map[models.CourseCategory]*bucket)
	for _, req := range requirements.Categories {
		buckets[req.Category] = &bucket{}
	}

	totalEarned := 0
	for _, e := range enrollments {
		b, tracked := buckets[e.Category]
		switch e.Status {
		case models.EnrollmentStatusCompleted:
			if e.FinalGrade == nil || *e.FinalGrade == failingGrade {
				continue
			}
			totalEarned += e.Credits
			if tracked {
				b.earned += e.Credits
			}
		case models.EnrollmentStatusRegistered:
			if tracked {
				b.inProgress += e.Credits
			}
		}
	}

	progress := &models.DegreeProgress{
		StudentID:             studentID,
		ProgramID:             requirements.ProgramID,
		TotalRequiredCredits:  requirements.TotalRequiredCredits,
		TotalEarnedCredits:    totalEarned,
		Categories:            make([]models.CategoryProgress, 0, len(requirements.Categories)),
		RemainingRequirements: []string{},
	}

	categories := make([]models.CategoryRequirement, len(requirements.Categories))
	copy(categories, requirements.Categories)
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	allCategoriesMet := true
	for _, req := range categories {
		b := buckets[req.Category]
		percentage := 100.0
		if req.RequiredCredits > 0 {
			percentage = ClampPercent(float64(b.earned) / float64(req.RequiredCredits) * 100)
		}
		progress.Categories = append(progress.Categories, models.CategoryProgress{
			Category:          req.Category,
			RequiredCredits:   req.RequiredCredits,
			EarnedCredits:     b.earned,
			InProgressCredits: b.inProgress,
			Percentage:        percentage,
		})
		if b.earned < req.RequiredCredits {
			allCategoriesMet = false
			progress.RemainingRequirements = append(progress.RemainingRequirements,
				fmt.Sprintf("%s: %d more credits needed", categoryLabel(req.Category), req.RequiredCredits-b.earned))
		}
	}

	remaining := requirements.TotalRequiredCredits - totalEarned
	if remaining < 0 {
		remaining = 0
	}
	progress.RemainingCredits = remaining
	progress.OverallPercentage = ClampPercent(float64(totalEarned) / float64(requirements.TotalRequiredCredits) * 100)
	progress.GraduationEligible = totalEarned >= requirements.TotalRequiredCredits && allCategoriesMet
	if remaining > 0 {
		progress.RemainingRequirements = append(progress.RemainingRequirements,
			fmt.Sprintf("total: %d more credits needed", remaining))
	}

	progress.ExpectedGraduation = s.estimateGraduation(remaining)
	return progress, nil
}

// estimateGraduation projects a completion date from the remaining credit
// load at the configured average pace.
func (s *DegreeService) estimateGraduation(remainingCredits int) time.Time {
	now := s.now().UTC()
	if remainingCredits <= 0 {
		return now
	}
	semesters := int(math.Ceil(float64(remainingCredits) / float64(s.cfg.AvgCreditsPerSemester)))
	return now.AddDate(0, semesters*s.cfg.SemesterMonths, 0)
}

func categoryLabel(c models.CourseCategory) string {
	switch c {
	case models.CategoryRequired:
		return "required courses"
	case models.CategoryRequiredElective:
		return "required electives"
	case models.CategoryElective:
		return "electives"
	case models.CategoryFree:
		return "free electives"
	default:
		return string(c)
	}
}
