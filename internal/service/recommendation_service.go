package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

type performanceLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.SubjectPerformance, error)
}

type goalLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.LearningGoal, error)
}

// RecommendationServiceConfig bounds recommendation output and carries the
// study-load planning rule.
type RecommendationServiceConfig struct {
	MaxSubjectFocus int
	MaxTotal        int
	HoursPerCredit  float64
}

// RecommendationService synthesizes ranked improvement suggestions from
// mined patterns, efficiency scoring, subject performance, study load and
// goal pacing.
type RecommendationService struct {
	patterns     *PatternService
	efficiency   *EfficiencyService
	performances performanceLister
	goals        goalLister
	enrollments  enrollmentLister
	logger       *zap.Logger
	cfg          RecommendationServiceConfig
	now          func() time.Time
}

// NewRecommendationService constructs a RecommendationService.
func NewRecommendationService(patterns *PatternService, efficiency *EfficiencyService, performances performanceLister, goals goalLister, enrollments enrollmentLister, logger *zap.Logger, cfg RecommendationServiceConfig) *RecommendationService {
	if cfg.MaxSubjectFocus <= 0 {
		cfg.MaxSubjectFocus = 2
	}
	if cfg.MaxTotal <= 0 {
		cfg.MaxTotal = 6
	}
	if cfg.HoursPerCredit <= 0 {
		cfg.HoursPerCredit = DefaultHoursPerCredit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		patterns:     patterns,
		efficiency:   efficiency,
		performances: performances,
		goals:        goals,
		enrollments:  enrollments,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// ForStudent produces the prioritized recommendation list. No data yields an
// empty list, never an error.
func (s *RecommendationService) ForStudent(ctx context.Context, studentID string) ([]models.Recommendation, error) {
	patterns, err := s.patterns.Patterns(ctx, studentID, models.StudySessionFilter{})
	if err != nil {
		return nil, err
	}
	report, err := s.efficiency.Report(ctx, studentID)
	if err != nil {
		return nil, err
	}
	performances, err := s.performances.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject performance")
	}
	goals, err := s.goals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list goals")
	}
	registered, err := s.enrollments.ListByStudent(ctx, studentID, models.EnrollmentFilter{Status: models.EnrollmentStatusRegistered})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	recommendations := s.synthesize(patterns, report, performances, goals, registered)
	if len(recommendations) > s.cfg.MaxTotal {
		recommendations = recommendations[:s.cfg.MaxTotal]
	}
	return recommendations, nil
}

var priorityRank = map[models.RecommendationPriority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

func (s *RecommendationService) synthesize(patterns *models.LearningPatterns, report *models.EfficiencyReport, performances []models.SubjectPerformance, goals []models.LearningGoal, registered []models.Enrollment) []models.Recommendation {
	recommendations := []models.Recommendation{}

	if rec := scheduleRecommendation(patterns); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := s.subjectFocusRecommendation(performances); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := locationRecommendation(patterns); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := burnoutRecommendation(report); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := s.studyLoadRecommendation(report, registered); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := s.goalPacingRecommendation(goals); rec != nil {
		recommendations = append(recommendations, *rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank[recommendations[i].Priority] < priorityRank[recommendations[j].Priority]
	})
	return recommendations
}

// scheduleRecommendation names the best-performing study hour when one
// exists.
func scheduleRecommendation(patterns *models.LearningPatterns) *models.Recommendation {
	if patterns == nil || len(patterns.PreferredHours) == 0 {
		return nil
	}
	best := patterns.PreferredHours[0]
	if best.Sessions == 0 {
		return nil
	}
	window := fmt.Sprintf("%02d:00-%02d:00", best.Hour, (best.Hour+1)%24)
	return &models.Recommendation{
		ID:          "rec-schedule-optimization",
		Category:    "schedule_optimization",
		Priority:    models.PriorityMedium,
		Title:       fmt.Sprintf("Schedule demanding work around %s", window),
		Description: fmt.Sprintf("Your sessions starting at %s average %.1f/5 efficiency, your best hour of the day.", window, best.AverageEfficiency),
		ActionItems: []string{
			fmt.Sprintf("Block %s for your hardest subject", window),
			"Move routine review outside this window",
		},
		ExpectedImpact: "Higher retention per study hour",
		EstimatedTime:  "1 week to adjust",
		Difficulty:     "easy",
		Tags:           []string{"schedule", "efficiency"},
	}
}

// subjectFocusRecommendation flags up to MaxSubjectFocus subjects in the
// needs-improvement band, worst grade first.
func (s *RecommendationService) subjectFocusRecommendation(performances []models.SubjectPerformance) *models.Recommendation {
	weak := make([]models.SubjectPerformance, 0, len(performances))
	for _, p := range performances {
		if NeedsImprovement(p.CurrentGrade) {
			weak = append(weak, p)
		}
	}
	if len(weak) == 0 {
		return nil
	}
	sort.SliceStable(weak, func(i, j int) bool {
		a, _ := GradePoints(weak[i].CurrentGrade)
		b, _ := GradePoints(weak[j].CurrentGrade)
		return a < b
	})
	if len(weak) > s.cfg.MaxSubjectFocus {
		weak = weak[:s.cfg.MaxSubjectFocus]
	}

	subjects := make([]string, 0, len(weak))
	actions := make([]string, 0, len(weak))
	for _, p := range weak {
		subjects = append(subjects, p.Subject)
		actions = append(actions, fmt.Sprintf("Add %d focused sessions per week for %s (current grade %s, difficulty %d/5)",
			focusSessionsPerWeek(p.CurrentGrade), p.Subject, p.CurrentGrade, SubjectDifficulty(p.CurrentGrade)))
	}
	return &models.Recommendation{
		ID:             "rec-subject-focus",
		Category:       "subject_focus",
		Priority:       models.PriorityHigh,
		Title:          fmt.Sprintf("Prioritize %s", joinSubjects(subjects)),
		Description:    "These subjects sit in the needs-improvement grade band and drag your GPA the most.",
		ActionItems:    actions,
		ExpectedImpact: "Direct GPA recovery in the weakest subjects",
		EstimatedTime:  "4-6 weeks",
		Difficulty:     "moderate",
		Tags:           []string{"grades", "focus"},
	}
}

func locationRecommendation(patterns *models.LearningPatterns) *models.Recommendation {
	if patterns == nil || len(patterns.PreferredLocations) < 2 {
		return nil
	}
	best := patterns.PreferredLocations[0]
	worst := patterns.PreferredLocations[len(patterns.PreferredLocations)-1]
	if best.AverageEfficiency-worst.AverageEfficiency < 0.5 {
		return nil
	}
	return &models.Recommendation{
		ID:          "rec-location-optimization",
		Category:    "location_optimization",
		Priority:    models.PriorityLow,
		Title:       fmt.Sprintf("Study more at %s", locationLabel(best.Location)),
		Description: fmt.Sprintf("Sessions at %s average %.1f/5 versus %.1f/5 at %s.", locationLabel(best.Location), best.AverageEfficiency, worst.AverageEfficiency, locationLabel(worst.Location)),
		ActionItems: []string{
			fmt.Sprintf("Shift low-efficiency sessions from %s to %s", locationLabel(worst.Location), locationLabel(best.Location)),
		},
		ExpectedImpact: "More effective hours from the same schedule",
		EstimatedTime:  "immediate",
		Difficulty:     "easy",
		Tags:           []string{"location", "efficiency"},
	}
}

func burnoutRecommendation(report *models.EfficiencyReport) *models.Recommendation {
	if report == nil || report.BurnoutRisk == models.RiskLow {
		return nil
	}
	priority := models.PriorityMedium
	if report.BurnoutRisk == models.RiskHigh {
		priority = models.PriorityHigh
	}
	return &models.Recommendation{
		ID:          "rec-burnout-relief",
		Category:    "wellness",
		Priority:    priority,
		Title:       "Reduce daily study load",
		Description: fmt.Sprintf("You averaged %.1f hours per day over the last week while your focus score sits at %d/100.", report.AverageDailyHours, report.FocusScore),
		ActionItems: []string{
			"Cap study blocks at 90 minutes with breaks",
			"Schedule at least one rest day this week",
		},
		ExpectedImpact: "Recovered focus and sustainable pace",
		EstimatedTime:  "1-2 weeks",
		Difficulty:     "moderate",
		Tags:           []string{"wellness", "burnout"},
	}
}

// studyLoadRecommendation compares last week's logged hours against the
// hours-per-credit estimate for the registered credit load.
func (s *RecommendationService) studyLoadRecommendation(report *models.EfficiencyReport, registered []models.Enrollment) *models.Recommendation {
	if report == nil || len(registered) == 0 {
		return nil
	}
	credits := 0
	for _, e := range registered {
		credits += e.Credits
	}
	expected := ExpectedWeeklyStudyHours(credits, s.cfg.HoursPerCredit)
	if expected <= 0 {
		return nil
	}
	logged := report.AverageDailyHours * 7
	if logged >= expected*studyLoadShortfallRatio {
		return nil
	}
	return &models.Recommendation{
		ID:          "rec-study-load",
		Category:    "study_load",
		Priority:    models.PriorityMedium,
		Title:       fmt.Sprintf("Plan %.0f study hours per week", expected),
		Description: fmt.Sprintf("Your %d registered credits call for about %.0f weekly study hours; you logged %.1f over the last week.", credits, expected, Round2(logged)),
		ActionItems: []string{
			fmt.Sprintf("Reserve %.0f hours across the week for coursework", expected),
			"Log sessions as you go so the estimate stays honest",
		},
		ExpectedImpact: "Workload kept in step with the registered credit load",
		EstimatedTime:  "ongoing",
		Difficulty:     "moderate",
		Tags:           []string{"schedule", "workload"},
	}
}

func (s *RecommendationService) goalPacingRecommendation(goals []models.LearningGoal) *models.Recommendation {
	now := s.now().UTC()
	var behind []models.LearningGoal
	for _, goal := range goals {
		if goal.Status != models.GoalStatusActive || goal.TargetValue <= 0 {
			continue
		}
		progress := ClampPercent(goal.CurrentValue / goal.TargetValue * 100)
		if progress < 50 && goal.Deadline.Sub(now) < 14*24*time.Hour {
			behind = append(behind, goal)
		}
	}
	if len(behind) == 0 {
		return nil
	}
	actions := make([]string, 0, len(behind))
	for _, goal := range behind {
		actions = append(actions, fmt.Sprintf("Break %q into daily targets before %s", goal.Title, goal.Deadline.Format("Jan 2")))
	}
	return &models.Recommendation{
		ID:             "rec-goal-pacing",
		Category:       "goal_pacing",
		Priority:       models.PriorityMedium,
		Title:          "Goals at risk of missing their deadline",
		Description:    fmt.Sprintf("%d active goal(s) are under half complete with under two weeks left.", len(behind)),
		ActionItems:    actions,
		ExpectedImpact: "Goals finished instead of silently failed",
		EstimatedTime:  "2 weeks",
		Difficulty:     "moderate",
		Tags:           []string{"goals", "planning"},
	}
}

func joinSubjects(subjects []string) string {
	switch len(subjects) {
	case 0:
		return ""
	case 1:
		return subjects[0]
	default:
		return subjects[0] + " and " + subjects[1]
	}
}

func locationLabel(l models.StudyLocation) string {
	switch l {
	case models.LocationClassroom:
		return "the classroom"
	case models.LocationLibrary:
		return "the library"
	case models.LocationHome:
		return "home"
	case models.LocationOnline:
		return "online"
	default:
		return string(l)
	}
}
