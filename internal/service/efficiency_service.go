package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// efficiencyScale converts the 1-5 self-rating into the 0-100 focus scale.
const efficiencyScale = 20

// trailingWindow is the span of each trend comparison window.
const trailingWindow = 7 * 24 * time.Hour

// EfficiencyServiceConfig names the scoring thresholds. The deadband and
// burnout cutoffs are tunable defaults, not validated policy.
type EfficiencyServiceConfig struct {
	TrendDeadband          float64
	HighLoadDailyHours     float64
	ModerateLoadDailyHours float64
	HighRiskFocusScore     int
	ModerateRiskFocusScore int
	EffectiveEfficiencyMin int
}

// EfficiencyService derives focus score, productivity trend and burnout risk
// from study sessions.
type EfficiencyService struct {
	sessions *SessionService
	logger   *zap.Logger
	cfg      EfficiencyServiceConfig
	now      func() time.Time
}

// NewEfficiencyService constructs an EfficiencyService with heuristic
// defaults.
func NewEfficiencyService(sessions *SessionService, logger *zap.Logger, cfg EfficiencyServiceConfig) *EfficiencyService {
	if cfg.TrendDeadband <= 0 {
		cfg.TrendDeadband = 0.3
	}
	if cfg.HighLoadDailyHours <= 0 {
		cfg.HighLoadDailyHours = 8
	}
	if cfg.ModerateLoadDailyHours <= 0 {
		cfg.ModerateLoadDailyHours = 6
	}
	if cfg.HighRiskFocusScore <= 0 {
		cfg.HighRiskFocusScore = 60
	}
	if cfg.ModerateRiskFocusScore <= 0 {
		cfg.ModerateRiskFocusScore = 70
	}
	if cfg.EffectiveEfficiencyMin <= 0 {
		cfg.EffectiveEfficiencyMin = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EfficiencyService{sessions: sessions, logger: logger, cfg: cfg, now: time.Now}
}

// Report loads a student's sessions and scores them.
func (s *EfficiencyService) Report(ctx context.Context, studentID string) (*models.EfficiencyReport, error) {
	sessions, err := s.sessions.List(ctx, studentID, models.StudySessionFilter{})
	if err != nil {
		return nil, err
	}
	return s.score(studentID, sessions), nil
}

func (s *EfficiencyService) score(studentID string, sessions []models.StudySession) *models.EfficiencyReport {
	now := s.now().UTC()
	report := &models.EfficiencyReport{
		StudentID:   studentID,
		Trend:       models.TrendStable,
		BurnoutRisk: models.RiskLow,
		GeneratedAt: now,
	}

	var efficiencySum float64
	var totalMinutes, effectiveMinutes, recentMinutes float64
	var recentSum, priorSum float64
	var recentCount, priorCount, counted int

	weekAgo := now.Add(-trailingWindow)
	twoWeeksAgo := now.Add(-2 * trailingWindow)

	for _, session := range sessions {
		if session.DurationMinutes <= 0 {
			continue
		}
		counted++
		efficiencySum += float64(session.Efficiency)
		totalMinutes += float64(session.DurationMinutes)
		if session.Efficiency >= s.cfg.EffectiveEfficiencyMin {
			effectiveMinutes += float64(session.DurationMinutes)
		}

		started := session.StartedAt.UTC()
		switch {
		case started.After(weekAgo):
			recentSum += float64(session.Efficiency)
			recentCount++
			recentMinutes += float64(session.DurationMinutes)
		case started.After(twoWeeksAgo):
			priorSum += float64(session.Efficiency)
			priorCount++
		}
	}

	report.TotalStudyHours = Round2(totalMinutes / 60)
	report.EffectiveStudyHours = Round2(effectiveMinutes / 60)
	if counted > 0 {
		report.FocusScore = int(math.Round(efficiencySum / float64(counted) * efficiencyScale))
	}

	// The deadband keeps noise from flapping the verdict between windows.
	if recentCount > 0 && priorCount > 0 {
		delta := recentSum/float64(recentCount) - priorSum/float64(priorCount)
		switch {
		case delta > s.cfg.TrendDeadband:
			report.Trend = models.TrendIncreasing
		case delta < -s.cfg.TrendDeadband:
			report.Trend = models.TrendDecreasing
		}
	}

	report.AverageDailyHours = Round2(recentMinutes / 60 / 7)
	switch {
	case report.AverageDailyHours > s.cfg.HighLoadDailyHours && report.FocusScore < s.cfg.HighRiskFocusScore:
		report.BurnoutRisk = models.RiskHigh
	case report.AverageDailyHours > s.cfg.ModerateLoadDailyHours && report.FocusScore < s.cfg.ModerateRiskFocusScore:
		report.BurnoutRisk = models.RiskMedium
	}

	return report
}
