package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

// Default series colors; the presentation layer may override them.
const (
	colorGPA        = "#2563eb"
	colorHours      = "#16a34a"
	colorProgress   = "#9333ea"
	colorEfficiency = "#ea580c"
)

// ChartService transforms derived records into generic (x, y, label) series.
// Every preparer degrades to a named empty series: presentation layers always
// receive a renderable structure, never nil and never an error for "no data".
type ChartService struct {
	records  *RecordService
	degrees  *DegreeService
	patterns *PatternService
	logger   *zap.Logger
}

// NewChartService constructs a ChartService.
func NewChartService(records *RecordService, degrees *DegreeService, patterns *PatternService, logger *zap.Logger) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{records: records, degrees: degrees, patterns: patterns, logger: logger}
}

// Series dispatches on the series key used by the chart endpoints.
func (s *ChartService) Series(ctx context.Context, studentID, key string) (*models.ChartSeries, error) {
	switch key {
	case "gpa-trend":
		record, _, err := s.records.AcademicRecord(ctx, studentID)
		if err != nil {
			return nil, err
		}
		return GPATrendSeries(record), nil
	case "weekly-pattern":
		patterns, err := s.patterns.Patterns(ctx, studentID, models.StudySessionFilter{})
		if err != nil {
			return nil, err
		}
		return WeeklyPatternSeries(patterns), nil
	case "category-progress":
		progress, err := s.degrees.Progress(ctx, studentID)
		if err != nil {
			return nil, err
		}
		return CategoryProgressSeries(progress), nil
	case "hourly-efficiency":
		patterns, err := s.patterns.Patterns(ctx, studentID, models.StudySessionFilter{})
		if err != nil {
			return nil, err
		}
		return HourlyEfficiencySeries(patterns), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown chart series %q", key))
	}
}

// GPATrendSeries plots semester GPA chronologically.
func GPATrendSeries(record *models.AcademicRecord) *models.ChartSeries {
	series := &models.ChartSeries{Name: "GPA Trend", Type: models.ChartLine, Color: colorGPA, Points: []models.ChartPoint{}}
	if record == nil {
		return series
	}
	// SemesterRecords are already chronologically sorted by the aggregator.
	for _, sem := range record.SemesterRecords {
		label := fmt.Sprintf("%d %s", sem.AcademicYear, sem.Semester)
		series.Points = append(series.Points, models.ChartPoint{
			X:     label,
			Y:     sem.SemesterGPA,
			Label: fmt.Sprintf("GPA %.2f over %d credits", sem.SemesterGPA, sem.SemesterCredits),
		})
	}
	return series
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeeklyPatternSeries plots study hours per weekday as a fixed 7-point bar
// series.
func WeeklyPatternSeries(patterns *models.LearningPatterns) *models.ChartSeries {
	series := &models.ChartSeries{Name: "Weekly Study Pattern", Type: models.ChartBar, Color: colorHours, Points: []models.ChartPoint{}}
	if patterns == nil {
		return series
	}
	for _, day := range patterns.WeeklyPattern {
		name := ""
		if day.Weekday >= 0 && day.Weekday < len(weekdayNames) {
			name = weekdayNames[day.Weekday]
		}
		series.Points = append(series.Points, models.ChartPoint{
			X:     name,
			Y:     day.TotalHours,
			Label: fmt.Sprintf("%.1fh, avg efficiency %.1f", day.TotalHours, day.AverageEfficiency),
		})
	}
	return series
}

// CategoryProgressSeries plots per-category completion percentage,
// categorically ordered.
func CategoryProgressSeries(progress *models.DegreeProgress) *models.ChartSeries {
	series := &models.ChartSeries{Name: "Degree Progress by Category", Type: models.ChartBar, Color: colorProgress, Points: []models.ChartPoint{}}
	if progress == nil {
		return series
	}
	// Categories arrive alphabetically sorted from the degree calculator.
	for _, category := range progress.Categories {
		series.Points = append(series.Points, models.ChartPoint{
			X:     string(category.Category),
			Y:     category.Percentage,
			Label: fmt.Sprintf("%d/%d credits", category.EarnedCredits, category.RequiredCredits),
		})
	}
	return series
}

// HourlyEfficiencySeries plots mean efficiency per hour-of-day sorted by
// hour.
func HourlyEfficiencySeries(patterns *models.LearningPatterns) *models.ChartSeries {
	series := &models.ChartSeries{Name: "Efficiency by Hour", Type: models.ChartLine, Color: colorEfficiency, Points: []models.ChartPoint{}}
	if patterns == nil {
		return series
	}
	// Copy before sort so the miner's efficiency-ranked slice is not
	// reordered under the caller.
	ordered := make([]models.HourlyEfficiency, len(patterns.PreferredHours))
	copy(ordered, patterns.PreferredHours)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Hour < ordered[j].Hour })
	for _, hour := range ordered {
		series.Points = append(series.Points, models.ChartPoint{
			X:     fmt.Sprintf("%02d:00", hour.Hour),
			Y:     hour.AverageEfficiency,
			Label: fmt.Sprintf("%d sessions", hour.Sessions),
		})
	}
	return series
}
