package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
)

func TestGPATrendSeriesNilRecord(t *testing.T) {
	series := GPATrendSeries(nil)

	require.NotNil(t, series)
	assert.Equal(t, "GPA Trend", series.Name)
	assert.Equal(t, models.ChartLine, series.Type)
	assert.NotNil(t, series.Points)
	assert.Empty(t, series.Points)
}

func TestGPATrendSeriesLabelsSemesters(t *testing.T) {
	record := &models.AcademicRecord{SemesterRecords: []models.SemesterRecord{
		{AcademicYear: 2025, Semester: models.SemesterSpring, SemesterGPA: 3.5, SemesterCredits: 12},
		{AcademicYear: 2025, Semester: models.SemesterFall, SemesterGPA: 3.8, SemesterCredits: 15},
	}}

	series := GPATrendSeries(record)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "2025 SPRING", series.Points[0].X)
	assert.Equal(t, 3.5, series.Points[0].Y)
	assert.Equal(t, "GPA 3.50 over 12 credits", series.Points[0].Label)
	assert.Equal(t, "2025 FALL", series.Points[1].X)
}

func TestWeeklyPatternSeriesSevenNamedDays(t *testing.T) {
	patterns := &models.LearningPatterns{}
	for weekday := 0; weekday < 7; weekday++ {
		patterns.WeeklyPattern = append(patterns.WeeklyPattern, models.WeekdayPattern{Weekday: weekday})
	}
	patterns.WeeklyPattern[1].TotalHours = 2.5
	patterns.WeeklyPattern[1].AverageEfficiency = 4.0

	series := WeeklyPatternSeries(patterns)

	require.Len(t, series.Points, 7)
	assert.Equal(t, "Sun", series.Points[0].X)
	assert.Equal(t, "Mon", series.Points[1].X)
	assert.Equal(t, "Sat", series.Points[6].X)
	assert.Equal(t, 2.5, series.Points[1].Y)
	assert.Equal(t, "2.5h, avg efficiency 4.0", series.Points[1].Label)
	assert.Equal(t, models.ChartBar, series.Type)
}

func TestCategoryProgressSeries(t *testing.T) {
	progress := &models.DegreeProgress{Categories: []models.CategoryProgress{
		{Category: models.CategoryElective, RequiredCredits: 30, EarnedCredits: 15, Percentage: 50},
		{Category: models.CategoryRequired, RequiredCredits: 80, EarnedCredits: 80, Percentage: 100},
	}}

	series := CategoryProgressSeries(progress)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "ELECTIVE", series.Points[0].X)
	assert.Equal(t, 50.0, series.Points[0].Y)
	assert.Equal(t, "15/30 credits", series.Points[0].Label)
}

func TestHourlyEfficiencySeriesSortedByHourWithoutMutatingInput(t *testing.T) {
	patterns := &models.LearningPatterns{PreferredHours: []models.HourlyEfficiency{
		{Hour: 14, AverageEfficiency: 4.5, Sessions: 3},
		{Hour: 9, AverageEfficiency: 3.0, Sessions: 2},
	}}

	series := HourlyEfficiencySeries(patterns)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "09:00", series.Points[0].X)
	assert.Equal(t, "14:00", series.Points[1].X)
	assert.Equal(t, "2 sessions", series.Points[0].Label)
	// The miner's efficiency-ranked ordering stays intact.
	assert.Equal(t, 14, patterns.PreferredHours[0].Hour)
}

func TestSeriesUnknownKey(t *testing.T) {
	svc := NewChartService(nil, nil, nil, nil)

	_, err := svc.Series(context.Background(), "stu-1", "pie-of-doom")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
