package models

import "time"

// StudyStats aggregates a session list into headline figures.
type StudyStats struct {
	StudentID             string  `json:"student_id"`
	SessionCount          int     `json:"session_count"`
	TotalStudyHours       float64 `json:"total_study_hours"`
	AverageSessionMinutes float64 `json:"average_session_minutes"`
	CurrentStreakDays     int     `json:"current_streak_days"`
	LongestStreakDays     int     `json:"longest_streak_days"`
}

// HourlyEfficiency is the mean efficiency of sessions starting in one
// hour-of-day bucket.
type HourlyEfficiency struct {
	Hour              int     `json:"hour"`
	Sessions          int     `json:"sessions"`
	AverageEfficiency float64 `json:"average_efficiency"`
}

// LocationEfficiency is the mean efficiency of sessions at one location.
type LocationEfficiency struct {
	Location          StudyLocation `json:"location"`
	Sessions          int           `json:"sessions"`
	AverageEfficiency float64       `json:"average_efficiency"`
}

// WeekdayPattern is the study load for one weekday (0=Sunday .. 6=Saturday).
type WeekdayPattern struct {
	Weekday           int     `json:"weekday"`
	TotalHours        float64 `json:"total_hours"`
	AverageEfficiency float64 `json:"average_efficiency"`
}

// LearningPatterns holds mined time-of-day, location and weekday
// distributions. WeeklyPattern always has exactly 7 entries.
type LearningPatterns struct {
	StudentID          string               `json:"student_id"`
	PreferredHours     []HourlyEfficiency   `json:"preferred_hours"`
	PreferredLocations []LocationEfficiency `json:"preferred_locations"`
	WeeklyPattern      []WeekdayPattern     `json:"weekly_pattern"`
}

// ProductivityTrend compares two trailing efficiency windows.
type ProductivityTrend string

// Trend verdicts.
const (
	TrendIncreasing ProductivityTrend = "INCREASING"
	TrendDecreasing ProductivityTrend = "DECREASING"
	TrendStable     ProductivityTrend = "STABLE"
)

// RiskLevel grades burnout exposure.
type RiskLevel string

// Burnout risk levels.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// EfficiencyReport scores focus, effective hours, trend and burnout risk.
type EfficiencyReport struct {
	StudentID           string            `json:"student_id"`
	FocusScore          int               `json:"focus_score"`
	TotalStudyHours     float64           `json:"total_study_hours"`
	EffectiveStudyHours float64           `json:"effective_study_hours"`
	AverageDailyHours   float64           `json:"average_daily_hours"`
	Trend               ProductivityTrend `json:"trend"`
	BurnoutRisk         RiskLevel         `json:"burnout_risk"`
	GeneratedAt         time.Time         `json:"generated_at"`
}

// RecommendationPriority ranks recommendations for display.
type RecommendationPriority string

// Priorities from most to least urgent.
const (
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityLow    RecommendationPriority = "LOW"
)

// Recommendation is a ranked, human-readable improvement suggestion.
type Recommendation struct {
	ID             string                 `json:"id"`
	Category       string                 `json:"category"`
	Priority       RecommendationPriority `json:"priority"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	ActionItems    []string               `json:"action_items"`
	ExpectedImpact string                 `json:"expected_impact"`
	EstimatedTime  string                 `json:"estimated_time"`
	Difficulty     string                 `json:"difficulty"`
	Tags           []string               `json:"tags"`
}
