package service

import (
	"math"
	"time"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

// gradePointTable is the fixed letter-to-point mapping. Unrecognised codes
// resolve to 0.0 and are flagged as data-quality anomalies, not failures.
var gradePointTable = map[models.LetterGrade]float64{
	"A+": 4.0,
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

const failingGrade = models.LetterGrade("F")

// GradePoints resolves a letter grade to its numeric value. The boolean is
// false for codes outside the institutional scale.
func GradePoints(grade models.LetterGrade) (float64, bool) {
	points, ok := gradePointTable[grade]
	return points, ok
}

// GradeBand classifies a grade for presentation and recommendation purposes.
type GradeBand string

// Grade bands.
const (
	BandExcellent        GradeBand = "EXCELLENT"
	BandGood             GradeBand = "GOOD"
	BandAverage          GradeBand = "AVERAGE"
	BandNeedsImprovement GradeBand = "NEEDS_IMPROVEMENT"
	BandFailing          GradeBand = "FAILING"
	BandUnknown          GradeBand = "UNKNOWN"
)

// BandOf maps a letter grade to its band.
func BandOf(grade models.LetterGrade) GradeBand {
	points, ok := gradePointTable[grade]
	if !ok {
		return BandUnknown
	}
	switch {
	case grade == failingGrade:
		return BandFailing
	case points >= 3.7:
		return BandExcellent
	case points >= 3.0:
		return BandGood
	case points > 2.0:
		return BandAverage
	default:
		return BandNeedsImprovement
	}
}

// NeedsImprovement reports whether a grade falls in the band that triggers
// subject-focus recommendations (C, C-, D+, D, F).
func NeedsImprovement(grade models.LetterGrade) bool {
	band := BandOf(grade)
	return band == BandNeedsImprovement || band == BandFailing
}

// semesterOrder fixes chronological ordering of semesters within a year.
var semesterOrder = map[models.Semester]int{
	models.SemesterSpring: 0,
	models.SemesterSummer: 1,
	models.SemesterFall:   2,
}

// SemesterIndex returns the chronological rank of a semester within its year.
// Unknown codes sort last.
func SemesterIndex(s models.Semester) int {
	if idx, ok := semesterOrder[s]; ok {
		return idx
	}
	return len(semesterOrder)
}

// SemesterDateRange maps a semester code to its calendar span.
func SemesterDateRange(year int, s models.Semester) (time.Time, time.Time) {
	switch s {
	case models.SemesterSpring:
		return date(year, time.February), date(year, time.June)
	case models.SemesterSummer:
		return date(year, time.June), date(year, time.September)
	default:
		return date(year, time.September), date(year+1, time.January)
	}
}

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// Round2 rounds a value to two decimal places for display. Internal math
// stays unrounded until this final step to avoid compounding rounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampPercent keeps a progress percentage within [0, 100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
