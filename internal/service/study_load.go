package service

import "github.com/noah-isme/uni-portal-api/internal/models"

// DefaultHoursPerCredit is the planning rule of thumb: two weekly study hours
// for every registered credit.
const DefaultHoursPerCredit = 2.0

// studyLoadShortfallRatio is the fraction of the expected weekly hours below
// which the synthesizer flags the student as under-studying.
const studyLoadShortfallRatio = 0.6

// Difficulty bands on the same 1-5 scale as SubjectPerformance ratings.
const (
	DifficultyLight     = 1
	DifficultyRoutine   = 2
	DifficultyModerate  = 3
	DifficultyDemanding = 4
	DifficultyIntense   = 5
)

// ExpectedWeeklyStudyHours estimates the weekly study time a credit load
// calls for.
func ExpectedWeeklyStudyHours(credits int, hoursPerCredit float64) float64 {
	if hoursPerCredit <= 0 {
		hoursPerCredit = DefaultHoursPerCredit
	}
	if credits <= 0 {
		return 0
	}
	return Round2(float64(credits) * hoursPerCredit)
}

// SubjectDifficulty derives a 1-5 difficulty rating from the current grade
// band. A subject a student is failing, or graded outside the institutional
// scale, is treated as the hardest.
func SubjectDifficulty(grade models.LetterGrade) int {
	switch BandOf(grade) {
	case BandExcellent:
		return DifficultyLight
	case BandGood:
		return DifficultyRoutine
	case BandAverage:
		return DifficultyModerate
	case BandNeedsImprovement:
		return DifficultyDemanding
	default:
		return DifficultyIntense
	}
}

// focusSessionsPerWeek sizes the subject-focus suggestion by derived
// difficulty.
func focusSessionsPerWeek(grade models.LetterGrade) int {
	if SubjectDifficulty(grade) >= DifficultyIntense {
		return 3
	}
	return 2
}
