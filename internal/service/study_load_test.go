package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

func TestExpectedWeeklyStudyHours(t *testing.T) {
	assert.InDelta(t, 30.0, ExpectedWeeklyStudyHours(15, 2.0), 0.001)
	assert.InDelta(t, 37.5, ExpectedWeeklyStudyHours(15, 2.5), 0.001)
	// Non-positive rates fall back to the default rule of thumb.
	assert.InDelta(t, 24.0, ExpectedWeeklyStudyHours(12, 0), 0.001)
	assert.Zero(t, ExpectedWeeklyStudyHours(0, 2.0))
	assert.Zero(t, ExpectedWeeklyStudyHours(-3, 2.0))
}

func TestSubjectDifficultyTracksGradeBand(t *testing.T) {
	cases := []struct {
		grade models.LetterGrade
		want  int
	}{
		{"A+", DifficultyLight},
		{"A-", DifficultyLight},
		{"B", DifficultyRoutine},
		{"C+", DifficultyModerate},
		{"C", DifficultyDemanding},
		{"D", DifficultyDemanding},
		{"F", DifficultyIntense},
		{"Z", DifficultyIntense},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SubjectDifficulty(tc.grade), "grade %s", tc.grade)
	}
}

func TestFocusSessionsScaleWithDifficulty(t *testing.T) {
	assert.Equal(t, 3, focusSessionsPerWeek("F"))
	assert.Equal(t, 2, focusSessionsPerWeek("C"))
	assert.Equal(t, 2, focusSessionsPerWeek("D"))
}
