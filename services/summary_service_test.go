package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"challengeapi/models"
)

func TestSummarize(t *testing.T) {
	t.Run("EmptyChallenge", func(t *testing.T) {
		challenge := testChallenge(14)
		summary := Summarize(challenge)

		assert.Equal(t, 14, summary.Days)
		assert.Equal(t, 2, summary.Weeks)
		assert.Equal(t, 0, summary.TotalSelected)
		// 14*2 + 2 + 1
		assert.Equal(t, 31, summary.ExpectedTotal)
	})

	t.Run("CountsPerCategory", func(t *testing.T) {
		challenge := testChallenge(7)
		challenge.ChallengeQuestions = []models.ChallengeQuestion{
			testAssignment("q1", 1, models.CategoryDaily),
			testAssignment("q2", 2, models.CategoryDaily),
			testAssignment("q3", 1, models.CategoryDailyReflection),
			testAssignment("q4", 7, models.CategoryWeeklyReflection),
			testAssignment("q5", 7, models.CategoryChallengeReflection),
		}

		summary := Summarize(challenge)
		assert.Equal(t, 2, summary.DailyCount)
		assert.Equal(t, 1, summary.DailyReflectionCount)
		assert.Equal(t, 1, summary.WeeklyReflectionCount)
		assert.Equal(t, 1, summary.ChallengeReflectionCount)
		assert.Equal(t, 5, summary.TotalSelected)
		// 7*2 + 1 + 1
		assert.Equal(t, 16, summary.ExpectedTotal)
	})

	t.Run("ExpectedTotalIsInformational", func(t *testing.T) {
		// A challenge can hold fewer or more reachable assignments than
		// the expected total; the summary never caps anything.
		challenge := testChallenge(1)
		summary := Summarize(challenge)
		assert.Equal(t, 4, summary.ExpectedTotal) // 1*2 + 1 + 1
	})
}
