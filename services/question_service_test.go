package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"challengeapi/models"
)

func TestNormalizeOptions(t *testing.T) {
	twoOptions := []CreateOptionRequest{{OptionText: "Morning"}, {OptionText: "Evening"}}

	t.Run("MovingOffMultipleChoiceClearsOptions", func(t *testing.T) {
		// A question edited from multiple-choice to text must not keep
		// its old options around.
		clear, replace, err := normalizeOptions(models.ResponseTypeText, nil)
		assert.NoError(t, err)
		assert.True(t, clear)
		assert.False(t, replace)
	})

	t.Run("OptionsRejectedOnTextQuestions", func(t *testing.T) {
		_, _, err := normalizeOptions(models.ResponseTypeText, twoOptions)
		assert.Error(t, err)

		_, _, err = normalizeOptions(models.ResponseTypeMultipleText, twoOptions)
		assert.Error(t, err)
	})

	t.Run("OmittedOptionsKeepStoredSet", func(t *testing.T) {
		clear, replace, err := normalizeOptions(models.ResponseTypeMultipleChoice, nil)
		assert.NoError(t, err)
		assert.False(t, clear)
		assert.False(t, replace)
	})

	t.Run("NewListReplacesStoredSet", func(t *testing.T) {
		clear, replace, err := normalizeOptions(models.ResponseTypeMultipleChoice, twoOptions)
		assert.NoError(t, err)
		assert.False(t, clear)
		assert.True(t, replace)
	})

	t.Run("MultipleChoiceNeedsTwoOptions", func(t *testing.T) {
		_, _, err := normalizeOptions(models.ResponseTypeMultipleChoice, twoOptions[:1])
		assert.Error(t, err)
	})
}
