package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"challengeapi/models"
)

func strPtr(s string) *string { return &s }

func TestValidateResponse(t *testing.T) {
	textQuestion := &models.Question{ID: "q1", ResponseType: models.ResponseTypeText}
	choiceQuestion := &models.Question{
		ID:           "q2",
		ResponseType: models.ResponseTypeMultipleChoice,
		Options: []models.Option{
			{ID: "opt-1", QuestionID: "q2", OptionText: "Morning"},
			{ID: "opt-2", QuestionID: "q2", OptionText: "Evening"},
		},
	}

	t.Run("TextAnswerAccepted", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q1", ResponseText: strPtr("journaling works")}
		assert.NoError(t, validateResponse(textQuestion, req))
	})

	t.Run("EmptyTextRejected", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q1", ResponseText: strPtr("")}
		assert.Error(t, validateResponse(textQuestion, req))
	})

	t.Run("OptionOnTextQuestionRejected", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q1", SelectedOptionID: strPtr("opt-1")}
		assert.Error(t, validateResponse(textQuestion, req))
	})

	t.Run("KnownOptionAccepted", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q2", SelectedOptionID: strPtr("opt-2")}
		assert.NoError(t, validateResponse(choiceQuestion, req))
	})

	t.Run("ForeignOptionRejected", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q2", SelectedOptionID: strPtr("opt-99")}
		assert.Error(t, validateResponse(choiceQuestion, req))
	})

	t.Run("ChoiceWithoutSelectionRejected", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q2"}
		assert.Error(t, validateResponse(choiceQuestion, req))
	})

	t.Run("CustomTextNeedsAllowFlag", func(t *testing.T) {
		req := &SubmitResponseRequest{QuestionID: "q2", ResponseText: strPtr("neither, really")}
		assert.Error(t, validateResponse(choiceQuestion, req))

		allowed := *choiceQuestion
		allowed.AllowCustomText = true
		assert.NoError(t, validateResponse(&allowed, req))
	})
}
