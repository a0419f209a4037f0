package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"challengeapi/services"
)

func recordAssignmentError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondAssignmentError(c, err)
	return w
}

func TestRespondAssignmentError(t *testing.T) {
	t.Run("MissingField", func(t *testing.T) {
		err := &services.ValidationError{Code: services.CodeMissingField, Message: "select day and category"}
		w := recordAssignmentError(err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), services.CodeMissingField)
	})

	t.Run("DayOutOfRange", func(t *testing.T) {
		err := &services.ValidationError{Code: services.CodeDayOutOfRange, Message: "this challenge only has 7 days"}
		w := recordAssignmentError(err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DuplicateSlotConflicts", func(t *testing.T) {
		err := &services.ValidationError{Code: services.CodeDuplicateSlot, Message: "slot taken"}
		w := recordAssignmentError(err)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), services.CodeDuplicateSlot)
	})

	t.Run("QuotaExceededConflicts", func(t *testing.T) {
		err := &services.ValidationError{Code: services.CodeQuotaExceeded, Message: "quota reached"}
		w := recordAssignmentError(err)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("WrappedValidationErrorKeepsCode", func(t *testing.T) {
		// The batch path wraps item errors with the question id.
		inner := &services.ValidationError{Code: services.CodeQuotaExceeded, Message: "quota reached"}
		err := fmt.Errorf("question q-1: %w", inner)
		w := recordAssignmentError(err)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "q-1")
	})

	t.Run("RecordNotFound", func(t *testing.T) {
		w := recordAssignmentError(gorm.ErrRecordNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("OtherErrorsAreBadRequests", func(t *testing.T) {
		w := recordAssignmentError(errors.New("question q-2 is already assigned to this challenge"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
