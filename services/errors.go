package services

// Validation error codes surfaced to the client alongside the message.
const (
	CodeMissingField          = "MissingField"
	CodeDayOutOfRange         = "DayOutOfRange"
	CodeInvalidDayForCategory = "InvalidDayForCategory"
	CodeDuplicateSlot         = "DuplicateSlot"
	CodeQuotaExceeded         = "QuotaExceeded"
)

// ValidationError is a user-facing rejection of an assignment attempt.
// It is never retried; the stored state is left unchanged.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
