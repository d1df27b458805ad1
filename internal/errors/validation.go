package errors

// Messages surfaced to callers. They are matched on by substring, so the
// wording is part of the contract.
const (
	MsgNameEmpty    = "Name cannot be empty"
	MsgInvalidEmail = "Invalid email format"
)

// ValidationError represents an InvalidInput failure on a single field
type ValidationError struct {
	*BaseError
	Field      string // field that failed validation
	Value      any    // the value that failed validation
	Constraint string // the rule that failed, e.g. "not_blank"
}

// NewValidationError creates an InvalidInput error for field with a fixed message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		BaseError: New(InvalidInputErrorCode, message).WithContext("field", field),
		Field:     field,
	}
}

// NewValidationErrorWithValue creates an InvalidInput error recording the rejected value
func NewValidationErrorWithValue(field string, value any, constraint, message string) *ValidationError {
	err := NewValidationError(field, message)
	err.Value = value
	err.Constraint = constraint
	return err
}

// ErrNameEmpty is returned when a trimmed name is empty
func ErrNameEmpty(value string) *ValidationError {
	return NewValidationErrorWithValue("name", value, "not_blank", MsgNameEmpty)
}

// ErrInvalidEmail is returned when an email does not match the accepted pattern
func ErrInvalidEmail(value string) *ValidationError {
	return NewValidationErrorWithValue("email", value, "email_format", MsgInvalidEmail)
}

// InvalidInput creates a generic InvalidInput error
func InvalidInput(message string) *BaseError {
	return New(InvalidInputErrorCode, message)
}

// NotFound creates a NotFound error
func NotFound(message string) *BaseError {
	return New(NotFoundErrorCode, message)
}
