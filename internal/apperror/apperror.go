package apperror

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// AppError is the domain error type returned by services and repositories.
// Handlers translate it into the `{"errors": {...}}` envelope: validation
// failures are keyed by field, everything else under "message".
type AppError struct {
	Err     error  // sentinel, for errors.Is
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
	Fields  map[string][]string // optional: multi-field validation bag
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Bag returns the error body in the shape the API serializes: field-keyed
// message lists, with non-field errors under "message".
func (e *AppError) Bag() map[string][]string {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	key := e.Field
	if key == "" {
		key = "message"
	}
	return map[string][]string{key: {e.Message}}
}

func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// ValidationFields wraps a full field→messages bag, as produced by the
// request validator.
func ValidationFields(fields map[string][]string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}
