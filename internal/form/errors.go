package form

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNavigation = errors.New("navigation failed")
)

// ValidationError is the first rule a form violated. Message is what the user sees.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
