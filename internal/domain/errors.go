package domain

import "errors"

var ErrAuthRejected = errors.New("authentication rejected")

// AuthRejectedError carries the message the auth endpoint returned with success=false.
type AuthRejectedError struct {
	Message string
}

func (e *AuthRejectedError) Error() string {
	if e.Message == "" {
		return ErrAuthRejected.Error()
	}
	return e.Message
}

func (e *AuthRejectedError) Is(target error) bool {
	return target == ErrAuthRejected
}
