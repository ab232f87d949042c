package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any network I/O when the caller passes bad input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTransportFailure matches every *TransportError.
	ErrTransportFailure = errors.New("transport failure")
	// ErrOperationFailed matches every *OperationFailedError.
	ErrOperationFailed = errors.New("operation failed")
)

// TransportError means no usable response was received: DNS, refused connection,
// timeout, interrupted body, or an open circuit breaker.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransportFailure }

// OperationFailedError means the server answered with a status outside the accepted set.
// Body is the raw response body.
type OperationFailedError struct {
	Op     string
	Status int
	Body   string
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("%s failed: %d - %s", e.Op, e.Status, e.Body)
}

func (e *OperationFailedError) Is(target error) bool { return target == ErrOperationFailed }
