package services

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyBooked    = errors.New("already booked")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// ValidationError carries every conflict or input problem detected for a
// request, so a caller sees the full set in one response instead of the
// first failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
