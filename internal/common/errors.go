package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy. AdapterFailure covers upload/processing/timeout/network
// problems during extraction; ExtractionParse covers responses that never
// became well-formed JSON; MalformedContent covers parsed content whose
// fields have the wrong shape and is a hard stop in the builder.
var (
	ErrAdapterFailure   = errors.New("extraction adapter failure")
	ErrExtractionParse  = errors.New("extraction response not parseable")
	ErrMalformedContent = errors.New("malformed structured content")
	ErrUnknownMode      = errors.New("unknown report mode")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
