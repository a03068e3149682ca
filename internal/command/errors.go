package command

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parse failures.
type ErrorCode string

const (
	// ErrCodeMalformed indicates a trigger matched but required structure
	// (delimiter, colon, name) is missing.
	ErrCodeMalformed ErrorCode = "MALFORMED_COMMAND"

	// ErrCodeEmptyArgument indicates a trigger matched but the free-text
	// argument after it is empty.
	ErrCodeEmptyArgument ErrorCode = "EMPTY_ARGUMENT"
)

// ParseError reports a recognized command whose arguments could not be extracted.
type ParseError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Intent is the command the trigger selected.
	Intent Intent

	// Message is a human-readable description for logs.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (intent=%s)", e.Code, e.Message, e.Intent)
}

// IsMalformed returns true if err is a ParseError with ErrCodeMalformed.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeMalformed
	}
	return false
}

// IsEmptyArgument returns true if err is a ParseError with ErrCodeEmptyArgument.
// Uses errors.As to handle wrapped errors.
func IsEmptyArgument(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeEmptyArgument
	}
	return false
}

func malformed(intent Intent, format string, args ...any) *ParseError {
	return &ParseError{Code: ErrCodeMalformed, Intent: intent, Message: fmt.Sprintf(format, args...)}
}

func emptyArgument(intent Intent, what string) *ParseError {
	return &ParseError{Code: ErrCodeEmptyArgument, Intent: intent, Message: what + " is empty"}
}
