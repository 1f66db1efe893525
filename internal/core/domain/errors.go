package domain

import (
	"errors"
	"fmt"
)

// DomainError is a domain failure with a stable code.
// Codes have the form EP-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // e.g. "EP-ARG-1002"
	Message string
	Details string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on code, so errors.Is(err, ErrValidation) holds for any copy.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy with details set.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// WithCause returns a copy wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: e.Details, Cause: cause}
}

// IsDomainError reports whether err is a DomainError, with the given code
// when code is non-empty.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return code == "" || de.Code == code
	}
	return false
}

// GetErrorCode returns the code of a DomainError, or "".
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Argument errors (ARG).
var (
	// ErrValidation means required input is missing. The message is shown
	// to the user as is.
	ErrValidation = NewDomainError("EP-ARG-1002", "Please fill in all required fields")

	// ErrInvalidArgument means input is present but unusable.
	ErrInvalidArgument = NewDomainError("EP-ARG-1001", "invalid argument")
)

// Exam errors (EXAM).
var (
	// ErrInvalidDifficulty means a difficulty outside easy|medium|hard.
	ErrInvalidDifficulty = NewDomainError("EP-EXAM-4001", "invalid difficulty")
)
