package model

import (
	"errors"
	"fmt"
)

// Typed auth failure codes. The gateway adapter maps raw service error
// text onto these at the boundary; nothing above it branches on
// message strings.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrAccountExists      = errors.New("account already exists")
	ErrCreationFailed     = errors.New("account creation failed")
	ErrNoRecoverySession  = errors.New("no active recovery session")
	ErrWeakPassword       = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("password confirmation mismatch")
	ErrUnexpected         = errors.New("unexpected gateway error")
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ValidationError is a local form-input failure. It is surfaced as
// inline form text and never reaches the gateway or a global handler.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a form field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
