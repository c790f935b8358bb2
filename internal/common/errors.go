// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ledger errors.
	ErrInvalidNumber = errors.New("invalid number")
	ErrEmptyLedger   = errors.New("no items in quotation")

	// Export errors.
	ErrFolderUnavailable = errors.New("save folder not configured")
	ErrExportWrite       = errors.New("failed to write quotation")
	ErrOpenOrPrint       = errors.New("failed to open or print quotation")
	ErrExportCancelled   = errors.New("export canceled")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FieldError reports which form field rejected its input.
type FieldError struct {
	Err   error
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates an error for a rejected field value.
func NewFieldError(field, value string, err error) error {
	return &FieldError{
		Field: field,
		Value: value,
		Err:   err,
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the text to show for err. Field errors name the field,
// other errors fall back to their message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		if errors.Is(fieldErr.Err, ErrInvalidNumber) {
			return fmt.Sprintf("Please enter a valid %s.", fieldErr.Field)
		}
		return fmt.Sprintf("Invalid %s: %v", fieldErr.Field, fieldErr.Err)
	}

	switch {
	case errors.Is(err, ErrEmptyLedger):
		return "There are no items yet."
	case errors.Is(err, ErrFolderUnavailable):
		return "Choose a save folder in settings first."
	case errors.Is(err, ErrExportCancelled):
		return "Export canceled."
	}

	return err.Error()
}

// IsWarning reports whether err should be shown as a warning rather than a failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrOpenOrPrint) ||
		errors.Is(err, ErrEmptyLedger) ||
		errors.Is(err, ErrExportCancelled)
}
