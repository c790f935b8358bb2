// Package storage keeps a journal of exported quotations in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidLimit = errors.New("limit must be positive")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateExportRecord(rec *model.ExportRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(rec.Path, "path"); err != nil {
		return err
	}
	if rec.ExportedAt.IsZero() {
		return errors.New("export time is required")
	}
	if rec.ItemCount < 0 {
		return fmt.Errorf("item count cannot be negative: %d", rec.ItemCount)
	}
	return nil
}
