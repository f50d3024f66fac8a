// Package validation checks structured data before it reaches the workspace.
//
// SYSTEM ARCHITECTURE ROLE:
// Imports arrive as untyped JSON. This package turns them into either a typed
// workspace or a list of field-level errors, so the service never has to
// inspect shapes itself.
//
// INTEGRATION POINTS:
// - internal/service/service.go: ImportProject calls ParseWorkspace and only
//   swaps the workspace when the result is valid
// - internal/errors/errors.go: WorkspaceResult.ToAppError() converts failures
//   to an INVALID_FORMAT AppError
package validation

import (
	"fmt"
	"strings"

	"github.com/dpshade/boxgrid/internal/errors"
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationWarning represents a field validation warning
type ValidationWarning struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationResult collects errors and warnings for one document
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

func newResult() ValidationResult {
	return ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}
}

func (r *ValidationResult) addError(field, code, message string, value interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Code:    code,
		Message: message,
		Value:   value,
	})
}

func (r *ValidationResult) addWarning(field, message string, value interface{}) {
	r.Warnings = append(r.Warnings, ValidationWarning{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

// ToAppError converts a failed result to an AppError. An out-of-range cell
// key yields INVALID_CELL_KEY; anything else INVALID_FORMAT.
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}

	if len(r.Errors) == 0 {
		return errors.FormatError("Validation failed", nil)
	}

	first := r.Errors[0]
	appErr := errors.FormatError(first.Message, nil)
	if first.Code == CodeInvalidCellKey {
		appErr = errors.InvalidCellKeyError(first.Field)
	}
	appErr.WithContext("field", first.Field)
	appErr.WithContext("code", first.Code)

	if len(r.Errors) > 1 {
		var details []string
		for _, e := range r.Errors[1:] {
			details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
		}
		appErr.WithDetails(strings.Join(details, "; "))
	}

	return appErr
}
