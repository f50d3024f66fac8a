package errors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{ErrCodeInvalidFormat, CategoryValidation, SeverityWarning},
		{ErrCodeStorageFailure, CategoryStorage, SeverityError},
		{ErrCodeNotFound, CategoryService, SeverityInfo},
		{ErrCodeInternalError, CategoryService, SeverityCritical},
		{ErrorCode("SOMETHING_ELSE"), CategorySystem, SeverityError},
	}

	for _, tt := range tests {
		err := NewAppError(tt.code, "msg")
		if err.Category != tt.category || err.Severity != tt.severity {
			t.Errorf("%s: got %s/%s, want %s/%s", tt.code, err.Category, err.Severity, tt.category, tt.severity)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := StorageError("save workspace", cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsAppError(wrapped) {
		t.Error("IsAppError should see through wrapping")
	}
	if !HasCode(wrapped, ErrCodeStorageFailure) {
		t.Error("HasCode should match STORAGE_FAILURE")
	}
	if GetAppError(wrapped) != err {
		t.Error("GetAppError should return the wrapped AppError")
	}

	plain := GetAppError(cause)
	if plain.Code != ErrCodeInternalError {
		t.Errorf("plain errors should convert to INTERNAL_ERROR, got %s", plain.Code)
	}
}

func TestCLIFormatError(t *testing.T) {
	h := NewCLIErrorHandler(false)
	msg := h.FormatError(FormatError("import rejected", nil).WithDetails("root is a list"))
	if msg != "WARNING: import rejected (root is a list)" {
		t.Errorf("FormatError() = %q", msg)
	}

	if err := h.HandleError(NotFoundError("category 3")); err == nil || !strings.HasPrefix(err.Error(), "INFO:") {
		t.Errorf("HandleError() = %v", err)
	}
}

func TestTUIHandlerLogsToFile(t *testing.T) {
	dir := t.TempDir()
	h := NewTUIErrorHandler(dir, true)

	err := h.HandleError(InvalidInputError("bad slot").WithContext("index", 2))
	if !HasCode(err, ErrCodeInvalidInput) {
		t.Fatalf("HandleError returned %v", err)
	}

	data, readErr := os.ReadFile(filepath.Join(dir, "error.log"))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if !strings.Contains(string(data), "INVALID_INPUT") || !strings.Contains(string(data), `"index":2`) {
		t.Errorf("log entry missing fields: %s", data)
	}

	icon, color := h.GetErrorStyle(err)
	if icon == "" || color == "" {
		t.Error("GetErrorStyle should return an icon and a color")
	}
}

func TestFormatErrorIncludesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	h := NewCLIErrorHandler(false)
	msg := h.FormatError(StorageError("save project", cause))
	if msg != "ERROR: Storage operation failed: save project: permission denied" {
		t.Errorf("FormatError() = %q", msg)
	}

	tui := NewTUIErrorHandler("", false)
	if got := tui.FormatError(fmt.Errorf("plain failure")); got != "Internal error occurred: plain failure" {
		t.Errorf("TUI FormatError() = %q", got)
	}
}
