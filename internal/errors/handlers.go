package errors

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError handles errors for CLI interface
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if appErr.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, appErr.Cause)
	}
	if appErr.Details != "" {
		message = fmt.Sprintf("%s (%s)", message, appErr.Details)
	}

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", message)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", message)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", message)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", message)
	default:
		return message
	}
}

// TUIErrorHandler handles errors for TUI interface. Errors are appended to
// <logDir>/error.log since the terminal is owned by the program.
type TUIErrorHandler struct {
	ShowDetails bool
	logDir      string
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(logDir string, showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
		logDir:      logDir,
	}
}

// HandleError handles errors for TUI interface
func (h *TUIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)
	h.logToFile(appErr)
	return appErr
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if appErr.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, appErr.Cause)
	}
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s: %s", message, appErr.Details)
	}
	return message
}

// GetErrorStyle returns an icon and hex color for the error's severity
func (h *TUIErrorHandler) GetErrorStyle(err error) (string, string) {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return "✖", "#ff0000"
	case SeverityError:
		return "✖", "#ff6b6b"
	case SeverityWarning:
		return "!", "#feca57"
	case SeverityInfo:
		return "i", "#48cae4"
	default:
		return "✖", "#ff6b6b"
	}
}

// logToFile appends the error to the log file, failing silently
func (h *TUIErrorHandler) logToFile(appErr *AppError) {
	if h.logDir == "" {
		return
	}
	if err := os.MkdirAll(h.logDir, 0755); err != nil {
		return
	}

	file, err := os.OpenFile(filepath.Join(h.logDir, "error.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	entry := fmt.Sprintf("[%s] [%s] %s", appErr.Severity, appErr.Category, appErr.Error())
	if appErr.Cause != nil {
		entry += fmt.Sprintf(" | Cause: %v", appErr.Cause)
	}
	if appErr.Context != nil {
		contextJSON, _ := json.Marshal(appErr.Context)
		entry += fmt.Sprintf(" | Context: %s", contextJSON)
	}
	logger.Println(entry)
}
