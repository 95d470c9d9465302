// internal/common/errors/errors.go
// Package errors provides standardized error handling for the prompt pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Generation (Gemini) errors
	ErrCodeGenerationFailed        ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationQuotaExceeded ErrorCode = "GENERATION_QUOTA_EXCEEDED"
	ErrCodeGenerationTimeout       ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeGenerationBlocked       ErrorCode = "GENERATION_BLOCKED"
	ErrCodeAPIKeyInvalid           ErrorCode = "API_KEY_INVALID"

	// Validation errors
	ErrCodeEmptyOutput ErrorCode = "EMPTY_OUTPUT"

	// Storage (Sheets) errors
	ErrCodeStorageFailed           ErrorCode = "STORAGE_FAILED"
	ErrCodeStorageQuotaExceeded    ErrorCode = "STORAGE_QUOTA_EXCEEDED"
	ErrCodeStoragePermissionDenied ErrorCode = "STORAGE_PERMISSION_DENIED"
	ErrCodeWorksheetNotFound       ErrorCode = "WORKSHEET_NOT_FOUND"
	ErrCodeStorageConnectionFailed ErrorCode = "STORAGE_CONNECTION_FAILED"
)

// StandardError represents a structured application error.
//
// Details must never contain raw upstream error text: upstream messages can
// embed API keys, tokens, or credential file contents. Constructors below
// only record fixed category descriptions.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewGenerationFailedError creates a retryable generic AI call error.
func NewGenerationFailedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Prompt generation failed due to a system issue",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationQuotaError creates a retryable AI quota error.
func NewGenerationQuotaError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationQuotaExceeded,
		Message:   "Google AI API quota exceeded",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTimeoutError creates a retryable AI timeout error.
func NewGenerationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "Request to the generative-language API timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationBlockedError creates a non-retryable safety filter error.
func NewGenerationBlockedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationBlocked,
		Message:   "AI response was blocked by safety filters",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIKeyInvalidError creates a non-retryable authentication error.
func NewAPIKeyInvalidError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIKeyInvalid,
		Message:   "Google API key is invalid or restricted",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyOutputError creates a non-retryable validation error.
func NewEmptyOutputError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyOutput,
		Message:   "Generated prompt is empty or whitespace-only",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailedError creates a retryable generic spreadsheet error.
func NewStorageFailedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Spreadsheet update failed due to a system issue",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageQuotaError creates a retryable Sheets quota error.
func NewStorageQuotaError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageQuotaExceeded,
		Message:   "Google Sheets API quota exceeded",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoragePermissionDeniedError creates a non-retryable permission error.
func NewStoragePermissionDeniedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStoragePermissionDenied,
		Message:   "Google Sheets permission denied or invalid credentials",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorksheetNotFoundError creates a non-retryable missing worksheet error.
func NewWorksheetNotFoundError(worksheet string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorksheetNotFound,
		Message:   "Target worksheet or spreadsheet not found",
		Details:   fmt.Sprintf("worksheet: %s", worksheet),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageConnectionFailedError creates a retryable connectivity error.
func NewStorageConnectionFailedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageConnectionFailed,
		Message:   "Network connection to the Google Sheets API failed",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryable reports whether err should be retried under the local retry
// budget. Errors that are not StandardError are treated as transient, which
// matches how unclassified upstream failures behaved before classification
// was added.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return true
}

// CodeOf extracts the ErrorCode from err, or "INTERNAL_ERROR" when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return "INTERNAL_ERROR"
}
