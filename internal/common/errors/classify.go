// internal/common/errors/classify.go
package errors

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// ==========================
// Upstream Error Classification
// ==========================

// ClassifyGenerationError converts a raw generative-language API error into
// a sanitized StandardError. The raw error is inspected but never quoted:
// Gemini client errors can carry the request URL including the API key.
func ClassifyGenerationError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	code := statusCode(err)
	raw := strings.ToLower(err.Error())

	// The Gemini SDK surfaces *genai.APIError rather than *googleapi.Error,
	// so the numeric status also has to be matched inside the message text.
	switch {
	case code == 429 || strings.Contains(raw, "429") ||
		strings.Contains(raw, "quota") || strings.Contains(raw, "resource_exhausted"):
		return NewGenerationQuotaError()

	case code == 401 || code == 403 || strings.Contains(raw, "403") ||
		strings.Contains(raw, "api_key") || strings.Contains(raw, "api key") ||
		strings.Contains(raw, "permission") || strings.Contains(raw, "unauthenticated"):
		return NewAPIKeyInvalidError()

	case errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(raw, "timeout") || strings.Contains(raw, "deadline"):
		return NewGenerationTimeoutError()

	case strings.Contains(raw, "safety") || strings.Contains(raw, "blocked"):
		return NewGenerationBlockedError()

	default:
		return NewGenerationFailedError()
	}
}

// ClassifyStorageError converts a raw Sheets API error into a sanitized
// StandardError. Permission and missing-resource failures are non-retryable
// and must surface immediately; connectivity and quota failures retry.
func ClassifyStorageError(err error, worksheet string) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	code := statusCode(err)
	raw := strings.ToLower(err.Error())

	switch {
	case code == 429 || strings.Contains(raw, "quota"):
		return NewStorageQuotaError()

	case code == 401 || code == 403 || strings.Contains(raw, "permission"):
		return NewStoragePermissionDeniedError()

	case code == 404 || strings.Contains(raw, "not found") || strings.Contains(raw, "unable to parse range"):
		return NewWorksheetNotFoundError(worksheet)

	case strings.Contains(raw, "transport") || strings.Contains(raw, "ssl") ||
		strings.Contains(raw, "connect") || strings.Contains(raw, "connection"):
		return NewStorageConnectionFailedError()

	default:
		return NewStorageFailedError()
	}
}

func statusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
