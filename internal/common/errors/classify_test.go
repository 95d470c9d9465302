// internal/common/errors/classify_test.go
package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{
			name:      "quota keyword",
			err:       errors.New("googleapi: Error 429: quota exceeded for quota metric"),
			wantCode:  ErrCodeGenerationQuotaExceeded,
			retryable: true,
		},
		{
			name:      "resource exhausted status",
			err:       errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"),
			wantCode:  ErrCodeGenerationQuotaExceeded,
			retryable: true,
		},
		{
			name:      "invalid api key",
			err:       errors.New("API_KEY_INVALID: the provided api_key is not valid"),
			wantCode:  ErrCodeAPIKeyInvalid,
			retryable: false,
		},
		{
			name:      "permission denied",
			err:       errors.New("permission denied for model"),
			wantCode:  ErrCodeAPIKeyInvalid,
			retryable: false,
		},
		{
			name:      "deadline exceeded",
			err:       context.DeadlineExceeded,
			wantCode:  ErrCodeGenerationTimeout,
			retryable: true,
		},
		{
			name:      "timeout keyword",
			err:       errors.New("request timeout while awaiting headers"),
			wantCode:  ErrCodeGenerationTimeout,
			retryable: true,
		},
		{
			name:      "safety block",
			err:       errors.New("candidate was blocked due to SAFETY"),
			wantCode:  ErrCodeGenerationBlocked,
			retryable: false,
		},
		{
			name:      "unknown network error",
			err:       errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host"),
			wantCode:  ErrCodeGenerationFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := ClassifyGenerationError(tt.err)
			require.NotNil(t, stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestClassifyGenerationError_PassesThroughStandardError(t *testing.T) {
	original := NewGenerationBlockedError()
	assert.Same(t, original, ClassifyGenerationError(original))
}

func TestClassifyStorageError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{
			name:      "googleapi 429",
			err:       &googleapi.Error{Code: 429, Message: "Rate limit exceeded"},
			wantCode:  ErrCodeStorageQuotaExceeded,
			retryable: true,
		},
		{
			name:      "googleapi 403",
			err:       &googleapi.Error{Code: 403, Message: "The caller does not have permission"},
			wantCode:  ErrCodeStoragePermissionDenied,
			retryable: false,
		},
		{
			name:      "googleapi 404",
			err:       &googleapi.Error{Code: 404, Message: "Requested entity was not found"},
			wantCode:  ErrCodeWorksheetNotFound,
			retryable: false,
		},
		{
			name:      "bad range parses as missing worksheet",
			err:       &googleapi.Error{Code: 400, Message: "Unable to parse range: Process!A:D"},
			wantCode:  ErrCodeWorksheetNotFound,
			retryable: false,
		},
		{
			name:      "wrapped googleapi error",
			err:       fmt.Errorf("append: %w", &googleapi.Error{Code: 429}),
			wantCode:  ErrCodeStorageQuotaExceeded,
			retryable: true,
		},
		{
			name:      "connection reset",
			err:       errors.New("read tcp 10.0.0.2:443: connection reset by peer"),
			wantCode:  ErrCodeStorageConnectionFailed,
			retryable: true,
		},
		{
			name:      "ssl handshake",
			err:       errors.New("ssl handshake failure"),
			wantCode:  ErrCodeStorageConnectionFailed,
			retryable: true,
		},
		{
			name:      "googleapi 500",
			err:       &googleapi.Error{Code: 500, Message: "Internal error"},
			wantCode:  ErrCodeStorageFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := ClassifyStorageError(tt.err, "Process")
			require.NotNil(t, stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

// Raw upstream errors can embed credential material (keys in request URLs,
// token fragments). Classified errors must never echo any of it.
func TestClassification_RedactsSecrets(t *testing.T) {
	const secret = "AIzaSyFAKEKEY1234567890abcdef"

	genErr := ClassifyGenerationError(fmt.Errorf("GET https://generativelanguage.googleapis.com/v1beta/models?key=%s: 403 permission denied", secret))
	assert.NotContains(t, genErr.Error(), secret)
	assert.NotContains(t, genErr.Message, secret)
	assert.NotContains(t, genErr.Details, secret)

	storErr := ClassifyStorageError(fmt.Errorf("oauth2: cannot fetch token: private_key=%s", secret), "Process")
	assert.NotContains(t, storErr.Error(), secret)
	assert.NotContains(t, storErr.Message, secret)
	assert.NotContains(t, storErr.Details, secret)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewStorageConnectionFailedError()))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", NewGenerationQuotaError())))
	assert.False(t, IsRetryable(NewStoragePermissionDeniedError()))
	assert.False(t, IsRetryable(NewEmptyOutputError()))
	assert.True(t, IsRetryable(errors.New("some unclassified failure")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeEmptyOutput, CodeOf(NewEmptyOutputError()))
	assert.Equal(t, ErrCodeAPIKeyInvalid, CodeOf(fmt.Errorf("wrap: %w", NewAPIKeyInvalidError())))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), CodeOf(errors.New("plain")))
}
