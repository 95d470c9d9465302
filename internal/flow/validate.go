// internal/flow/validate.go
package flow

import (
	"strings"

	apperrors "prompt-queue-bot/internal/common/errors"
)

// ValidatePrompt is the fail-fast gate between generation and storage: a
// malformed or empty generation must never reach the spreadsheet. Pure
// function, no I/O. Valid text comes back trimmed, so re-validating an
// already-valid result returns it unchanged.
func ValidatePrompt(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperrors.NewEmptyOutputError()
	}
	return trimmed, nil
}
