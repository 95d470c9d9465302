// internal/common/retry/retry.go
// Package retry implements the fixed-attempt, fixed-delay retry policy
// shared by both remote tasks.
package retry

import (
	"context"
	"fmt"
	"time"

	apperrors "prompt-queue-bot/internal/common/errors"
	"prompt-queue-bot/internal/common/logger"
	"prompt-queue-bot/internal/common/metrics"
)

// Policy describes the retry budget for an operation.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy mirrors the scheduler contract: 3 attempts, 5s apart.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
	}
}

// Do executes op under the policy. Transient failures are retried until the
// attempt budget runs out; a non-retryable failure returns immediately
// without consuming the remaining budget. The error from the final attempt
// is returned as-is so callers keep the classified StandardError.
func Do(ctx context.Context, operationName string, p Policy, log logger.Logger, op func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("retry policy for %s has no attempts", operationName)
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}

		if !apperrors.IsRetryable(err) {
			log.Error(fmt.Sprintf("%s failed with non-retryable error", operationName), map[string]interface{}{
				"errorCode": string(apperrors.CodeOf(err)),
				"attempt":   attempt,
			})
			return err
		}

		if attempt < p.MaxAttempts {
			metrics.TaskRetries.WithLabelValues(operationName).Inc()
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"errorCode":   string(apperrors.CodeOf(err)),
				"attempt":     attempt,
				"maxAttempts": p.MaxAttempts,
				"nextRetryIn": p.Delay.String(),
			})

			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return err
			}
		}
	}

	log.Error(fmt.Sprintf("%s failed after %d attempts", operationName, p.MaxAttempts), map[string]interface{}{
		"errorCode": string(apperrors.CodeOf(err)),
	})
	return err
}
