// internal/tasks/append-row/handler.go
package appendrow

import (
	"context"
	"time"

	"google.golang.org/api/sheets/v4"

	apperrors "prompt-queue-bot/internal/common/errors"
	"prompt-queue-bot/internal/common/logger"
	"prompt-queue-bot/internal/common/metrics"
	"prompt-queue-bot/internal/common/retry"
)

const (
	TaskType = "append-row"
)

// valuesAppender is the slice of the Sheets service the handler needs.
// Tests inject a fake; production wraps *sheets.Service.
type valuesAppender interface {
	Append(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) (*sheets.AppendValuesResponse, error)
}

type sheetsAppender struct {
	svc *sheets.Service
}

// Append issues one values.append call. INSERT_ROWS keeps the append atomic
// at row granularity: the service either adds the whole row or nothing.
func (s *sheetsAppender) Append(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) (*sheets.AppendValuesResponse, error) {
	body := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}
	return s.svc.Spreadsheets.Values.Append(spreadsheetID, worksheet, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
}

type Handler struct {
	config   *Config
	appender valuesAppender
	policy   retry.Policy
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, svc *sheets.Service, policy retry.Policy, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		appender: &sheetsAppender{svc: svc},
		policy:   policy,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		now: time.Now,
	}
}

// Execute appends exactly one row under the local retry budget. Permission
// and missing-worksheet failures are non-retryable and surface immediately;
// connectivity and quota failures consume the budget before escalating.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	var output *Output
	err := retry.Do(ctx, TaskType, h.policy, h.logger, func(ctx context.Context) error {
		result, err := h.append(ctx, input)
		if err != nil {
			return err
		}
		output = result
		return nil
	})

	metrics.TaskDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TaskFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}

	metrics.TaskCompleted.WithLabelValues(TaskType).Inc()
	metrics.RowsAppended.Inc()
	h.logger.Info("row appended", map[string]interface{}{
		"worksheet":    h.config.Worksheet,
		"updatedRange": output.UpdatedRange,
	})
	return output, nil
}

func (h *Handler) append(ctx context.Context, input *Input) (*Output, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	resp, err := h.appender.Append(callCtx, h.config.SpreadsheetID, h.config.Worksheet, input.Row(h.now()))
	if err != nil {
		return nil, apperrors.ClassifyStorageError(err, h.config.Worksheet)
	}

	output := &Output{RowsAppended: 1}
	if resp != nil && resp.Updates != nil {
		output.RowsAppended = resp.Updates.UpdatedRows
		output.UpdatedRange = resp.Updates.UpdatedRange
	}
	return output, nil
}
