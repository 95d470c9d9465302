// internal/flow/controller.go
// Package flow sequences the generate -> validate -> store pipeline.
package flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "prompt-queue-bot/internal/common/errors"
	"prompt-queue-bot/internal/common/logger"
	"prompt-queue-bot/internal/common/metrics"
	"prompt-queue-bot/internal/common/observability"
	appendrow "prompt-queue-bot/internal/tasks/append-row"
	generateprompt "prompt-queue-bot/internal/tasks/generate-prompt"
)

// State is one node of the invocation state machine.
type State string

const (
	StateIdle       State = "Idle"
	StateGenerating State = "Generating"
	StateValidating State = "Validating"
	StateStoring    State = "Storing"
	StateCompleted  State = "Completed"
	StateFailed     State = "Failed"
)

// PromptGenerator produces one raw prompt per invocation.
type PromptGenerator interface {
	Execute(ctx context.Context) (*generateprompt.Output, error)
}

// QueueWriter appends one validated prompt row per invocation.
type QueueWriter interface {
	Execute(ctx context.Context, input *appendrow.Input) (*appendrow.Output, error)
}

// Result describes a finished invocation.
type Result struct {
	State        State
	RunID        string
	Prompt       string
	RowsAppended int64
	Transitions  []State
}

type Controller struct {
	generator PromptGenerator
	writer    QueueWriter
	logger    logger.Logger
	obs       *observability.Observability
}

func NewController(generator PromptGenerator, writer QueueWriter, log logger.Logger, obs *observability.Observability) *Controller {
	return &Controller{
		generator: generator,
		writer:    writer,
		logger: log.With(map[string]interface{}{
			"component": "flow-controller",
		}),
		obs: obs,
	}
}

// Run drives one invocation through the state machine. Failed is terminal
// from every active state: a generation failure never reaches the writer,
// and a storage failure never re-runs generation; each task's retry budget
// is local to itself. The returned error is the classified StandardError
// that caused the Failed state.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		State:       StateIdle,
		RunID:       uuid.NewString(),
		Transitions: []State{StateIdle},
	}
	log := c.logger.With(map[string]interface{}{
		"runId": result.RunID,
	})

	// Idle --start--> Generating
	c.transition(result, log, StateGenerating)
	generated, err := c.generator.Execute(ctx)
	if err != nil {
		return c.fail(ctx, result, log, start, err)
	}

	// Generating --success--> Validating
	c.transition(result, log, StateValidating)
	validated, err := ValidatePrompt(generated.Prompt)
	if err != nil {
		return c.fail(ctx, result, log, start, err)
	}
	result.Prompt = validated

	// Validating --non-empty--> Storing
	c.transition(result, log, StateStoring)
	written, err := c.writer.Execute(ctx, &appendrow.Input{
		Prompt: validated,
		RunID:  result.RunID,
	})
	if err != nil {
		return c.fail(ctx, result, log, start, err)
	}
	result.RowsAppended = written.RowsAppended

	// Storing --success--> Completed
	c.transition(result, log, StateCompleted)
	c.record(ctx, "completed", start)
	log.Info("flow completed", map[string]interface{}{
		"rowsAppended": result.RowsAppended,
		"duration":     time.Since(start).String(),
	})
	return result, nil
}

func (c *Controller) transition(result *Result, log logger.Logger, next State) {
	log.Debug("state transition", map[string]interface{}{
		"from": string(result.State),
		"to":   string(next),
	})
	result.State = next
	result.Transitions = append(result.Transitions, next)
}

func (c *Controller) fail(ctx context.Context, result *Result, log logger.Logger, start time.Time, err error) (*Result, error) {
	failedFrom := result.State
	c.transition(result, log, StateFailed)
	c.record(ctx, "failed", start)
	log.Error("flow halted", map[string]interface{}{
		"failedFrom": string(failedFrom),
		"errorCode":  string(apperrors.CodeOf(err)),
		"error":      err.Error(),
	})
	return result, err
}

func (c *Controller) record(ctx context.Context, outcome string, start time.Time) {
	metrics.FlowRuns.WithLabelValues(outcome).Inc()
	if c.obs != nil {
		c.obs.RecordFlowRun(ctx, outcome)
		c.obs.RecordFlowDuration(ctx, time.Since(start), outcome)
	}
}
