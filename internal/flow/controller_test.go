// internal/flow/controller_test.go
package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "prompt-queue-bot/internal/common/errors"
	"prompt-queue-bot/internal/common/logger"
	appendrow "prompt-queue-bot/internal/tasks/append-row"
	generateprompt "prompt-queue-bot/internal/tasks/generate-prompt"
)

// ==========================
// Test Helper Fakes
// ==========================

type fakeGenerator struct {
	prompt string
	err    error
	calls  int
}

func (f *fakeGenerator) Execute(ctx context.Context) (*generateprompt.Output, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &generateprompt.Output{Prompt: f.prompt}, nil
}

type fakeWriter struct {
	err    error
	calls  int
	inputs []*appendrow.Input
}

func (f *fakeWriter) Execute(ctx context.Context, input *appendrow.Input) (*appendrow.Output, error) {
	f.calls++
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &appendrow.Output{RowsAppended: 1, UpdatedRange: "Process!A5:D5"}, nil
}

func newTestController(gen *fakeGenerator, writer *fakeWriter) *Controller {
	return NewController(gen, writer, logger.NewNoOpLogger(), nil)
}

// ==========================
// Core Flow Tests
// ==========================

func TestController_Run_HappyPath(t *testing.T) {
	gen := &fakeGenerator{prompt: "A futuristic cyberpunk street vendor serving neon noodles"}
	writer := &fakeWriter{}

	result, err := newTestController(gen, writer).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, int64(1), result.RowsAppended)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, writer.calls)

	assert.Equal(t, []State{
		StateIdle, StateGenerating, StateValidating, StateStoring, StateCompleted,
	}, result.Transitions)

	require.Len(t, writer.inputs, 1)
	assert.Equal(t, "A futuristic cyberpunk street vendor serving neon noodles", writer.inputs[0].Prompt)
	assert.Equal(t, result.RunID, writer.inputs[0].RunID)
	assert.NotEmpty(t, result.RunID)
}

func TestController_Run_EmptyGeneration(t *testing.T) {
	gen := &fakeGenerator{prompt: ""}
	writer := &fakeWriter{}

	result, err := newTestController(gen, writer).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmptyOutput, apperrors.CodeOf(err))
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 0, writer.calls, "append must never be invoked for empty output")
	assert.Equal(t, []State{
		StateIdle, StateGenerating, StateValidating, StateFailed,
	}, result.Transitions)
}

func TestController_Run_WhitespaceGeneration(t *testing.T) {
	gen := &fakeGenerator{prompt: "   \n\t "}
	writer := &fakeWriter{}

	_, err := newTestController(gen, writer).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmptyOutput, apperrors.CodeOf(err))
	assert.Equal(t, 0, writer.calls)
}

func TestController_Run_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: apperrors.NewGenerationQuotaError()}
	writer := &fakeWriter{}

	result, err := newTestController(gen, writer).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGenerationQuotaExceeded, apperrors.CodeOf(err))
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 0, writer.calls, "a generation failure must never trigger a storage write")
	assert.Equal(t, []State{
		StateIdle, StateGenerating, StateFailed,
	}, result.Transitions)
}

func TestController_Run_StorageFailure(t *testing.T) {
	gen := &fakeGenerator{prompt: "misty harbor at dawn, watercolor"}
	writer := &fakeWriter{err: apperrors.NewStoragePermissionDeniedError()}

	result, err := newTestController(gen, writer).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoragePermissionDenied, apperrors.CodeOf(err))
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 1, gen.calls, "a storage failure must not re-run generation")
	assert.Equal(t, []State{
		StateIdle, StateGenerating, StateValidating, StateStoring, StateFailed,
	}, result.Transitions)
}

func TestController_Run_TrimsBeforeStoring(t *testing.T) {
	gen := &fakeGenerator{prompt: "  ancient library inside a whale, surreal art  "}
	writer := &fakeWriter{}

	result, err := newTestController(gen, writer).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ancient library inside a whale, surreal art", result.Prompt)
	require.Len(t, writer.inputs, 1)
	assert.Equal(t, "ancient library inside a whale, surreal art", writer.inputs[0].Prompt)
}
