// internal/tasks/generate-prompt/handler.go
package generateprompt

import (
	"context"
	"time"

	"google.golang.org/genai"

	apperrors "prompt-queue-bot/internal/common/errors"
	"prompt-queue-bot/internal/common/logger"
	"prompt-queue-bot/internal/common/metrics"
	"prompt-queue-bot/internal/common/retry"
)

const (
	TaskType = "generate-prompt"
)

// promptInstruction is the fixed system instruction. The output format is
// strict because the text goes straight into a spreadsheet cell consumed by
// an image-generation pipeline: raw text only, no markdown, no quotes.
const promptInstruction = `You are an expert AI Art Director.
Your task is to generate EXACTLY ONE creative image prompt.

STYLE GUIDELINES:
1. Structure: a descriptive main subject followed by comma-separated artistic keywords (lighting, style, vibe).
2. Creativity: choose a random theme (Cyberpunk, Fantasy, Horror, Realistic, or Abstract).
3. Format: output ONLY the raw text. Do not use quotes (""), do not use Markdown (**), do not add introductory text.

EXAMPLES (follow this pattern):
- A rice field terrace in Bali but in a floating island setting, waterfalls falling into the void, fantasy art style, vibrant colors.
- A silhouette of a woman standing at the end of a dark hallway, glowing eyes in the shadow, holding a lantern, horror mystery vibe, cinematic lighting.
- Isometric view of a dream gaming room, RGB lighting, shelves full of robot figures, cozy atmosphere, digital art, 4k render.`

const userTask = "Generate 1 new, unique image prompt now."

// contentGenerator is the slice of the Gemini client the handler needs.
// *genai.Models satisfies it; tests inject a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Handler struct {
	config *Config
	models contentGenerator
	policy retry.Policy
	logger logger.Logger
}

func NewHandler(config *Config, client *genai.Client, policy retry.Policy, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		models: client.Models,
		policy: policy,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute performs one generation with the local retry budget. The returned
// prompt is the raw API text; a transient failure surviving every attempt
// or a non-retryable failure comes back as a classified StandardError.
func (h *Handler) Execute(ctx context.Context) (*Output, error) {
	start := time.Now()

	var output *Output
	err := retry.Do(ctx, TaskType, h.policy, h.logger, func(ctx context.Context) error {
		result, err := h.generate(ctx)
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
	h.logger.Info("prompt generated", map[string]interface{}{
		"model":   h.config.Model,
		"preview": preview(output.Prompt),
	})
	return output, nil
}

func (h *Handler) generate(ctx context.Context) (*Output, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	temperature := float32(h.config.Temperature)
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(promptInstruction, genai.RoleUser),
	}
	if h.config.Temperature > 0 {
		genConfig.Temperature = &temperature
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userTask, genai.RoleUser),
	}

	resp, err := h.models.GenerateContent(callCtx, h.config.Model, contents, genConfig)
	if err != nil {
		return nil, apperrors.ClassifyGenerationError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, apperrors.NewGenerationBlockedError()
	}

	return &Output{Prompt: resp.Text()}, nil
}

// preview truncates the prompt for log lines; full text only ever goes to
// the spreadsheet.
func preview(text string) string {
	const max = 30
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
