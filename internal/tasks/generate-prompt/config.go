// internal/tasks/generate-prompt/config.go
package generateprompt

import (
	"time"

	"prompt-queue-bot/internal/common/config"
)

type Config struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// ConfigFromApp derives the task configuration from the resolved app config.
func ConfigFromApp(cfg *config.Config) *Config {
	return &Config{
		Model:       cfg.GenAI.Model,
		Temperature: cfg.GenAI.Temperature,
		Timeout:     config.GetDuration(cfg.GenAI.Timeout),
	}
}
