// internal/tasks/append-row/config.go
package appendrow

import (
	"time"

	"prompt-queue-bot/internal/common/config"
)

type Config struct {
	SpreadsheetID string
	Worksheet     string
	Timeout       time.Duration
}

// ConfigFromApp derives the task configuration from the resolved app config.
func ConfigFromApp(cfg *config.Config) *Config {
	return &Config{
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		Worksheet:     cfg.Sheets.Worksheet,
		Timeout:       config.GetDuration(cfg.Sheets.Timeout),
	}
}
