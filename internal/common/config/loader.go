// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SHEETS_SPREADSHEET_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from a handful of likely locations so the binary
// behaves the same when run from the repo root, cmd/, or a test directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in yaml values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets directly from the environment when the
// yaml left them empty. Secrets only ever flow env -> Config; they are never
// logged or echoed back in validation errors.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		if val := os.Getenv("GOOGLE_API_KEY"); val != "" {
			cfg.GenAI.APIKey = val
		}
	}
	if cfg.Sheets.CredentialsFile == "" {
		if val := os.Getenv("SHEETS_CREDENTIALS_FILE"); val != "" {
			cfg.Sheets.CredentialsFile = val
		}
	}
	if cfg.Sheets.SpreadsheetID == "" {
		if val := os.Getenv("SHEETS_SPREADSHEET_ID"); val != "" {
			cfg.Sheets.SpreadsheetID = val
		}
	}
	if cfg.Sheets.Worksheet == "" {
		if val := os.Getenv("SHEETS_WORKSHEET"); val != "" {
			cfg.Sheets.Worksheet = val
		}
	}
	if cfg.GenAI.Model == "" {
		if val := os.Getenv("GENAI_MODEL"); val != "" {
			cfg.GenAI.Model = val
		}
	}
	if cfg.Metrics.Addr == "" {
		if val := os.Getenv("METRICS_ADDR"); val != "" {
			cfg.Metrics.Addr = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "prompt-queue-bot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-2.5-flash"
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 60000
	}

	if cfg.Sheets.Worksheet == "" {
		cfg.Sheets.Worksheet = "Process"
	}
	if cfg.Sheets.Timeout == 0 {
		cfg.Sheets.Timeout = 30000
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.Delay == 0 {
		cfg.Retry.Delay = 5000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.GenAI.APIKey == "" {
		return fmt.Errorf("genai.api_key is required (set GOOGLE_API_KEY)")
	}
	if cfg.Sheets.CredentialsFile == "" {
		return fmt.Errorf("sheets.credentials_file is required (set SHEETS_CREDENTIALS_FILE)")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required (set SHEETS_SPREADSHEET_ID)")
	}

	return nil
}
