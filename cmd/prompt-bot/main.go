// cmd/prompt-bot/main.go
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/genai"

	"prompt-queue-bot/internal/common/config"
	"prompt-queue-bot/internal/common/logger"
	"prompt-queue-bot/internal/common/observability"
	"prompt-queue-bot/internal/common/retry"
	"prompt-queue-bot/internal/flow"
	appendrow "prompt-queue-bot/internal/tasks/append-row"
	generateprompt "prompt-queue-bot/internal/tasks/generate-prompt"
)

func main() {
	os.Exit(run())
}

// run wires the pipeline and maps the terminal state to the process exit
// code: 0 on Completed, 1 on Failed. The scheduler (cron / CI timer) owns
// the timing; one invocation is one prompt.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		defer bootLog.Sync()
		bootLog.Error("config load failed", zap.Error(err))
		return 1
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting prompt queue bot...",
		zap.String("model", cfg.GenAI.Model),
		zap.String("worksheet", cfg.Sheets.Worksheet),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// Optional Prometheus endpoint for runs supervised by an agent that
	// scrapes mid-flight. Most cron invocations leave this disabled.
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx := context.Background()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GenAI.APIKey,
	})
	if err != nil {
		// Client construction fails before any network call; the error can
		// not contain the key but the message is kept generic regardless.
		zapLog.Error("failed to create GenAI client")
		return 1
	}

	sheetsService, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.Sheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		zapLog.Error("failed to create Sheets service")
		return 1
	}

	policy := retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Delay:       config.GetDuration(cfg.Retry.Delay),
	}

	generator := generateprompt.NewHandler(generateprompt.ConfigFromApp(cfg), genaiClient, policy, log)
	writer := appendrow.NewHandler(appendrow.ConfigFromApp(cfg), sheetsService, policy, log)

	controller := flow.NewController(generator, writer, log, obs)

	result, err := controller.Run(ctx)
	if err != nil {
		return 1
	}

	zapLog.Info("Done",
		zap.String("state", string(result.State)),
		zap.Int64("rowsAppended", result.RowsAppended),
	)
	return 0
}
