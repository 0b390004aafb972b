package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/config"
	"github.com/vadimtrunov/tmdbapi/internal/core"
	"github.com/vadimtrunov/tmdbapi/internal/frontend/telegram"
)

const stopTimeout = 5 * time.Second

// newBotCmd returns the "bot" subcommand for running the Telegram bot.
func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram bot",
		Long:  "Start the Telegram bot answering movie, person and series lookups.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if cfg.Telegram == nil {
				return errors.New(
					"telegram configuration is required: set telegram.bot_token in config or TMDBAPI_TELEGRAM_BOT_TOKEN env var",
				)
			}

			logger := config.SetupLogger(cfg.App.LogLevel, nil)
			client := newClient(cfg, logger)

			bot, err := telegram.New(
				cfg.Telegram.BotToken,
				cfg.Telegram.AllowedUserIDs,
				client,
				cfg.TMDb.Language,
				logger,
			)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			return runFrontend(ctx, bot, logger)
		},
	}
}

// runFrontend runs f until ctx is canceled, then stops it.
func runFrontend(ctx context.Context, f core.Frontend, logger *slog.Logger) error {
	logger.Info("frontend starting", slog.String("frontend", f.Name()))
	runErr := f.Start(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := f.Stop(stopCtx); err != nil {
		logger.Error("frontend stop failed",
			slog.String("frontend", f.Name()),
			slog.String("error", err.Error()),
		)
	}
	return runErr
}
