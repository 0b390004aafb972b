package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/tmdbapi/internal/core"
)

// sender is the subset of *tgbotapi.BotAPI used to reply.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot is the Telegram frontend for TMDb lookups.
// It implements the core.Frontend interface.
type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	meta     core.MetadataProvider
	language string
	sessions *sessionManager
	logger   *slog.Logger
}

var _ core.Frontend = (*Bot)(nil)

// New creates a new Telegram Bot.
func New(token string, allowedUserIDs []int64, meta core.MetadataProvider, language string, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b := newBot(api, meta, allowedUserIDs, logger)
	b.api = api
	b.language = language
	return b, nil
}

func newBot(out sender, meta core.MetadataProvider, allowedUserIDs []int64, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		out:      out,
		meta:     meta,
		sessions: newSessionManager(allowedUserIDs),
		logger:   logger,
	}
}

// Name returns the frontend name.
func (b *Bot) Name() string { return "telegram" }

// Start starts the long-polling loop. It blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("telegram bot is not connected")
	}
	b.logger.Info("telegram bot started",
		slog.String("username", b.api.Self.UserName),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// Stop stops the bot (no-op, Start returns when ctx is canceled).
func (b *Bot) Stop(_ context.Context) error {
	return nil
}

// SendMessage sends a text message to a Telegram user.
func (b *Bot) SendMessage(_ context.Context, userID, message string) error {
	var chatID int64
	if _, err := fmt.Sscanf(userID, "%d", &chatID); err != nil {
		return fmt.Errorf("invalid user ID %q: %w", userID, err)
	}

	msg := tgbotapi.NewMessage(chatID, message)
	if _, err := b.out.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// handleUpdate dispatches an incoming Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}
