package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	errorMsg        = "An error occurred while processing your request. Please try again."
	notFoundMsg     = "Nothing found with that ID."
	resetMsg        = "Session reset."
	welcomeMsg      = "Welcome! Send a movie title to search, or use /movie, /person, /tv and /similar."
	noSimilarMsg    = "Look up a movie first, or use /similar <movie id>."

	kindMovie   = "movie"
	kindPerson  = "person"
	kindTV      = "tv"
	kindSimilar = "similar"

	maxButtonLabel = 30   // max characters in inline keyboard button label
	maxCaptionLen  = 1024 // Telegram photo caption limit
	posterSize     = "w500"
)

// choice is one selectable search result.
type choice struct {
	id    int
	label string
}

// parseCommand splits "/cmd@bot args" into its command and arguments.
// ok is false for text that is not a command.
func parseCommand(text string) (cmd, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	cmd, args, isCmd := parseCommand(text)
	if !isCmd {
		b.typing(chatID)
		b.searchMovies(ctx, chatID, text)
		return
	}

	switch cmd {
	case "start", "help":
		b.sendText(chatID, welcomeMsg)
	case "reset":
		b.sessions.reset(userID)
		b.sendText(chatID, resetMsg)
	case kindMovie, kindPerson, kindTV:
		if args == "" {
			b.sendText(chatID, fmt.Sprintf("Usage: /%s <title or id>", cmd))
			return
		}
		b.typing(chatID)
		if id, err := strconv.Atoi(args); err == nil && id > 0 {
			b.show(ctx, userID, chatID, cmd, id)
			return
		}
		b.search(ctx, chatID, cmd, args)
	case kindSimilar:
		id := b.sessions.lastMovie(userID)
		if args != "" {
			id, _ = strconv.Atoi(args)
		}
		if id <= 0 {
			b.sendText(chatID, noSimilarMsg)
			return
		}
		b.typing(chatID)
		b.showSimilar(ctx, chatID, id)
	default:
		b.sendText(chatID, "Unknown command. "+welcomeMsg)
	}
}

// handleCallback processes inline keyboard callback queries of the form
// "<kind>:<id>".
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	b.logger.Debug("received callback",
		slog.Int64("user_id", userID),
		slog.String("data", cq.Data),
	)

	if _, err := b.out.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Debug("failed to answer callback", slog.String("error", err.Error()))
	}

	if !b.sessions.isAllowed(userID) {
		return
	}

	kind, rawID, found := strings.Cut(cq.Data, ":")
	id, err := strconv.Atoi(rawID)
	if !found || err != nil || id <= 0 {
		b.logger.Warn("malformed callback data", slog.String("data", cq.Data))
		return
	}

	b.typing(chatID)
	if kind == kindSimilar {
		b.showSimilar(ctx, chatID, id)
		return
	}
	b.show(ctx, userID, chatID, kind, id)
}

// search runs a title search of the given kind and replies with a result list.
func (b *Bot) search(ctx context.Context, chatID int64, kind, query string) {
	opts := tmdb.SearchOptions{Language: b.language}
	switch kind {
	case kindMovie:
		b.searchMovies(ctx, chatID, query)
	case kindPerson:
		res, err := b.meta.SearchPeople(ctx, query, opts)
		if err != nil {
			b.replyError(chatID, "search people", err)
			return
		}
		choices := make([]choice, 0, len(res.Results))
		for _, p := range res.Results {
			choices = append(choices, choice{id: p.ID, label: p.Name})
		}
		b.sendMarkdown(chatID, FormatPersonList("People matching "+query, res.Results), buildSelectionKeyboard(kindPerson, choices))
	case kindTV:
		res, err := b.meta.SearchTV(ctx, query, opts)
		if err != nil {
			b.replyError(chatID, "search tv", err)
			return
		}
		choices := make([]choice, 0, len(res.Results))
		for _, s := range res.Results {
			choices = append(choices, choice{id: s.ID, label: withYear(s.Name, s.Year())})
		}
		b.sendMarkdown(chatID, FormatTVList("Series matching "+query, res.Results), buildSelectionKeyboard(kindTV, choices))
	}
}

func (b *Bot) searchMovies(ctx context.Context, chatID int64, query string) {
	res, err := b.meta.SearchMovies(ctx, query, tmdb.SearchOptions{Language: b.language})
	if err != nil {
		b.replyError(chatID, "search movies", err)
		return
	}
	b.sendMarkdown(chatID, FormatMovieList("Movies matching "+query, res.Results), movieKeyboard(kindMovie, res.Results))
}

// show replies with the details card of a movie, person or series.
func (b *Bot) show(ctx context.Context, userID, chatID int64, kind string, id int) {
	switch kind {
	case kindMovie:
		movie, err := b.meta.GetMovie(ctx, id, b.language, "credits")
		if err != nil {
			b.replyError(chatID, "get movie", err)
			return
		}
		b.sessions.rememberMovie(userID, movie.ID)
		similar := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Similar movies", fmt.Sprintf("%s:%d", kindSimilar, movie.ID)),
		))
		b.sendCard(chatID, movie.PosterPath, FormatMovieDetails(movie), &similar)
	case kindPerson:
		person, err := b.meta.GetPerson(ctx, id)
		if err != nil {
			b.replyError(chatID, "get person", err)
			return
		}
		b.sendCard(chatID, person.ProfilePath, FormatPerson(person), nil)
	case kindTV:
		series, err := b.meta.GetTV(ctx, id, b.language)
		if err != nil {
			b.replyError(chatID, "get tv", err)
			return
		}
		b.sendCard(chatID, series.PosterPath, FormatTV(series), nil)
	default:
		b.logger.Warn("unknown lookup kind", slog.String("kind", kind))
	}
}

func (b *Bot) showSimilar(ctx context.Context, chatID int64, movieID int) {
	res, err := b.meta.GetRecommendations(ctx, movieID, b.language, 1)
	if err != nil {
		b.replyError(chatID, "get recommendations", err)
		return
	}
	b.sendMarkdown(chatID, FormatMovieList("You might also like", res.Results), movieKeyboard(kindMovie, res.Results))
}

// replyError logs err and sends the user a short explanation.
func (b *Bot) replyError(chatID int64, op string, err error) {
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		b.sendText(chatID, notFoundMsg)
		return
	}
	b.logger.Error("tmdb request failed",
		slog.String("op", op),
		slog.Int64("chat_id", chatID),
		slog.String("error", err.Error()),
	)
	b.sendText(chatID, errorMsg)
}

// sendCard sends a details card, as a poster photo when one exists and the
// text fits in a caption.
func (b *Bot) sendCard(chatID int64, imagePath, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	url := tmdb.PosterURL(imagePath, posterSize)
	if url == "" || len(text) > maxCaptionLen {
		b.sendMarkdown(chatID, text, kb)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = text
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		photo.ReplyMarkup = kb
	}
	if _, err := b.out.Send(photo); err != nil {
		b.logger.Debug("failed to send poster",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		b.sendMarkdown(chatID, text, kb)
	}
}

// sendMarkdown sends a MarkdownV2 message, retrying as plain text when
// Telegram rejects the markup.
func (b *Bot) sendMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		plain := tgbotapi.NewMessage(chatID, strings.ReplaceAll(text, `\`, ""))
		if kb != nil {
			plain.ReplyMarkup = kb
		}
		if _, err := b.out.Send(plain); err != nil {
			b.logger.Error("failed to send message",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bot) typing(chatID int64) {
	if _, err := b.out.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("failed to send typing action", slog.String("error", err.Error()))
	}
}

func movieKeyboard(kind string, movies []tmdb.Movie) *tgbotapi.InlineKeyboardMarkup {
	choices := make([]choice, 0, len(movies))
	for _, m := range movies {
		choices = append(choices, choice{id: m.ID, label: withYear(m.Title, m.Year())})
	}
	return buildSelectionKeyboard(kind, choices)
}

// buildSelectionKeyboard builds one button per result, numbered like the
// reply text. Returns nil when there is nothing to select.
func buildSelectionKeyboard(kind string, choices []choice) *tgbotapi.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}

	// Rows of 1 button each (cleaner on mobile).
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range choices[:min(len(choices), maxListItems)] {
		label := truncate(c.label, maxButtonLabel)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d. %s", i+1, label),
				fmt.Sprintf("%s:%d", kind, c.id),
			),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
