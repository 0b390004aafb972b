package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/config"
	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
	"github.com/vadimtrunov/tmdbapi/internal/transport"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleUser  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true) // cyan bold
	styleTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true) // white bold
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// newClient builds the TMDb client and its transport from cfg.
func newClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	tr := transport.New(cfg.TransportSettings(), logger)

	opts := []tmdb.Option{tmdb.WithLanguage(cfg.TMDb.Language)}
	if cfg.TMDb.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.TMDb.BaseURL))
		logger.Debug("using custom TMDb base URL", slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)))
	}
	if p := cfg.Transport.Proxy; p.Host != "" {
		scheme := tr.ProxyScheme()
		if scheme == "" {
			scheme = transport.ProxySchemeHTTP
		}
		logger.Info("routing requests through proxy",
			slog.String("scheme", scheme),
			slog.String("host", p.Host),
			slog.String("port", p.Port),
		)
	}
	return tmdb.New(cfg.TMDb.APIKey, tr, logger, opts...)
}

// setup loads configuration and returns a logger writing to the command's
// stderr and a ready client. Stdout is left to command output.
func setup(cmd *cobra.Command) (*config.Config, *tmdb.Client, *slog.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := config.SetupLogger(cfg.App.LogLevel, cmd.ErrOrStderr())
	return cfg, newClient(cfg, logger), logger, nil
}

// signalContext derives a context canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// parseID parses a positive TMDb identifier argument.
func parseID(kind, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q: must be a positive number", kind, raw)
	}
	return id, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
