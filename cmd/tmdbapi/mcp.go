package main

import (
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/config"
	mcpserver "github.com/vadimtrunov/tmdbapi/internal/mcp"
)

// newMCPServeCmd returns the "mcp-serve" subcommand.
// It starts an MCP server over stdin/stdout exposing TMDb lookups as tools.
// Logs go to stderr since stdout carries the protocol.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Start an MCP server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel, cmd.ErrOrStderr())
			client := newClient(cfg, logger)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			srv := mcpserver.NewServer(mcpserver.Deps{
				Metadata: client,
				Language: cfg.TMDb.Language,
			}, logger)
			return srv.ServeStdio(ctx)
		},
	}
}
