package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/vadimtrunov/tmdbapi/internal/config"
)

// newConfigCmd returns the "config" subcommand group for configuration management.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(newConfigValidateCmd(), newConfigShowCmd())
	return cmd
}

// newConfigValidateCmd returns the "config validate" subcommand that checks config file validity.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("✓ Configuration is valid"))
			return nil
		},
	}
}

// newConfigShowCmd prints the effective configuration, defaults and
// environment overrides applied, with secrets masked.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(masked(*cfg))
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// masked returns a copy of cfg with credentials replaced.
func masked(cfg config.Config) config.Config {
	cfg.TMDb.APIKey = mask(cfg.TMDb.APIKey)
	cfg.Transport.Proxy.Password = mask(cfg.Transport.Proxy.Password)
	if cfg.Telegram != nil {
		tg := *cfg.Telegram
		tg.BotToken = mask(tg.BotToken)
		cfg.Telegram = &tg
	}
	return cfg
}

// mask keeps the last four characters of long secrets.
func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}
