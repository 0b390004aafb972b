package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmdbapi",
		Short: "The Movie Database client",
		Long: "tmdbapi looks up movies, people and series on The Movie Database,\n" +
			"manages TMDb lists and serves lookups over Telegram and MCP.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/tmdbapi.yaml", "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newMovieCmd(),
		newPersonCmd(),
		newTVCmd(),
		newSearchCmd(),
		newAuthCmd(),
		newListCmd(),
		newBrowseCmd(),
		newBotCmd(),
		newMCPServeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tmdbapi v%s\n", version)
		},
	}
}
