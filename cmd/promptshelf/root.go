package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	envFile      string
)

var rootCmd = &cobra.Command{
	Use:   "promptshelf",
	Short: "Personal prompt library with an AI-assisted prompt builder",
	Long: `promptshelf keeps a personal library of AI prompts.

It stores saved prompts, favorites, recent history and user settings,
composes generation requests from a catalog of categories, tones and
sizes, and can export single prompts or the whole library.

Run "promptshelf serve" for the HTTP API, then use "promptshelf api"
to talk to it. The local commands (init, export, import, clear) work
on the data directory directly.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.promptshelf/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "promptshelf home directory (default: ~/.promptshelf)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env-file", ".env", "dotenv file loaded before the config (missing file is ignored)",
	)

	// Set output format and environment before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
		loadEnvFile(envFile)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads KEY=value pairs without overriding variables already set.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Debug("no env file loaded", "path", path, "error", err)
	}
}
