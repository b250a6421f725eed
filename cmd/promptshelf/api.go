package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/server/endpoints"
)

var (
	serverURL   string
	waitTimeout time.Duration
)

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the server answers /health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(getServerURL())
		if err := client.WaitHealthy(cmd.Context(), waitTimeout, 500*time.Millisecond); err != nil {
			return err
		}
		fmt.Printf("Server at %s is healthy\n", client.BaseURL())
		return nil
	},
}

func init() {
	registry := api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		registry.Register(ep)
	}
	apiCmd := registry.BuildCommands(getServerURL)

	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 30*time.Second, "How long to wait")
	apiCmd.AddCommand(waitCmd)

	rootCmd.AddCommand(apiCmd)
}
