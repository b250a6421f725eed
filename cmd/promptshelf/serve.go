package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/config"
	"github.com/jackzampolin/promptshelf/internal/generate"
	"github.com/jackzampolin/promptshelf/internal/home"
	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/server"
	"github.com/jackzampolin/promptshelf/internal/storage"
)

var (
	serveHost      string
	servePort      string
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the promptshelf server",
	Long: `Start the promptshelf HTTP server.

The server opens the prompt library in the home data directory and keeps
it open until shutdown (Ctrl+C or SIGTERM). Config file changes to the
log level and generation rate limit apply without a restart.

The server provides:
  - /health      - Basic server health check
  - /ready       - Readiness check (includes the prompt library)
  - /api/...     - Prompt, favorite, settings and generation endpoints
  - /metrics     - Prometheus metrics
  - /swagger/    - API documentation

Examples:
  promptshelf serve                    # Start on the configured port (default 8080)
  promptshelf serve --port 3000        # Start on custom port
  promptshelf serve --host 0.0.0.0     # Bind to all interfaces
  promptshelf serve --ephemeral        # Keep the library in memory only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		mgr, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		level := new(slog.LevelVar)
		if l, err := config.ParseLevel(cfg.Logging.Level); err == nil {
			level.Set(l)
		}
		logger := newLogger(os.Stdout, cfg.Logging.Format, level)
		slog.SetDefault(logger)
		mgr.SetLogger(logger)
		mgr.OnChange(func(c *config.Config) {
			l, err := config.ParseLevel(c.Logging.Level)
			if err != nil {
				logger.Warn("ignoring invalid log level", "level", c.Logging.Level)
				return
			}
			level.Set(l)
		})

		m := metrics.New()

		var backend storage.Backend
		if serveEphemeral {
			logger.Warn("ephemeral mode: nothing will be written to disk")
			backend = storage.NewMemoryBackend()
		} else {
			fb, err := storage.NewFileBackend(h.DataPath())
			if err != nil {
				return err
			}
			backend = fb
		}

		lib, err := openLibrary(backend, cfg, logger, m)
		if err != nil {
			return err
		}
		defer lib.Close()

		gen, err := generate.New(generate.Config{
			Provider: cfg.Generation.Provider,
			BaseURL:  cfg.Generation.BaseURL,
			Timeout:  cfg.Generation.Timeout(),
			Logger:   logger,
			Metrics:  m,
		})
		if err != nil {
			return err
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Library:       lib,
			Generator:     gen,
			Home:          h,
			ConfigManager: mgr,
			Metrics:       m,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		mgr.WatchConfig()
		logger.Info("starting promptshelf",
			"home", h.Path(),
			"config", mgr.ConfigFile(),
			"provider", gen.Name())

		// Start server (blocks until shutdown)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	},
}

// newLogger builds the process logger from the logging config.
func newLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "Keep the library in memory instead of the data directory")

	rootCmd.AddCommand(serveCmd)
}
