package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/config"
	"github.com/jackzampolin/promptshelf/internal/home"
	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/storage"
	"github.com/jackzampolin/promptshelf/internal/transfer"
)

var (
	exportFile   string
	importFile   string
	clearConfirm bool
)

// openLibrary opens the library over backend. m may be nil.
func openLibrary(backend storage.Backend, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*prompts.Library, error) {
	store := storage.New(backend, storage.WithLogger(logger), storage.WithMetrics(m))
	return prompts.Open(store,
		prompts.WithLogger(logger),
		prompts.WithMetrics(m),
		prompts.WithHistoryLimit(cfg.Storage.HistoryLimit),
		prompts.WithCascadeFavorites(cfg.Storage.CascadeFavorites),
	)
}

// withLocalLibrary opens the library for a one-shot command and closes it
// afterwards.
func withLocalLibrary(fn func(h *home.Dir, lib *prompts.Library) error) error {
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
	logger := newLogger(os.Stderr, "text", slog.LevelWarn)

	backend, err := storage.NewFileBackend(h.DataPath())
	if err != nil {
		return err
	}
	lib, err := openLibrary(backend, mgr.Get(), logger, nil)
	if err != nil {
		return err
	}
	defer lib.Close()
	return fn(h, lib)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory and a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() {
			fmt.Printf("Config already exists at %s\n", h.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Initialized promptshelf home at %s\n", h.Path())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole library to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLocalLibrary(func(h *home.Dir, lib *prompts.Library) error {
			path := exportFile
			if path == "" {
				path = h.DefaultExportPath()
			}
			if err := transfer.WriteFile(path, transfer.Export(lib, time.Now())); err != nil {
				return err
			}
			fmt.Printf("Exported library to %s\n", path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace library collections from an export file",
	Long: `Replace library collections from an export file.

Each collection present in the file replaces the stored one completely.
Collections missing from the file are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := transfer.ReadFile(importFile)
		if err != nil {
			return err
		}
		return withLocalLibrary(func(h *home.Dir, lib *prompts.Library) error {
			if !transfer.Import(lib, doc) {
				return fmt.Errorf("import was only partially written")
			}
			fmt.Printf("Imported %v from %s\n", doc.Present(), importFile)
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every prompt, favorite, history entry and setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearConfirm {
			return fmt.Errorf("refusing to clear without --yes")
		}
		return withLocalLibrary(func(h *home.Dir, lib *prompts.Library) error {
			if !lib.Clear() {
				return fmt.Errorf("clear was only partially written")
			}
			fmt.Println("Library cleared")
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output path (default: <home>/exports/personal-prompt-generator-data.json)")
	importCmd.Flags().StringVar(&importFile, "file", "", "export file to import")
	importCmd.MarkFlagRequired("file")
	clearCmd.Flags().BoolVar(&clearConfirm, "yes", false, "confirm deleting all data")

	rootCmd.AddCommand(initCmd, exportCmd, importCmd, clearCmd)
}
