// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/promptshelf/internal/catalog"
	"github.com/jackzampolin/promptshelf/internal/config"
	"github.com/jackzampolin/promptshelf/internal/generate"
	"github.com/jackzampolin/promptshelf/internal/home"
	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/prompts"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Library   *prompts.Library
	Generator generate.Generator
	Catalog   *catalog.Catalog
	Home      *home.Dir
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	// Config returns the live configuration; it may be nil in tests.
	Config func() *config.Config
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LibraryFrom extracts the prompt library from context.
func LibraryFrom(ctx context.Context) *prompts.Library {
	if s := ServicesFrom(ctx); s != nil {
		return s.Library
	}
	return nil
}

// GeneratorFrom extracts the text generator from context.
func GeneratorFrom(ctx context.Context) generate.Generator {
	if s := ServicesFrom(ctx); s != nil {
		return s.Generator
	}
	return nil
}

// CatalogFrom extracts the builder catalog, falling back to the embedded one.
func CatalogFrom(ctx context.Context) *catalog.Catalog {
	if s := ServicesFrom(ctx); s != nil && s.Catalog != nil {
		return s.Catalog
	}
	return catalog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// MetricsFrom extracts the metrics collectors from context.
func MetricsFrom(ctx context.Context) *metrics.Metrics {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// ConfigFrom returns the current configuration, or the defaults when none
// is attached.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil && s.Config != nil {
		if cfg := s.Config(); cfg != nil {
			return cfg
		}
	}
	return config.DefaultConfig()
}
