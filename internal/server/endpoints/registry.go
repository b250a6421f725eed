package endpoints

import (
	"golang.org/x/time/rate"

	"github.com/jackzampolin/promptshelf/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// GenerateLimiter throttles POST /api/generate. Nil means unlimited.
	GenerateLimiter *rate.Limiter
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&MetricsEndpoint{},

		// Prompt endpoints
		&ListPromptsEndpoint{},
		&CreatePromptEndpoint{},
		&GetPromptEndpoint{},
		&DeletePromptEndpoint{},
		&ExportPromptEndpoint{},
		&HistoryEndpoint{},
		&StatsEndpoint{},

		// Favorite endpoints
		&ListFavoritesEndpoint{},
		&ToggleFavoriteEndpoint{},

		// Settings endpoints
		&GetSettingsEndpoint{},
		&UpdateSettingsEndpoint{},
		&ResetSettingsEndpoint{},

		// Transfer endpoints
		&ExportEndpoint{},
		&ImportEndpoint{},
		&ClearEndpoint{},

		// Generation
		&GenerateEndpoint{Limiter: cfg.GenerateLimiter},

		// Catalog endpoints
		&CatalogEndpoint{},
		&ToolsEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Embedded library viewer
		&StaticEndpoint{},
	}
}

// NewGenerateLimiter returns a limiter allowing perMinute generation calls
// per minute with a burst of the same size. Zero or less means unlimited.
func NewGenerateLimiter(perMinute int) *rate.Limiter {
	l := rate.NewLimiter(rate.Inf, 0)
	SetGenerateRate(l, perMinute)
	return l
}

// SetGenerateRate updates l in place, e.g. after a config reload.
func SetGenerateRate(l *rate.Limiter, perMinute int) {
	if perMinute <= 0 {
		l.SetLimit(rate.Inf)
		return
	}
	l.SetLimit(rate.Limit(float64(perMinute) / 60))
	l.SetBurst(perMinute)
}
