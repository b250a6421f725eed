// Package generate drafts prompt text with a remote text-generation model.
//
// A Generator makes exactly one request per call. Failures are returned
// unchanged to the caller; there is no retry and no fallback content.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackzampolin/promptshelf/internal/metrics"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	// ErrMissingAPIKey is returned when the request has no API key.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrMissingModel is returned when the request names no model.
	ErrMissingModel = errors.New("missing model")

	// ErrNoText is returned when the remote response carries no usable text.
	ErrNoText = errors.New("no text returned")
)

// ProviderError attaches the provider's display name to one of the
// sentinels above. errors.Is matches the sentinel.
type ProviderError struct {
	Provider string // display name, e.g. "Gemini"
	Err      error
}

func (e *ProviderError) Error() string {
	switch e.Err {
	case ErrMissingAPIKey:
		return "Missing " + e.Provider + " API key. Add it in Settings."
	case ErrMissingModel:
		return "Missing " + e.Provider + " model."
	case ErrNoText:
		return e.Provider + " returned no text."
	}
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RequestError is a non-2xx response from the remote service.
type RequestError struct {
	Provider   string // display name, e.g. "Gemini"
	StatusCode int
	Status     string // e.g. "400 Bad Request"
	Details    string // remote error message, when one could be read
}

func (e *RequestError) Error() string {
	msg := e.Provider + " request failed: " + e.Status
	if e.Details != "" {
		msg += " - " + e.Details
	}
	return msg
}

// Request is a single generation call.
type Request struct {
	APIKey     string `json:"-"`
	Model      string `json:"model"`
	UserText   string `json:"user_text"`
	SystemText string `json:"system_text"`
}

// validate checks the credentials before any request is sent. provider is
// the display name used in the error message.
func (r Request) validate(provider string) error {
	if r.APIKey == "" {
		return &ProviderError{Provider: provider, Err: ErrMissingAPIKey}
	}
	if r.Model == "" {
		return &ProviderError{Provider: provider, Err: ErrMissingModel}
	}
	return nil
}

// Generator produces text for a Request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Name returns the provider identifier.
	Name() string
}

// Config selects and configures a Generator.
type Config struct {
	Provider   string        // "gemini" (default) or "openai"
	BaseURL    string        // Optional override
	Timeout    time.Duration // 0 means no client-side timeout
	HTTPClient *http.Client  // Optional (tests)
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// New returns the Generator for cfg.Provider, wrapped with logging and metrics.
func New(cfg Config) (Generator, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var g Generator
	switch cfg.Provider {
	case "", ProviderGemini:
		g = NewGeminiClient(GeminiConfig{BaseURL: cfg.BaseURL, HTTPClient: httpClient})
	case ProviderOpenAI:
		g = NewOpenAIClient(OpenAIConfig{BaseURL: cfg.BaseURL, HTTPClient: httpClient})
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
	return Instrument(g, cfg.Logger, cfg.Metrics), nil
}

// Instrument wraps g so every call is logged and counted.
func Instrument(g Generator, logger *slog.Logger, m *metrics.Metrics) Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &instrumented{next: g, logger: logger, metrics: m}
}

type instrumented struct {
	next    Generator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := i.next.Generate(ctx, req)
	elapsed := time.Since(start)

	i.metrics.Generation(i.next.Name(), err == nil, elapsed)
	if err != nil {
		i.logger.Warn("generation failed", "provider", i.next.Name(), "model", req.Model, "error", err)
		return "", err
	}
	i.logger.Debug("generation completed", "provider", i.next.Name(), "model", req.Model,
		"chars", len(text), "elapsed", elapsed)
	return text, nil
}
