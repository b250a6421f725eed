package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openaiDisplayName = "OpenAI"

// OpenAIConfig holds configuration for the OpenAI-compatible client.
type OpenAIConfig struct {
	BaseURL    string       // Optional, any OpenAI-compatible endpoint
	HTTPClient *http.Client // Optional (tests)
}

// OpenAIClient generates text through the chat completions API.
// The API key is supplied per request from the user's settings.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates an OpenAI-compatible client. SDK retries are
// disabled so each Generate is a single request.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	opts := []option.RequestOption{
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{client: openai.NewClient(opts...)}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return ProviderOpenAI
}

// Generate sends the system text as a system message and the user text as
// a user message.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.validate(openaiDisplayName); err != nil {
		return "", err
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if s := strings.TrimSpace(req.SystemText); s != "" {
		messages = append(messages, openai.SystemMessage(s))
	}
	messages = append(messages, openai.UserMessage(strings.TrimSpace(req.UserText)))

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: messages,
	}, option.WithAPIKey(req.APIKey))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &RequestError{
				Provider:   openaiDisplayName,
				StatusCode: apiErr.StatusCode,
				Status:     fmt.Sprintf("%d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode)),
				Details:    apiErr.Message,
			}
		}
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", &ProviderError{Provider: openaiDisplayName, Err: ErrNoText}
	}
	text := strings.TrimSpace(res.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Provider: openaiDisplayName, Err: ErrNoText}
	}
	return text, nil
}
