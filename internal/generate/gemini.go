package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GeminiBaseURL is the public Generative Language API.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const geminiDisplayName = "Gemini"

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiClient calls models/{model}:generateContent.
type GeminiClient struct {
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &GeminiClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.HTTPClient,
	}
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string {
	return ProviderGemini
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Endpoint returns the generateContent URL for model and apiKey.
func (c *GeminiClient) Endpoint(model, apiKey string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(apiKey))
}

// Generate sends the system and user text as a single user turn.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.validate(geminiDisplayName); err != nil {
		return "", err
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: JoinPromptText(req.SystemText, req.UserText)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(req.Model, req.APIKey), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RequestError{
			Provider:   geminiDisplayName,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Details:    errorDetails(respBody),
		}
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Provider: geminiDisplayName, Err: ErrNoText}
	}
	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", &ProviderError{Provider: geminiDisplayName, Err: ErrNoText}
	}
	return text, nil
}

// errorDetails extracts error.message, falling back to the raw JSON body.
func errorDetails(body []byte) string {
	var ge geminiError
	if err := json.Unmarshal(body, &ge); err != nil {
		return ""
	}
	if ge.Error.Message != "" {
		return ge.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// JoinPromptText trims both parts and joins the non-empty ones with a
// blank line, system text first.
func JoinPromptText(systemText, userText string) string {
	var parts []string
	for _, s := range []string{systemText, userText} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
