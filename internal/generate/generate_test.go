package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackzampolin/promptshelf/internal/catalog"
	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/prompts"
)

func TestGemini_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  A crisp prompt.  "}]}}]}`))
	}))
	defer server.Close()

	c := NewGeminiClient(GeminiConfig{BaseURL: server.URL})
	text, err := c.Generate(context.Background(), Request{
		APIKey:     "k&y",
		Model:      "gemini-2.0-flash",
		SystemText: "  system  ",
		UserText:   "user\n",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "A crisp prompt." {
		t.Errorf("expected trimmed text, got %q", text)
	}
	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "k&y" {
		t.Errorf("expected key to round-trip through query escaping, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Role != "user" ||
		gotBody.Contents[0].Parts[0].Text != "system\n\nuser" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestGemini_MissingCredentials(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c := NewGeminiClient(GeminiConfig{BaseURL: server.URL})

	_, err := c.Generate(context.Background(), Request{Model: "m", UserText: "x"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if err.Error() != "Missing Gemini API key. Add it in Settings." {
		t.Errorf("unexpected message %q", err.Error())
	}

	_, err = c.Generate(context.Background(), Request{APIKey: "k", UserText: "x"})
	if !errors.Is(err, ErrMissingModel) {
		t.Errorf("expected ErrMissingModel, got %v", err)
	}

	if calls != 0 {
		t.Errorf("no request should be sent, got %d", calls)
	}
}

func TestGemini_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "remote error message",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid."}}`,
			wantMsg: "Gemini request failed: 400 Bad Request - API key not valid.",
		},
		{
			name:    "json without message",
			status:  http.StatusInternalServerError,
			body:    `{"oops":true}`,
			wantMsg: `Gemini request failed: 500 Internal Server Error - {"oops":true}`,
		},
		{
			name:    "non-json body",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantMsg: "Gemini request failed: 502 Bad Gateway",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ErrNoText,
		},
		{
			name:    "blank text",
			status:  http.StatusOK,
			body:    `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
			wantErr: ErrNoText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewGeminiClient(GeminiConfig{BaseURL: server.URL})
			_, err := c.Generate(context.Background(), Request{APIKey: "k", Model: "m", UserText: "u"})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" {
				if err.Error() != tt.wantMsg {
					t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
				}
				var reqErr *RequestError
				if !errors.As(err, &reqErr) || reqErr.StatusCode != tt.status {
					t.Errorf("expected RequestError with status %d, got %#v", tt.status, err)
				}
			}
		})
	}
}

func TestOpenAI_Generate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":" Drafted. "}}]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL + "/v1/"})
	text, err := c.Generate(context.Background(), Request{
		APIKey:     "sk-test",
		Model:      "gpt-4o-mini",
		SystemText: "sys",
		UserText:   "usr",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "Drafted." {
		t.Errorf("expected trimmed text, got %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected per-request API key, got %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("unexpected model in body: %v", gotBody["model"])
	}
	if msgs, ok := gotBody["messages"].([]any); !ok || len(msgs) != 2 {
		t.Errorf("expected system and user messages, got %v", gotBody["messages"])
	}
}

func TestOpenAI_ErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL + "/v1/"})
	_, err := c.Generate(context.Background(), Request{APIKey: "k", Model: "m", UserText: "u"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected status %d", reqErr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("expected exactly one request, got %d", calls)
	}
}

func TestOpenAI_MessagesNameProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL + "/v1/"})

	_, err := c.Generate(context.Background(), Request{Model: "m", UserText: "x"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if err.Error() != "Missing OpenAI API key. Add it in Settings." {
		t.Errorf("unexpected message %q", err.Error())
	}

	_, err = c.Generate(context.Background(), Request{APIKey: "k", UserText: "x"})
	if !errors.Is(err, ErrMissingModel) || strings.Contains(err.Error(), "Gemini") {
		t.Errorf("unexpected missing model error %v", err)
	}

	_, err = c.Generate(context.Background(), Request{APIKey: "k", Model: "m", UserText: "x"})
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if err.Error() != "OpenAI returned no text." {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNew(t *testing.T) {
	m := metrics.New()

	g, err := New(Config{Metrics: m})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.Name() != ProviderGemini {
		t.Errorf("default provider should be gemini, got %s", g.Name())
	}

	g, err = New(Config{Provider: ProviderOpenAI})
	if err != nil || g.Name() != ProviderOpenAI {
		t.Errorf("expected openai generator, got %v %v", g, err)
	}

	if _, err := New(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestInstrumented_PropagatesErrors(t *testing.T) {
	g, _ := New(Config{})
	_, err := g.Generate(context.Background(), Request{Model: "m"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error should pass through unchanged, got %v", err)
	}
}

func TestComposeRequest(t *testing.T) {
	s := prompts.DefaultSettings()
	s.APIKey = "key"

	req := ComposeRequest(catalog.Default(), prompts.Draft{Content: "a haiku about Go", Category: "writing", Tone: "creative"}, s)

	if req.APIKey != "key" || req.Model != prompts.DefaultModel {
		t.Errorf("unexpected credentials: %+v", req)
	}
	wantSystem := "You are an assistant that composes high-quality prompts for AI models. " +
		"Respect the requested tone (creative: Imaginative and innovative) and target length " +
		"(medium: Balanced length). Output only the prompt text."
	if req.SystemText != wantSystem {
		t.Errorf("unexpected system text:\n%s", req.SystemText)
	}
	wantUser := "Compose an AI prompt for the \"writing\" category. If relevant, adapt to this draft " +
		"or idea provided by the user (may be empty):\n\na haiku about Go"
	if req.UserText != wantUser {
		t.Errorf("unexpected user text:\n%s", req.UserText)
	}
}

func TestJoinPromptText(t *testing.T) {
	tests := []struct{ system, user, want string }{
		{"a", "b", "a\n\nb"},
		{"  ", "b ", "b"},
		{"a", "", "a"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := JoinPromptText(tt.system, tt.user); got != tt.want {
			t.Errorf("JoinPromptText(%q, %q) = %q, want %q", tt.system, tt.user, got, tt.want)
		}
	}
}
