package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/generate"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// GenerateRequest describes the prompt to draft. Content is an optional
// idea the model should adapt; empty tags fall back to the user's defaults.
type GenerateRequest struct {
	Content  string `json:"content,omitempty"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Size     string `json:"size,omitempty"`
	// Save stores the generated text as a new prompt.
	Save bool `json:"save,omitempty"`
}

// GenerateResponse carries the generated text.
type GenerateResponse struct {
	Text   string          `json:"text"`
	Model  string          `json:"model"`
	Saved  *prompts.Prompt `json:"saved,omitempty"`
	Stored bool            `json:"persisted,omitempty"`
}

// generateWriteGrace is the time left to write the response after a
// generation times out.
const generateWriteGrace = 10 * time.Second

// GenerateEndpoint handles POST /api/generate.
type GenerateEndpoint struct {
	// Limiter throttles calls to the remote model. Nil means unlimited.
	Limiter *rate.Limiter
}

func (e *GenerateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/generate", e.handler
}

func (e *GenerateEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Generate a prompt
//	@Description	Ask the configured model to write a prompt for the given category, tone and size.
//	@Description	The library is not changed unless save=true.
//	@Tags			generate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateRequest	true	"Builder input"
//	@Success		200		{object}	GenerateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		504		{object}	ErrorResponse
//	@Router			/api/generate [post]
func (e *GenerateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lib := svcctx.LibraryFrom(ctx)
	gen := svcctx.GeneratorFrom(ctx)
	if lib == nil || gen == nil {
		writeError(w, http.StatusServiceUnavailable, "generator not initialized")
		return
	}

	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if e.Limiter != nil && !e.Limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many generation requests, try again shortly")
		return
	}

	settings := lib.Settings()
	draft := prompts.Draft{
		Content:  req.Content,
		Title:    req.Title,
		Category: req.Category,
		Tone:     req.Tone,
		Size:     req.Size,
	}.ApplyDefaults(settings)

	genReq := generate.ComposeRequest(svcctx.CatalogFrom(ctx), draft, settings)

	// The server config supplies credentials the user has not set.
	cfg := svcctx.ConfigFrom(ctx)
	if genReq.APIKey == "" {
		genReq.APIKey = cfg.Generation.ResolvedAPIKey()
	}
	if settings.Model == "" && cfg.Generation.Model != "" {
		genReq.Model = cfg.Generation.Model
	}

	// The server's write timeout must not cut a generation short; the
	// configured generation timeout is the only limit.
	timeout := cfg.Generation.Timeout()
	var writeDeadline time.Time
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
		writeDeadline = time.Now().Add(timeout + generateWriteGrace)
	}
	if err := http.NewResponseController(w).SetWriteDeadline(writeDeadline); err != nil {
		svcctx.LoggerFrom(ctx).Debug("could not extend write deadline", "error", err)
	}

	text, err := gen.Generate(ctx, genReq)
	if err != nil {
		writeError(w, generateStatus(err), err.Error())
		return
	}

	resp := GenerateResponse{Text: text, Model: genReq.Model}
	if req.Save {
		draft.Content = text
		res, err := lib.Add(draft)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Saved = &res.Prompt
		resp.Stored = res.Persisted
	}

	writeJSON(w, http.StatusOK, resp)
}

// generateStatus maps generation failures to HTTP status codes.
func generateStatus(err error) int {
	var reqErr *generate.RequestError
	switch {
	case errors.Is(err, generate.ErrMissingAPIKey), errors.Is(err, generate.ErrMissingModel):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &reqErr), errors.Is(err, generate.ErrNoText):
		return http.StatusBadGateway
	}
	return http.StatusBadGateway
}

func (e *GenerateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req GenerateRequest
	cmd := &cobra.Command{
		Use:   "generate [idea]",
		Short: "Draft a prompt with the configured model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				req.Content = args[0]
			}
			client := api.NewClient(getServerURL())
			var resp GenerateResponse
			if err := client.Post(ctx, "/api/generate", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "Category id (defaults to settings)")
	cmd.Flags().StringVar(&req.Tone, "tone", "", "Tone id (defaults to settings)")
	cmd.Flags().StringVar(&req.Size, "size", "", "Size id (defaults to settings)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Title used when saving")
	cmd.Flags().BoolVar(&req.Save, "save", false, "Save the generated text as a new prompt")
	return cmd
}
