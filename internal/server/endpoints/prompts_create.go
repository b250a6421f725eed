package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// CreatePromptRequest is the request body for saving a prompt.
// Empty category, tone and size fall back to the user's defaults.
type CreatePromptRequest struct {
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Size     string `json:"size,omitempty"`
}

// CreatePromptResponse is the response for a saved prompt.
type CreatePromptResponse struct {
	Prompt    prompts.Prompt `json:"prompt"`
	Persisted bool           `json:"persisted"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// CreatePromptEndpoint handles POST /api/prompts.
type CreatePromptEndpoint struct{}

func (e *CreatePromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts", e.handler
}

func (e *CreatePromptEndpoint) RequiresInit() bool { return true }

func (e *CreatePromptEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		Save a prompt
//	@Description	Create a prompt, prepend it to the library and record it in history
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreatePromptRequest	true	"Prompt draft"
//	@Success		201		{object}	CreatePromptResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/prompts [post]
func (e *CreatePromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	var req CreatePromptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft := prompts.Draft{
		Content:  req.Content,
		Title:    req.Title,
		Category: req.Category,
		Tone:     req.Tone,
		Size:     req.Size,
	}.ApplyDefaults(lib.Settings())

	// Unknown tags are accepted; the caller is told about them.
	warnings := svcctx.CatalogFrom(r.Context()).UnknownTags(draft.Category, draft.Tone, draft.Size)
	if len(warnings) > 0 {
		svcctx.LoggerFrom(r.Context()).Warn("prompt uses unknown tags", "tags", strings.Join(warnings, ","))
	}

	res, err := lib.Add(draft)
	if err != nil {
		if errors.Is(err, prompts.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, CreatePromptResponse{
		Prompt:    res.Prompt,
		Persisted: res.Persisted,
		Warnings:  warnings,
	})
}

func (e *CreatePromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req CreatePromptRequest
	cmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Save a new prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			req.Content = args[0]
			var resp CreatePromptResponse
			if err := client.Post(ctx, "/api/prompts", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "Optional title")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category id (defaults to settings)")
	cmd.Flags().StringVar(&req.Tone, "tone", "", "Tone id (defaults to settings)")
	cmd.Flags().StringVar(&req.Size, "size", "", "Size id (defaults to settings)")
	return cmd
}
