package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// GetPromptResponse is a prompt with its favorite flag.
type GetPromptResponse struct {
	prompts.Prompt
	Favorite bool `json:"favorite"`
}

// GetPromptEndpoint handles GET /api/prompts/{id}.
type GetPromptEndpoint struct{}

func (e *GetPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts/{id}", e.handler
}

func (e *GetPromptEndpoint) RequiresInit() bool { return true }

func (e *GetPromptEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		Get a prompt
//	@Description	Get a saved prompt by id
//	@Tags			prompts
//	@Produce		json
//	@Param			id	path		string	true	"Prompt ID"
//	@Success		200	{object}	GetPromptResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/prompts/{id} [get]
func (e *GetPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	id := r.PathValue("id")
	p, ok := lib.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "prompt not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, GetPromptResponse{Prompt: p, Favorite: lib.IsFavorite(id)})
}

func (e *GetPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a prompt by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp GetPromptResponse
			if err := client.Get(ctx, "/api/prompts/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
