package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// DeletePromptEndpoint handles DELETE /api/prompts/{id}.
type DeletePromptEndpoint struct{}

func (e *DeletePromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/prompts/{id}", e.handler
}

func (e *DeletePromptEndpoint) RequiresInit() bool { return true }

func (e *DeletePromptEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		Delete a prompt
//	@Description	Remove a prompt from the library. Deleting an unknown id succeeds and changes nothing.
//	@Tags			prompts
//	@Produce		json
//	@Param			id	path		string	true	"Prompt ID"
//	@Success		200	{object}	SuccessResponse
//	@Failure		500	{object}	SuccessResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/prompts/{id} [delete]
func (e *DeletePromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	writeSuccess(w, lib.Delete(r.PathValue("id")))
}

func (e *DeletePromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SuccessResponse
			if err := client.Delete(ctx, "/api/prompts/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
