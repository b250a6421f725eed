package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// HistoryResponse is the response for GET /api/history.
type HistoryResponse struct {
	History []prompts.Prompt `json:"history"`
}

// HistoryEndpoint handles GET /api/history.
type HistoryEndpoint struct{}

func (e *HistoryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/history", e.handler
}

func (e *HistoryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Recent prompts
//	@Description	The most recently saved prompts, newest first
//	@Tags			prompts
//	@Produce		json
//	@Success		200	{object}	HistoryResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/history [get]
func (e *HistoryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{History: lib.History()})
}

func (e *HistoryEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recently saved prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp HistoryResponse
			if err := client.Get(ctx, "/api/history", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
