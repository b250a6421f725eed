package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// StatsEndpoint handles GET /api/stats.
type StatsEndpoint struct{}

func (e *StatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats", e.handler
}

func (e *StatsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Library statistics
//	@Description	Prompt and favorite counts, broken down by category, tone and size
//	@Tags			prompts
//	@Produce		json
//	@Success		200	{object}	prompts.Stats
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/stats [get]
func (e *StatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}
	snap := lib.Snapshot()
	writeJSON(w, http.StatusOK, prompts.ComputeStats(snap.Prompts, snap.Favorites))
}

func (e *StatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp prompts.Stats
			if err := client.Get(ctx, "/api/stats", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
