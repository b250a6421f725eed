package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// ListPromptsResponse is the response for listing prompts.
type ListPromptsResponse struct {
	Prompts []prompts.Prompt `json:"prompts"`
	Total   int              `json:"total"` // size of the unfiltered collection
}

// ListPromptsEndpoint handles GET /api/prompts.
type ListPromptsEndpoint struct{}

func (e *ListPromptsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts", e.handler
}

func (e *ListPromptsEndpoint) RequiresInit() bool { return true }

func (e *ListPromptsEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		List prompts
//	@Description	Search, filter and sort the saved prompts
//	@Tags			prompts
//	@Produce		json
//	@Param			search		query		string	false	"Case-insensitive substring of content or title"
//	@Param			category	query		string	false	"Category id or 'all'"
//	@Param			tone		query		string	false	"Tone id or 'all'"
//	@Param			size		query		string	false	"Size id or 'all'"
//	@Param			sort		query		string	false	"newest, oldest, longest, shortest or favorite"
//	@Success		200			{object}	ListPromptsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/prompts [get]
func (e *ListPromptsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	q := r.URL.Query()
	sortKey, err := prompts.ParseSortKey(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := prompts.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Tone:     q.Get("tone"),
		Size:     q.Get("size"),
		Sort:     sortKey,
	}

	snap := lib.Snapshot()
	writeJSON(w, http.StatusOK, ListPromptsResponse{
		Prompts: prompts.Query(snap.Prompts, snap.Favorites, filter),
		Total:   len(snap.Prompts),
	})
}

func (e *ListPromptsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var filter prompts.Filter
	var sortKey string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			// Build query string
			path := "/api/prompts"
			params := url.Values{}
			if filter.Search != "" {
				params.Set("search", filter.Search)
			}
			if filter.Category != "" {
				params.Set("category", filter.Category)
			}
			if filter.Tone != "" {
				params.Set("tone", filter.Tone)
			}
			if filter.Size != "" {
				params.Set("size", filter.Size)
			}
			if sortKey != "" {
				params.Set("sort", sortKey)
			}
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var resp ListPromptsResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "Search content and title")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Tone, "tone", "", "Filter by tone")
	cmd.Flags().StringVar(&filter.Size, "size", "", "Filter by size")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort order: newest, oldest, longest, shortest, favorite")
	return cmd
}
