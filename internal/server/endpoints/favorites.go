package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// ListFavoritesResponse is the response for listing favorites.
type ListFavoritesResponse struct {
	Favorites []prompts.Prompt `json:"favorites"`
}

// ListFavoritesEndpoint handles GET /api/favorites.
type ListFavoritesEndpoint struct{}

func (e *ListFavoritesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/favorites", e.handler
}

func (e *ListFavoritesEndpoint) RequiresInit() bool { return true }

func (e *ListFavoritesEndpoint) Group() string { return "favorites" }

// handler godoc
//
//	@Summary		List favorites
//	@Description	Favorites in the order they were added, including copies of deleted prompts
//	@Tags			favorites
//	@Produce		json
//	@Success		200	{object}	ListFavoritesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/favorites [get]
func (e *ListFavoritesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}
	writeJSON(w, http.StatusOK, ListFavoritesResponse{Favorites: lib.Favorites()})
}

func (e *ListFavoritesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ListFavoritesResponse
			if err := client.Get(ctx, "/api/favorites", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ToggleFavoriteResponse reports the new membership.
type ToggleFavoriteResponse struct {
	ID        string `json:"id"`
	Favorite  bool   `json:"favorite"`
	Persisted bool   `json:"persisted"`
}

// ToggleFavoriteEndpoint handles POST /api/favorites/{id}/toggle.
type ToggleFavoriteEndpoint struct{}

func (e *ToggleFavoriteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/favorites/{id}/toggle", e.handler
}

func (e *ToggleFavoriteEndpoint) RequiresInit() bool { return true }

func (e *ToggleFavoriteEndpoint) Group() string { return "favorites" }

// handler godoc
//
//	@Summary		Toggle a favorite
//	@Description	Add the prompt to favorites, or remove it when it is already one
//	@Tags			favorites
//	@Produce		json
//	@Param			id	path		string	true	"Prompt ID"
//	@Success		200	{object}	ToggleFavoriteResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/favorites/{id}/toggle [post]
func (e *ToggleFavoriteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	id := r.PathValue("id")
	fav, persisted, err := lib.ToggleFavoriteByID(id)
	if err != nil {
		if errors.Is(err, prompts.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prompt not found: "+id)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if !persisted {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, ToggleFavoriteResponse{ID: id, Favorite: fav, Persisted: persisted})
}

func (e *ToggleFavoriteEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a prompt from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ToggleFavoriteResponse
			path := fmt.Sprintf("/api/favorites/%s/toggle", url.PathEscape(args[0]))
			if err := client.Post(ctx, path, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
