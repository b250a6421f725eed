package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/catalog"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// CatalogResponse lists the tags prompts can carry.
type CatalogResponse struct {
	Categories []catalog.Category `json:"categories"`
	Tones      []catalog.Tone     `json:"tones"`
	Sizes      []catalog.Size     `json:"sizes"`
}

// CatalogEndpoint handles GET /api/catalog.
type CatalogEndpoint struct{}

func (e *CatalogEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/catalog", e.handler
}

func (e *CatalogEndpoint) RequiresInit() bool { return false }

func (e *CatalogEndpoint) Group() string { return "catalog" }

// handler godoc
//
//	@Summary		Builder catalog
//	@Description	Categories with sample prompts, tones and sizes
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Router			/api/catalog [get]
func (e *CatalogEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	writeJSON(w, http.StatusOK, CatalogResponse{
		Categories: cat.Categories,
		Tones:      cat.Tones,
		Sizes:      cat.Sizes,
	})
}

func (e *CatalogEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List categories, tones and sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp CatalogResponse
			if err := client.Get(ctx, "/api/catalog", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ToolsResponse is the AI tool directory.
type ToolsResponse struct {
	Groups []catalog.ToolGroup `json:"groups"`
	Total  int                 `json:"total"`
}

// ToolsEndpoint handles GET /api/tools.
type ToolsEndpoint struct{}

func (e *ToolsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/tools", e.handler
}

func (e *ToolsEndpoint) RequiresInit() bool { return false }

func (e *ToolsEndpoint) Group() string { return "catalog" }

// handler godoc
//
//	@Summary		AI tool directory
//	@Description	Third-party AI tools grouped by category
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	ToolsResponse
//	@Router			/api/tools [get]
func (e *ToolsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	writeJSON(w, http.StatusOK, ToolsResponse{Groups: cat.Tools, Total: cat.ToolCount()})
}

func (e *ToolsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the AI tool directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ToolsResponse
			if err := client.Get(ctx, "/api/tools", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
