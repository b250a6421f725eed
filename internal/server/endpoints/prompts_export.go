package endpoints

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/exporter"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// ExportPromptRequest selects the file format. Empty uses the
// exportFormat setting.
type ExportPromptRequest struct {
	Format string `json:"format,omitempty"`
}

// ExportPromptResponse names the written file.
type ExportPromptResponse struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

// ExportPromptEndpoint handles POST /api/prompts/{id}/export.
type ExportPromptEndpoint struct{}

func (e *ExportPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/{id}/export", e.handler
}

func (e *ExportPromptEndpoint) RequiresInit() bool { return true }

func (e *ExportPromptEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		Export a prompt
//	@Description	Write a single prompt as pdf, txt or json into the exports directory
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Prompt ID"
//	@Param			request	body		ExportPromptRequest	false	"Export format"
//	@Success		200		{object}	ExportPromptResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/prompts/{id}/export [post]
func (e *ExportPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	h := svcctx.HomeFrom(r.Context())
	if lib == nil || h == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	var req ExportPromptRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Format == "" {
		req.Format = lib.Settings().ExportFormat
	}
	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	p, ok := lib.Get(id)
	if !ok {
		// Favorites may outlive their prompt.
		favs := lib.Favorites()
		i := prompts.IndexOf(favs, id)
		if i < 0 {
			writeError(w, http.StatusNotFound, "prompt not found: "+id)
			return
		}
		p = favs[i]
	}

	path, err := exporter.WriteFile(h.ExportsDir(), p, format)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("prompt export failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ExportPromptResponse{Path: path, Format: string(format)})
}

func (e *ExportPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a prompt to a pdf, txt or json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ExportPromptResponse
			path := fmt.Sprintf("/api/prompts/%s/export", url.PathEscape(args[0]))
			if err := client.Post(ctx, path, ExportPromptRequest{Format: format}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Export format: pdf, txt or json (defaults to settings)")
	return cmd
}
