package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
	"github.com/jackzampolin/promptshelf/internal/transfer"
)

// maxImportBytes bounds the size of an uploaded export document.
const maxImportBytes = 32 << 20

// ExportEndpoint handles GET /api/export.
type ExportEndpoint struct{}

func (e *ExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/export", e.handler
}

func (e *ExportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export all data
//	@Description	Prompts, settings, favorites and history as one JSON document
//	@Tags			transfer
//	@Produce		json
//	@Success		200	{object}	transfer.Document
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/export [get]
func (e *ExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}
	writeJSON(w, http.StatusOK, transfer.Export(lib, time.Now()))
}

func (e *ExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data from the running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var doc transfer.Document
			if err := client.Get(ctx, "/api/export", &doc); err != nil {
				return err
			}
			if file == "" {
				return api.Output(doc)
			}
			if err := transfer.WriteFile(file, doc); err != nil {
				return err
			}
			fmt.Printf("Exported %d prompts to %s\n", len(doc.Prompts), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the document to this file instead of stdout")
	return cmd
}

// ImportResponse reports an import.
type ImportResponse struct {
	Success  bool     `json:"success"`
	Imported []string `json:"imported"`
}

// ImportEndpoint handles POST /api/import.
type ImportEndpoint struct{}

func (e *ImportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/import", e.handler
}

func (e *ImportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Import data
//	@Description	Replace every collection present in the document. Absent collections are kept.
//	@Description	success=false means some writes failed; the ones that succeeded are kept.
//	@Tags			transfer
//	@Accept			json
//	@Produce		json
//	@Param			request	body		transfer.Document	true	"Export document"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ImportResponse
//	@Router			/api/import [post]
func (e *ImportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read import data: "+err.Error())
		return
	}

	doc, err := transfer.DecodeBytes(data)
	if err != nil {
		if errors.Is(err, transfer.ErrEmptyDocument) || errors.Is(err, transfer.ErrInvalidDocument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ok := transfer.Import(lib, doc)
	imported := doc.Present()
	if imported == nil {
		imported = []string{}
	}

	logger := svcctx.LoggerFrom(r.Context())
	if ok {
		logger.Info("data imported", "collections", imported)
	} else {
		logger.Warn("import partially failed", "collections", imported)
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, ImportResponse{Success: ok, Imported: imported})
}

func (e *ImportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an export document into the running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			doc, err := transfer.ReadFile(file)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp ImportResponse
			if err := client.Post(ctx, "/api/import", doc, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Export document to import (required)")
	return cmd
}

// ClearRequest must carry confirm=true.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// ClearEndpoint handles POST /api/clear.
type ClearEndpoint struct{}

func (e *ClearEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/clear", e.handler
}

func (e *ClearEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Clear all data
//	@Description	Erase prompts, favorites and history and reset settings. Requires confirm=true.
//	@Tags			transfer
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ClearRequest	true	"Confirmation"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	SuccessResponse
//	@Router			/api/clear [post]
func (e *ClearEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	var req ClearRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "clearing all data requires confirm=true")
		return
	}

	writeSuccess(w, lib.Clear())
}

func (e *ClearEndpoint) Command(getServerURL func() string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase all prompts, favorites, history and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !yes {
				return fmt.Errorf("this deletes all data; pass --yes to confirm")
			}
			client := api.NewClient(getServerURL())
			var resp SuccessResponse
			if err := client.Post(ctx, "/api/clear", ClearRequest{Confirm: true}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all data")
	return cmd
}
