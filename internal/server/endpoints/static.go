package endpoints

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/web"
)

// StaticEndpoint serves the embedded library viewer under /ui/.
// Unknown paths get index.html so client-side routes work.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ui/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool {
	return false
}

func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil // No CLI command for static files
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	distFS, err := web.DistFS()
	if err != nil {
		http.Error(w, "Viewer not available", http.StatusInternalServerError)
		return
	}

	filePath := r.PathValue("path")
	if filePath != "" && filePath != "index.html" {
		if info, err := fs.Stat(distFS, filePath); err == nil && !info.IsDir() {
			http.ServeFileFS(w, r, distFS, filePath)
			return
		}
		if strings.Contains(filePath, ".") {
			http.NotFound(w, r)
			return
		}
	}

	indexFile, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "Viewer not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexFile)
}
