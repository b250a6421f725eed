package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
// initMiddleware wraps handlers that require full server initialization.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, initMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		if ep.RequiresInit() {
			handler = initMiddleware(handler)
		}
		mux.HandleFunc(method+" "+path, handler)
	}
}

// BuildCommands returns a cobra.Command tree for all registered endpoints.
// Commands are organized by their URL path structure.
// getServerURL is called at runtime to get the server URL.
func (r *Registry) BuildCommands(getServerURL func() string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Commands that call the running server",
		Long: `API commands call the running promptshelf server via HTTP.

These commands require a running server (promptshelf serve).
Use --server to specify a custom server URL.

Examples:
  promptshelf api health                # Check server health
  promptshelf api prompts list          # List saved prompts
  promptshelf api prompts get <id>      # Get a specific prompt`,
	}

	groups := make(map[string]*cobra.Command)
	for _, ep := range r.endpoints {
		cmd := ep.Command(getServerURL)
		if cmd == nil {
			continue
		}
		group, ok := ep.(Grouped)
		if !ok || group.Group() == "" {
			apiCmd.AddCommand(cmd)
			continue
		}
		name := group.Group()
		parent, exists := groups[name]
		if !exists {
			parent = &cobra.Command{
				Use:   name,
				Short: groupShort(name),
			}
			groups[name] = parent
			apiCmd.AddCommand(parent)
		}
		parent.AddCommand(cmd)
	}

	return apiCmd
}

func groupShort(name string) string {
	switch name {
	case "prompts":
		return "Saved prompt commands"
	case "favorites":
		return "Favorite prompt commands"
	case "settings":
		return "User settings commands"
	case "catalog":
		return "Builder catalog commands"
	}
	return name + " commands"
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
