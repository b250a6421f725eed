package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint pairs an HTTP route with the CLI command that calls it, so the
// server and the "api" command tree are built from the same list.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresInit returns true if this endpoint needs the prompt library
	// to be open.
	RequiresInit() bool

	// Command returns a Cobra command that calls this endpoint via HTTP.
	// getServerURL is called at runtime to get the server URL (deferred evaluation).
	Command(getServerURL func() string) *cobra.Command
}

// Grouped is implemented by endpoints whose command lives under a
// subcommand, e.g. "prompts" for "api prompts list". Endpoints without a
// group sit directly under "api".
type Grouped interface {
	Group() string
}
