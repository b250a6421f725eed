package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// MetricsEndpoint handles GET /metrics in the prometheus text format.
type MetricsEndpoint struct{}

func (e *MetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/metrics", e.handler
}

func (e *MetricsEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Prometheus metrics
//	@Description	Storage, mutation, generation and HTTP counters
//	@Tags			health
//	@Produce		plain
//	@Success		200	{string}	string
//	@Failure		404	{object}	ErrorResponse
//	@Router			/metrics [get]
func (e *MetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	m := svcctx.MetricsFrom(r.Context())
	if m == nil {
		writeError(w, http.StatusNotFound, "metrics disabled")
		return
	}
	m.Handler().ServeHTTP(w, r)
}

func (e *MetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the server's prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			text, err := client.GetText(ctx, "/metrics")
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}
