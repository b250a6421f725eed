package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// redactedKey is what GET returns in place of a stored API key. Sending it
// back in a PUT keeps the stored key.
const redactedKey = "********"

// SettingsResponse wraps the user settings. The API key is always masked.
type SettingsResponse struct {
	Settings  prompts.Settings `json:"settings"`
	Persisted bool             `json:"persisted"`
}

// GetSettingsEndpoint handles GET /api/settings.
type GetSettingsEndpoint struct{}

func (e *GetSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings", e.handler
}

func (e *GetSettingsEndpoint) RequiresInit() bool { return true }

func (e *GetSettingsEndpoint) Group() string { return "settings" }

// handler godoc
//
//	@Summary		Get settings
//	@Description	Get the user settings with the API key masked
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/settings [get]
func (e *GetSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: lib.Settings().Redacted(), Persisted: true})
}

func (e *GetSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Get(ctx, "/api/settings", &resp); err != nil {
				return err
			}
			return api.Output(resp.Settings)
		},
	}
}

// UpdateSettingsEndpoint handles PUT /api/settings.
type UpdateSettingsEndpoint struct{}

func (e *UpdateSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/settings", e.handler
}

func (e *UpdateSettingsEndpoint) RequiresInit() bool { return true }

func (e *UpdateSettingsEndpoint) Group() string { return "settings" }

// handler godoc
//
//	@Summary		Update settings
//	@Description	Merge the given fields into the stored settings. Fields not present keep their value.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		map[string]any	true	"Settings fields to change"
//	@Success		200		{object}	SettingsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	SettingsResponse
//	@Router			/api/settings [put]
func (e *UpdateSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	var patch map[string]json.RawMessage
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, ok, err := lib.UpdateSettingsFunc(func(current prompts.Settings) (prompts.Settings, error) {
		return mergeSettings(current, patch)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, SettingsResponse{Settings: updated.Redacted(), Persisted: ok})
}

// mergeSettings applies patch on top of current. Unknown fields are rejected.
func mergeSettings(current prompts.Settings, patch map[string]json.RawMessage) (prompts.Settings, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &merged); err != nil {
		return current, err
	}

	for k, v := range patch {
		if _, known := merged[k]; !known {
			return current, fmt.Errorf("unknown setting %q", k)
		}
		if k == "apiKey" {
			var key string
			if json.Unmarshal(v, &key) == nil && key == redactedKey {
				continue
			}
		}
		merged[k] = v
	}

	raw, err = json.Marshal(merged)
	if err != nil {
		return current, err
	}
	var out prompts.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return current, fmt.Errorf("invalid settings: %w", err)
	}
	return out, nil
}

func (e *UpdateSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field=value>...",
		Short: "Change user settings",
		Long: `Change one or more user settings, e.g.

  promptshelf api settings set darkMode=true defaultTone=casual

Values that parse as JSON (true, false, numbers) are sent as such;
everything else is sent as a string.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patch, err := parseAssignments(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Put(ctx, "/api/settings", patch, &resp); err != nil {
				return err
			}
			return api.Output(resp.Settings)
		},
	}
}

func parseAssignments(args []string) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			patch[k] = decoded
		} else {
			patch[k] = v
		}
	}
	return patch, nil
}

// ResetSettingsEndpoint handles POST /api/settings/reset.
type ResetSettingsEndpoint struct{}

func (e *ResetSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/settings/reset", e.handler
}

func (e *ResetSettingsEndpoint) RequiresInit() bool { return true }

func (e *ResetSettingsEndpoint) Group() string { return "settings" }

// handler godoc
//
//	@Summary		Reset settings
//	@Description	Restore every setting to its default
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Failure		500	{object}	SettingsResponse
//	@Router			/api/settings/reset [post]
func (e *ResetSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())
	if lib == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt library not initialized")
		return
	}

	ok := lib.ResetSettings()
	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, SettingsResponse{Settings: lib.Settings().Redacted(), Persisted: ok})
}

func (e *ResetSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Post(ctx, "/api/settings/reset", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp.Settings)
		},
	}
}
