package prompts

import "encoding/json"

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Settings are the persisted user preferences.
type Settings struct {
	DarkMode        bool   `json:"darkMode"`
	AutoSave        bool   `json:"autoSave"`
	DefaultCategory string `json:"defaultCategory"`
	DefaultTone     string `json:"defaultTone"`
	DefaultSize     string `json:"defaultSize"`
	Notifications   bool   `json:"notifications"`
	CompactMode     bool   `json:"compactMode"`
	Animations      bool   `json:"animations"`
	ExportFormat    string `json:"exportFormat"`
	Language        string `json:"language"`
	APIKey          string `json:"apiKey"`
	Model           string `json:"model"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:        false,
		AutoSave:        true,
		DefaultCategory: "productivity",
		DefaultTone:     "professional",
		DefaultSize:     "medium",
		Notifications:   true,
		CompactMode:     false,
		Animations:      true,
		ExportFormat:    "pdf",
		Language:        "en",
		APIKey:          "",
		Model:           DefaultModel,
	}
}

// UnmarshalJSON decodes on top of DefaultSettings, so every field missing
// from data keeps its default.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	v := plain(DefaultSettings())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Settings(v)
	return nil
}

// Redacted returns a copy with the API key masked, for display.
func (s Settings) Redacted() Settings {
	if s.APIKey != "" {
		s.APIKey = "********"
	}
	return s
}
