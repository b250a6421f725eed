package generate

import (
	"fmt"

	"github.com/jackzampolin/promptshelf/internal/catalog"
	"github.com/jackzampolin/promptshelf/internal/prompts"
)

// ComposeRequest builds the request that asks the model to write a prompt
// for draft's category, tone and size. Missing tags are filled from
// settings, and the API key and model come from settings too.
func ComposeRequest(cat *catalog.Catalog, d prompts.Draft, s prompts.Settings) Request {
	d = d.ApplyDefaults(s)

	var toneDesc, sizeDesc string
	if t, ok := cat.Tone(d.Tone); ok {
		toneDesc = t.Description
	}
	if sz, ok := cat.Size(d.Size); ok {
		sizeDesc = sz.Description
	}

	model := s.Model
	if model == "" {
		model = prompts.DefaultModel
	}

	return Request{
		APIKey: s.APIKey,
		Model:  model,
		SystemText: fmt.Sprintf("You are an assistant that composes high-quality prompts for AI models. "+
			"Respect the requested tone (%s: %s) and target length (%s: %s). Output only the prompt text.",
			d.Tone, toneDesc, d.Size, sizeDesc),
		UserText: fmt.Sprintf("Compose an AI prompt for the %q category. "+
			"If relevant, adapt to this draft or idea provided by the user (may be empty):\n\n%s",
			d.Category, d.Content),
	}
}
