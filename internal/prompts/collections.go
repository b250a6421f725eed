package prompts

// DefaultHistoryLimit caps the history collection.
const DefaultHistoryLimit = 50

// The helpers below never modify their input slices.

// PrependPrompt returns c with p at the front.
func PrependPrompt(c []Prompt, p Prompt) []Prompt {
	out := make([]Prompt, 0, len(c)+1)
	out = append(out, p)
	return append(out, c...)
}

// RemovePrompt returns c without any entry whose id is id.
func RemovePrompt(c []Prompt, id string) []Prompt {
	out := make([]Prompt, 0, len(c))
	for _, p := range c {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// IndexOf returns the position of id in c, or -1.
func IndexOf(c []Prompt, id string) int {
	for i, p := range c {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ToggleFavorite removes p from favs when a favorite with its id exists and
// prepends it otherwise.
func ToggleFavorite(favs []Prompt, p Prompt) []Prompt {
	if IndexOf(favs, p.ID) >= 0 {
		return RemovePrompt(favs, p.ID)
	}
	return PrependPrompt(favs, p)
}

// PushHistory moves p to the front of h, dropping any older entry with the
// same id, and trims the result to limit entries.
func PushHistory(h []Prompt, p Prompt, limit int) []Prompt {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out := PrependPrompt(RemovePrompt(h, p.ID), p)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clonePrompts(c []Prompt) []Prompt {
	out := make([]Prompt, len(c))
	copy(out, c)
	return out
}
