// Package prompts holds the prompt record model, the collection rules that
// tie prompts, favorites and history together, and the query engine.
package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyContent is returned when a draft has no content after trimming.
var ErrEmptyContent = errors.New("please enter a prompt content")

// ErrNotFound is returned when no prompt with the requested id exists.
var ErrNotFound = errors.New("prompt not found")

// Prompt is a stored user-authored prompt.
type Prompt struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Title     string `json:"title,omitempty"`
	Category  string `json:"category"`
	Tone      string `json:"tone"`
	Size      string `json:"size"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// UnmarshalJSON decodes a stored or imported prompt without rejecting
// entries written by other tools: scalar fields of the wrong JSON type are
// kept as their literal text and timestamps may be any JSON number or a
// numeric string. Fields that cannot be read are left empty.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Content   json.RawMessage `json:"content"`
		Title     json.RawMessage `json:"title"`
		Category  json.RawMessage `json:"category"`
		Tone      json.RawMessage `json:"tone"`
		Size      json.RawMessage `json:"size"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Prompt{
		ID:        looseString(raw.ID),
		Content:   looseString(raw.Content),
		Title:     looseString(raw.Title),
		Category:  looseString(raw.Category),
		Tone:      looseString(raw.Tone),
		Size:      looseString(raw.Size),
		Timestamp: looseMillis(raw.Timestamp),
	}
	return nil
}

// looseString returns a JSON string's value, or the literal text of any
// other non-null value.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// looseMillis reads an integer, a float such as 1.7e12, or a numeric
// string. Anything else is 0.
func looseMillis(raw json.RawMessage) int64 {
	text := looseString(raw)
	if text == "" {
		return 0
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

// Time returns the creation instant.
func (p Prompt) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// Draft is the user input a Prompt is created from.
type Draft struct {
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Size     string `json:"size,omitempty"`
}

// Validate rejects drafts whose content is blank.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// ApplyDefaults returns d with empty category, tone and size taken from s.
func (d Draft) ApplyDefaults(s Settings) Draft {
	if d.Category == "" {
		d.Category = s.DefaultCategory
	}
	if d.Tone == "" {
		d.Tone = s.DefaultTone
	}
	if d.Size == "" {
		d.Size = s.DefaultSize
	}
	return d
}

// NewPrompt builds a Prompt from draft with the given id and creation time.
func NewPrompt(d Draft, now time.Time, id string) Prompt {
	return Prompt{
		ID:        id,
		Content:   d.Content,
		Title:     d.Title,
		Category:  d.Category,
		Tone:      d.Tone,
		Size:      d.Size,
		Timestamp: now.UnixMilli(),
	}
}

// IDSource produces prompt ids. Every call must return a distinct value.
type IDSource func() string

// NewID returns a time-ordered UUIDv7. Ids generated within the same
// millisecond are still distinct and increasing.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
