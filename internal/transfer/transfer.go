// Package transfer converts the whole library to and from a portable JSON
// document.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/promptshelf/internal/prompts"
)

// ExportDateLayout is the ISO-8601 layout used for exportDate.
const ExportDateLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrEmptyDocument is returned when there is nothing to import.
	ErrEmptyDocument = errors.New("no import data provided")

	// ErrInvalidDocument is returned when the document does not have the
	// export shape.
	ErrInvalidDocument = errors.New("invalid import document")
)

// Document is the export format. A nil field was absent from the source
// document and is left alone on import.
type Document struct {
	Prompts    []prompts.Prompt  `json:"prompts"`
	Settings   *prompts.Settings `json:"settings"`
	Favorites  []prompts.Prompt  `json:"favorites"`
	History    []prompts.Prompt  `json:"history"`
	ExportDate string            `json:"exportDate,omitempty"`
}

// Source is anything that can produce a snapshot of the library.
type Source interface {
	Snapshot() prompts.Snapshot
}

// Sink is anything that can replace library collections.
type Sink interface {
	Replace(prompts, favorites, history []prompts.Prompt, settings *prompts.Settings) bool
}

// Export gathers every collection into a Document stamped with now.
// It does not write anything.
func Export(src Source, now time.Time) Document {
	snap := src.Snapshot()
	settings := snap.Settings
	return Document{
		Prompts:    nonNil(snap.Prompts),
		Settings:   &settings,
		Favorites:  nonNil(snap.Favorites),
		History:    nonNil(snap.History),
		ExportDate: now.UTC().Format(ExportDateLayout),
	}
}

// Import fully replaces each collection present in doc. It reports whether
// every write succeeded. Writes are not rolled back on failure, so false
// means the stored data may be partially updated.
func Import(dst Sink, doc Document) bool {
	return dst.Replace(doc.Prompts, doc.Favorites, doc.History, doc.Settings)
}

// Present lists the collections doc carries, for reporting.
func (d Document) Present() []string {
	var out []string
	if d.Prompts != nil {
		out = append(out, "prompts")
	}
	if d.Settings != nil {
		out = append(out, "settings")
	}
	if d.Favorites != nil {
		out = append(out, "favorites")
	}
	if d.History != nil {
		out = append(out, "history")
	}
	return out
}

// documentSchema checks the outer shape only. Entries inside the
// collections are not validated.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "prompts":    {"type": ["array", "null"], "items": {"type": "object"}},
    "favorites":  {"type": ["array", "null"], "items": {"type": "object"}},
    "history":    {"type": ["array", "null"], "items": {"type": "object"}},
    "settings":   {"type": ["object", "null"]},
    "exportDate": {"type": ["string", "null"]}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("export.json", bytes.NewReader([]byte(documentSchema))); err != nil {
			schemaErr = fmt.Errorf("failed to load export schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("export.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("failed to compile export schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Decode reads and validates a Document. Unknown top-level fields are ignored.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read import data: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return Document{}, ErrEmptyDocument
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	s, err := compiledSchema()
	if err != nil {
		return Document{}, err
	}
	if err := s.Validate(raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// ReadFile decodes the document stored at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, fmt.Errorf("%w: %s does not exist", ErrEmptyDocument, path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile writes doc to path, creating parent directories.
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func nonNil(c []prompts.Prompt) []prompts.Prompt {
	if c == nil {
		return []prompts.Prompt{}
	}
	return c
}
