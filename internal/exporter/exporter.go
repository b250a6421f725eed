// Package exporter writes a single prompt to a file as plain text, JSON or PDF.
package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jackzampolin/promptshelf/internal/prompts"
)

// Format is an export file format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatTXT, FormatJSON}

// ParseFormat validates s. An empty string means PDF, the settings default.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatTXT:
		return FormatTXT, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use pdf, txt or json)", s)
}

// Render returns the encoded prompt.
func Render(p prompts.Prompt, format Format) ([]byte, error) {
	switch format {
	case FormatTXT:
		return renderText(p), nil
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode prompt: %w", err)
		}
		return append(data, '\n'), nil
	case FormatPDF:
		return renderPDF(p)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// WriteFile renders p into dir and returns the written path.
func WriteFile(dir string, p prompts.Prompt, format Format) (string, error) {
	data, err := Render(p, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(p, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// FileName derives a file name from the prompt title, falling back to
// "prompt". The id keeps names from colliding.
func FileName(p prompts.Prompt, format Format) string {
	base := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(p.Title), "-"), "-")
	if base == "" {
		base = "prompt"
	}
	if len(base) > 60 {
		base = strings.TrimRight(base[:60], "-")
	}
	id := p.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	if id != "" {
		base += "-" + id
	}
	return base + "." + string(format)
}

// Header returns the descriptive lines printed above the content.
func Header(p prompts.Prompt) []string {
	title := p.Title
	if title == "" {
		title = "Prompt"
	}
	return []string{
		title,
		fmt.Sprintf("Category: %s | Tone: %s | Size: %s", p.Category, p.Tone, p.Size),
		"Created: " + p.Time().UTC().Format(time.RFC1123),
	}
}

func renderText(p prompts.Prompt) []byte {
	var buf bytes.Buffer
	for _, line := range Header(p) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.WriteString(p.Content)
	if !strings.HasSuffix(p.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
