package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jackzampolin/promptshelf/internal/prompts"
)

func samplePrompt() prompts.Prompt {
	return prompts.Prompt{
		ID:        "0190f1e2-aaaa-7bbb-8ccc-1234567890ab",
		Content:   "Write a haiku about concurrency.",
		Title:     "Haiku: Go Edition!",
		Category:  "writing",
		Tone:      "creative",
		Size:      "short",
		Timestamp: 1_700_000_000_000,
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatPDF, "pdf": FormatPDF, "TXT": FormatTXT, "json": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for docx")
	}
}

func TestFileName(t *testing.T) {
	p := samplePrompt()
	if got := FileName(p, FormatTXT); got != "haiku-go-edition-567890ab.txt" {
		t.Errorf("unexpected file name %q", got)
	}

	p.Title = ""
	if got := FileName(p, FormatPDF); got != "prompt-567890ab.pdf" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestRender_Text(t *testing.T) {
	data, err := Render(samplePrompt(), FormatTXT)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "Haiku: Go Edition!\nCategory: writing | Tone: creative | Size: short\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n\nWrite a haiku about concurrency.\n") {
		t.Errorf("unexpected body:\n%s", out)
	}
}

func TestRender_JSON(t *testing.T) {
	data, err := Render(samplePrompt(), FormatJSON)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var got prompts.Prompt
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got != samplePrompt() {
		t.Errorf("expected %+v, got %+v", samplePrompt(), got)
	}
}

func TestRender_PDF(t *testing.T) {
	p := samplePrompt()
	p.Content = strings.Repeat("A long prompt line that needs wrapping. ", 200)

	data, err := Render(p, FormatPDF)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestPDFLayout_Paginates(t *testing.T) {
	p := samplePrompt()
	p.Content = strings.Repeat("line\n", 100)

	desc := pdfLayout(p)
	// 4 header lines plus 101 content lines over 45 lines per page.
	if len(desc.Pages) != 3 {
		t.Errorf("expected 3 pages, got %d", len(desc.Pages))
	}
	first := desc.Pages["1"].Content.Text[0]
	if first.Value != "Haiku: Go Edition!" || first.Font.Size != pdfTitleSize {
		t.Errorf("unexpected first line %+v", first)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, samplePrompt(), FormatTXT)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected file in %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "concurrency") {
		t.Error("export is missing the prompt content")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"a\n\nb", 10, []string{"a", "", "b"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"", 10, []string{""}},
	}
	for _, tt := range tests {
		if got := wrap(tt.in, tt.width); !slices.Equal(got, tt.want) {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
