package transfer

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/storage"
)

func openLibrary(t *testing.T) (*prompts.Library, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	lib, err := prompts.Open(storage.New(backend))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return lib, backend
}

func TestExport(t *testing.T) {
	lib, backend := openLibrary(t)
	res, _ := lib.Add(prompts.Draft{Content: "exported", Category: "writing"})
	lib.ToggleFavorite(res.Prompt)
	writesBefore := backend.Writes(storage.KeyPrompts)

	now := time.Date(2024, 3, 5, 10, 20, 30, 123_000_000, time.FixedZone("X", 3600))
	doc := Export(lib, now)

	if doc.ExportDate != "2024-03-05T09:20:30.123Z" {
		t.Errorf("unexpected exportDate %q", doc.ExportDate)
	}
	if len(doc.Prompts) != 1 || len(doc.Favorites) != 1 || len(doc.History) != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Settings == nil || *doc.Settings != prompts.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", doc.Settings)
	}
	if backend.Writes(storage.KeyPrompts) != writesBefore {
		t.Error("export must not write")
	}
}

func TestExportEmptyLibraryHasArrays(t *testing.T) {
	lib, _ := openLibrary(t)

	var buf bytes.Buffer
	if err := Encode(&buf, Export(lib, time.Now())); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"prompts": []`, `"favorites": []`, `"history": []`, `"settings": {`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	lib, _ := openLibrary(t)
	a, _ := lib.Add(prompts.Draft{Content: "first", Title: "One", Category: "coding", Tone: "formal", Size: "short"})
	lib.Add(prompts.Draft{Content: "second"})
	lib.ToggleFavorite(a.Prompt)
	s := lib.Settings()
	s.DarkMode = true
	lib.UpdateSettings(s)

	before := lib.Snapshot()

	var buf bytes.Buffer
	if err := Encode(&buf, Export(lib, time.Now())); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	doc, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !Import(lib, doc) {
		t.Fatal("Import returned false")
	}

	if after := lib.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("round trip changed the library:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestImportIntoFreshStore(t *testing.T) {
	src, _ := openLibrary(t)
	p1, _ := src.Add(prompts.Draft{Content: "one"})
	src.Add(prompts.Draft{Content: "two"})
	src.ToggleFavorite(p1.Prompt)
	s := src.Settings()
	s.DarkMode = true
	src.UpdateSettings(s)

	dst, _ := openLibrary(t)
	if n := len(dst.Prompts()); n != 0 {
		t.Fatalf("expected empty destination, got %d prompts", n)
	}

	if !Import(dst, Export(src, time.Now())) {
		t.Fatal("Import returned false")
	}
	got := dst.Prompts()
	if len(got) != 2 || got[0].Content != "two" || got[1].Content != "one" {
		t.Errorf("unexpected prompts %+v", got)
	}
	if !dst.Settings().DarkMode {
		t.Error("expected darkMode to be imported")
	}
	if !dst.IsFavorite(p1.Prompt.ID) {
		t.Error("expected favorite to be imported")
	}
}

func TestImportPartialDocument(t *testing.T) {
	lib, _ := openLibrary(t)
	lib.Add(prompts.Draft{Content: "existing"})

	doc, err := DecodeBytes([]byte(`{"settings":{"language":"es"},"extra":"ignored"}`))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if got := doc.Present(); len(got) != 1 || got[0] != "settings" {
		t.Errorf("expected only settings present, got %v", got)
	}
	if !Import(lib, doc) {
		t.Fatal("Import returned false")
	}

	if len(lib.Prompts()) != 1 {
		t.Error("absent prompts field must leave prompts untouched")
	}
	s := lib.Settings()
	if s.Language != "es" || s.Model != prompts.DefaultModel {
		t.Errorf("expected imported language with defaulted fields, got %+v", s)
	}
}

func TestImportEmptyArrayReplaces(t *testing.T) {
	lib, _ := openLibrary(t)
	lib.Add(prompts.Draft{Content: "will be replaced"})

	doc, err := DecodeBytes([]byte(`{"prompts":[]}`))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	Import(lib, doc)
	if len(lib.Prompts()) != 0 {
		t.Error("an empty prompts array should replace the collection")
	}
	if len(lib.History()) != 1 {
		t.Error("history was absent and should be untouched")
	}
}

func TestImportPartialFailure(t *testing.T) {
	lib, backend := openLibrary(t)
	backend.ErrOnKey[storage.KeyFavorites] = errors.New("quota exceeded")

	doc, _ := DecodeBytes([]byte(`{"prompts":[{"id":"a","content":"x","timestamp":1}],"favorites":[{"id":"a"}]}`))
	if Import(lib, doc) {
		t.Error("expected failure when one write fails")
	}
	if got := lib.Prompts(); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("successful write should remain applied, got %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyDocument},
		{"whitespace", "  \n ", ErrEmptyDocument},
		{"null", "null", ErrEmptyDocument},
		{"not json", "{oops", ErrInvalidDocument},
		{"array at top level", "[]", ErrInvalidDocument},
		{"prompts not an array", `{"prompts":"nope"}`, ErrInvalidDocument},
		{"settings not an object", `{"settings":[1]}`, ErrInvalidDocument},
		{"prompt entry not an object", `{"history":[1,2]}`, ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeAcceptsMalformedEntries(t *testing.T) {
	// Entries missing an id are accepted as-is.
	doc, err := DecodeBytes([]byte(`{"prompts":[{"content":"no id"},{"content":"no id either"}]}`))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if len(doc.Prompts) != 2 || doc.Prompts[0].ID != "" {
		t.Errorf("unexpected prompts %+v", doc.Prompts)
	}

	t.Run("wrong field types", func(t *testing.T) {
		doc, err := DecodeBytes([]byte(`{
			"prompts": [
				{"id": 1700000000000, "content": "numeric id"},
				{"id": "b", "content": "float timestamp", "timestamp": 1.7e12},
				{"id": "c", "content": true, "timestamp": "1700000000123"}
			],
			"favorites": [{"id": 42, "timestamp": {"nested": 1}}]
		}`))
		if err != nil {
			t.Fatalf("DecodeBytes failed: %v", err)
		}
		if len(doc.Prompts) != 3 {
			t.Fatalf("expected 3 prompts, got %d", len(doc.Prompts))
		}
		if got := doc.Prompts[0]; got.ID != "1700000000000" || got.Content != "numeric id" {
			t.Errorf("numeric id not kept: %+v", got)
		}
		if got := doc.Prompts[1].Timestamp; got != 1700000000000 {
			t.Errorf("float timestamp = %d", got)
		}
		if got := doc.Prompts[2]; got.Content != "true" || got.Timestamp != 1700000000123 {
			t.Errorf("string timestamp or bool content not kept: %+v", got)
		}
		if len(doc.Favorites) != 1 || doc.Favorites[0].ID != "42" || doc.Favorites[0].Timestamp != 0 {
			t.Errorf("unexpected favorites %+v", doc.Favorites)
		}
	})

	t.Run("imported as-is", func(t *testing.T) {
		lib, _ := openLibrary(t)
		doc, err := DecodeBytes([]byte(`{"prompts":[{"id":7,"content":"x","timestamp":1.5e3}]}`))
		if err != nil {
			t.Fatalf("DecodeBytes failed: %v", err)
		}
		if !Import(lib, doc) {
			t.Fatal("Import reported failure")
		}
		got := lib.Prompts()
		if len(got) != 1 || got[0].ID != "7" || got[0].Timestamp != 1500 {
			t.Errorf("unexpected library prompts %+v", got)
		}
	})
}

func TestFiles(t *testing.T) {
	lib, _ := openLibrary(t)
	lib.Add(prompts.Draft{Content: "on disk"})

	path := filepath.Join(t.TempDir(), "nested", "export.json")
	if err := WriteFile(path, Export(lib, time.Now())); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(doc.Prompts) != 1 || doc.Prompts[0].Content != "on disk" {
		t.Errorf("unexpected document %+v", doc)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument for missing file, got %v", err)
	}
}
