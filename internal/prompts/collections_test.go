package prompts

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

func TestNewPrompt(t *testing.T) {
	d := Draft{Content: "  spaced  ", Title: "t", Category: "fun", Tone: "humorous", Size: "short"}
	now := time.UnixMilli(1234)

	p := NewPrompt(d, now, "id-1")
	want := Prompt{ID: "id-1", Content: "  spaced  ", Title: "t", Category: "fun", Tone: "humorous", Size: "short", Timestamp: 1234}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
	if !p.Time().Equal(now) {
		t.Errorf("Time() = %v, want %v", p.Time(), now)
	}
}

func TestDraft_ApplyDefaults(t *testing.T) {
	s := DefaultSettings()
	d := Draft{Content: "x", Tone: "formal"}.ApplyDefaults(s)
	if d.Category != "productivity" || d.Tone != "formal" || d.Size != "medium" {
		t.Errorf("unexpected draft: %+v", d)
	}
}

func TestToggleFavorite_Symmetric(t *testing.T) {
	p := Prompt{ID: "p", Content: "x"}
	sets := [][]Prompt{
		nil,
		{},
		{{ID: "a"}, {ID: "b"}},
	}
	for _, favs := range sets {
		before := slices.Clone(favs)
		got := ToggleFavorite(ToggleFavorite(favs, p), p)
		if !slices.Equal(got, before) {
			t.Errorf("toggle twice on %v gave %v", before, got)
		}
		if !slices.Equal(favs, before) {
			t.Error("input was modified")
		}
	}
}

func TestToggleFavorite_PrependsCopy(t *testing.T) {
	favs := []Prompt{{ID: "a"}}
	got := ToggleFavorite(favs, Prompt{ID: "b", Content: "frozen"})
	if len(got) != 2 || got[0].ID != "b" || got[0].Content != "frozen" {
		t.Errorf("expected b prepended, got %+v", got)
	}
}

func TestPushHistory(t *testing.T) {
	t.Run("moves existing id to front", func(t *testing.T) {
		h := []Prompt{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		got := PushHistory(h, Prompt{ID: "c", Content: "new"}, 50)
		if !slices.Equal(ids(got), []string{"c", "a", "b"}) {
			t.Errorf("unexpected order %v", ids(got))
		}
		if got[0].Content != "new" {
			t.Error("front entry should be the pushed prompt")
		}
	})

	t.Run("caps length", func(t *testing.T) {
		h := []Prompt{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		got := PushHistory(h, Prompt{ID: "d"}, 3)
		if !slices.Equal(ids(got), []string{"d", "a", "b"}) {
			t.Errorf("unexpected order %v", ids(got))
		}
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		var h []Prompt
		for i := 0; i < 60; i++ {
			h = PushHistory(h, Prompt{ID: string(rune('A' + i))}, 0)
		}
		if len(h) != DefaultHistoryLimit {
			t.Errorf("expected %d entries, got %d", DefaultHistoryLimit, len(h))
		}
	})
}

func TestRemovePrompt(t *testing.T) {
	c := []Prompt{{ID: "a"}, {ID: "b"}}
	got := RemovePrompt(c, "a")
	if !slices.Equal(ids(got), []string{"b"}) {
		t.Errorf("unexpected result %v", ids(got))
	}
	if !slices.Equal(ids(RemovePrompt(got, "missing")), []string{"b"}) {
		t.Error("removing a missing id should be a no-op")
	}
	if len(c) != 2 {
		t.Error("input was modified")
	}
}

func TestSettings_UnmarshalDefaults(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"darkMode":true,"language":"de"}`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := DefaultSettings()
	want.DarkMode = true
	want.Language = "de"
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
}

func TestSettings_JSONNames(t *testing.T) {
	data, err := json.Marshal(DefaultSettings())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)
	for _, key := range []string{"darkMode", "autoSave", "defaultCategory", "defaultTone", "defaultSize",
		"notifications", "compactMode", "animations", "exportFormat", "language", "apiKey", "model"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON field %q", key)
		}
	}
}

func TestSettings_Redacted(t *testing.T) {
	s := DefaultSettings()
	if s.Redacted().APIKey != "" {
		t.Error("empty key should stay empty")
	}
	s.APIKey = "secret"
	if s.Redacted().APIKey == "secret" {
		t.Error("key should be masked")
	}
	if s.APIKey != "secret" {
		t.Error("Redacted must not modify the receiver")
	}
}
