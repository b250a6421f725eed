package prompts

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jackzampolin/promptshelf/internal/storage"
)

// fixedClock returns the same instant on every call, so ids must be unique
// without help from the clock.
func fixedClock() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func newTestLibrary(t *testing.T, opts ...Option) (*Library, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	lib, err := Open(storage.New(backend), opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return lib, backend
}

func mustAdd(t *testing.T, lib *Library, d Draft) Prompt {
	t.Helper()
	res, err := lib.Add(d)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return res.Prompt
}

func TestLibrary_Open(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		lib, _ := newTestLibrary(t)
		snap := lib.Snapshot()
		if len(snap.Prompts) != 0 || len(snap.Favorites) != 0 || len(snap.History) != 0 {
			t.Errorf("expected empty collections, got %+v", snap)
		}
		if snap.Settings != DefaultSettings() {
			t.Errorf("expected default settings, got %+v", snap.Settings)
		}
	})

	t.Run("corrupt collections fall back to defaults", func(t *testing.T) {
		backend := storage.NewMemoryBackend()
		backend.Put(storage.KeyPrompts, []byte("not json"))
		backend.Put(storage.KeySettings, []byte(`{"darkMode":true}`))
		lib, err := Open(storage.New(backend))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if got := lib.Prompts(); got == nil || len(got) != 0 {
			t.Errorf("expected empty prompts, got %#v", got)
		}
		s := lib.Settings()
		if !s.DarkMode {
			t.Error("expected stored darkMode to load")
		}
		if s.Model != DefaultModel || !s.AutoSave {
			t.Errorf("absent settings fields should default, got %+v", s)
		}
	})
}

func TestLibrary_Add(t *testing.T) {
	lib, backend := newTestLibrary(t)

	res, err := lib.Add(Draft{Content: "Write a haiku", Category: "writing", Tone: "creative", Size: "short"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !res.Persisted {
		t.Error("expected add to persist")
	}

	got := lib.Prompts()
	if len(got) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(got))
	}
	p := got[0]
	if p.Content != "Write a haiku" {
		t.Errorf("content changed: %q", p.Content)
	}
	if p.ID == "" || p.Timestamp == 0 {
		t.Errorf("id and timestamp should be populated: %+v", p)
	}
	if h := lib.History(); len(h) != 1 || h[0].ID != p.ID {
		t.Errorf("expected history of 1 with the new prompt, got %+v", h)
	}
	if backend.Writes(storage.KeyPrompts) != 1 || backend.Writes(storage.KeyHistory) != 1 {
		t.Error("expected one write each for prompts and history")
	}
}

func TestLibrary_AddEmptyContent(t *testing.T) {
	lib, backend := newTestLibrary(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := lib.Add(Draft{Content: content}); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Add(%q): expected ErrEmptyContent, got %v", content, err)
		}
	}
	if len(lib.Prompts()) != 0 || backend.Has(storage.KeyPrompts) {
		t.Error("rejected drafts must not be stored")
	}
}

func TestLibrary_AddPersistFailure(t *testing.T) {
	lib, backend := newTestLibrary(t)
	backend.WriteErr = errors.New("quota exceeded")

	res, err := lib.Add(Draft{Content: "still kept"})
	if err != nil {
		t.Fatalf("storage failure must not surface as an error: %v", err)
	}
	if res.Persisted {
		t.Error("expected Persisted=false")
	}
	if len(lib.Prompts()) != 1 {
		t.Error("in-memory collection should keep the prompt")
	}
}

func TestLibrary_UniqueIDsSameMillisecond(t *testing.T) {
	lib, _ := newTestLibrary(t, WithClock(fixedClock))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p := mustAdd(t, lib, Draft{Content: fmt.Sprintf("prompt %d", i)})
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestLibrary_HistoryBound(t *testing.T) {
	lib, _ := newTestLibrary(t)

	var added []Prompt
	for i := 0; i < 55; i++ {
		added = append(added, mustAdd(t, lib, Draft{Content: fmt.Sprintf("prompt %d", i)}))
	}

	h := lib.History()
	if len(h) != 50 {
		t.Fatalf("expected 50 history entries, got %d", len(h))
	}
	if h[0].ID != added[54].ID {
		t.Error("most recent prompt should be first")
	}
	// The five oldest were evicted.
	for _, p := range added[:5] {
		if IndexOf(h, p.ID) >= 0 {
			t.Errorf("prompt %q should have been evicted", p.Content)
		}
	}
	if h[49].ID != added[5].ID {
		t.Errorf("oldest kept entry should be prompt 5, got %q", h[49].Content)
	}
}

func TestLibrary_Delete(t *testing.T) {
	lib, _ := newTestLibrary(t)
	a := mustAdd(t, lib, Draft{Content: "a"})
	b := mustAdd(t, lib, Draft{Content: "b"})

	if !lib.Delete(a.ID) {
		t.Fatal("Delete returned false")
	}
	once := lib.Prompts()

	lib.Delete(a.ID)
	lib.Delete("does-not-exist")
	twice := lib.Prompts()

	if !slices.Equal(once, twice) {
		t.Errorf("delete is not idempotent: %+v vs %+v", once, twice)
	}
	if len(twice) != 1 || twice[0].ID != b.ID {
		t.Errorf("expected only b to remain, got %+v", twice)
	}
}

func TestLibrary_DeleteFavorites(t *testing.T) {
	t.Run("orphaned favorite preserved by default", func(t *testing.T) {
		lib, _ := newTestLibrary(t)
		p := mustAdd(t, lib, Draft{Content: "keep me"})
		lib.ToggleFavorite(p)

		lib.Delete(p.ID)
		if !lib.IsFavorite(p.ID) {
			t.Error("favorite copy should survive deletion")
		}
	})

	t.Run("cascade removes favorite", func(t *testing.T) {
		lib, backend := newTestLibrary(t, WithCascadeFavorites(true))
		p := mustAdd(t, lib, Draft{Content: "drop me"})
		lib.ToggleFavorite(p)

		lib.Delete(p.ID)
		if lib.IsFavorite(p.ID) {
			t.Error("favorite should be removed with cascade enabled")
		}
		if backend.Writes(storage.KeyFavorites) != 2 {
			t.Errorf("expected favorites to be persisted twice, got %d", backend.Writes(storage.KeyFavorites))
		}
	})
}

func TestLibrary_ToggleFavorite(t *testing.T) {
	lib, _ := newTestLibrary(t)
	a := mustAdd(t, lib, Draft{Content: "a"})

	fav, ok := lib.ToggleFavorite(a)
	if !fav || !ok {
		t.Fatalf("expected favorited and persisted, got %v %v", fav, ok)
	}
	if f := lib.Favorites(); len(f) != 1 || f[0] != a {
		t.Errorf("expected a in favorites, got %+v", f)
	}

	fav, _ = lib.ToggleFavorite(a)
	if fav {
		t.Error("second toggle should unfavorite")
	}
	if len(lib.Favorites()) != 0 {
		t.Error("favorites should be back to empty")
	}
}

func TestLibrary_ToggleFavoriteByID(t *testing.T) {
	lib, _ := newTestLibrary(t)
	p := mustAdd(t, lib, Draft{Content: "p"})

	if _, _, err := lib.ToggleFavoriteByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	fav, _, err := lib.ToggleFavoriteByID(p.ID)
	if err != nil || !fav {
		t.Fatalf("expected favorite, got %v %v", fav, err)
	}

	// An orphaned favorite can still be toggled off.
	lib.Delete(p.ID)
	fav, _, err = lib.ToggleFavoriteByID(p.ID)
	if err != nil || fav {
		t.Errorf("expected orphan to be unfavorited, got %v %v", fav, err)
	}
}

func TestLibrary_Clear(t *testing.T) {
	lib, backend := newTestLibrary(t)
	p := mustAdd(t, lib, Draft{Content: "p"})
	lib.ToggleFavorite(p)
	s := DefaultSettings()
	s.DarkMode = true
	lib.UpdateSettings(s)

	if !lib.Clear() {
		t.Fatal("Clear returned false")
	}
	snap := lib.Snapshot()
	if len(snap.Prompts)+len(snap.Favorites)+len(snap.History) != 0 {
		t.Errorf("expected empty collections, got %+v", snap)
	}
	if snap.Settings != DefaultSettings() {
		t.Error("settings should be reset")
	}
	for _, key := range storage.Keys {
		if backend.Has(key) {
			t.Errorf("key %s should be erased", key)
		}
	}
}

func TestLibrary_Settings(t *testing.T) {
	lib, backend := newTestLibrary(t)

	s := lib.Settings()
	s.DefaultTone = "humorous"
	s.APIKey = "secret"
	if !lib.UpdateSettings(s) {
		t.Fatal("UpdateSettings returned false")
	}

	reopened, err := Open(storage.New(backend))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := reopened.Settings(); got.DefaultTone != "humorous" || got.APIKey != "secret" {
		t.Errorf("settings not persisted: %+v", got)
	}

	lib.ResetSettings()
	if lib.Settings() != DefaultSettings() {
		t.Error("ResetSettings should restore defaults")
	}
}

func TestLibrary_UpdateSettingsFunc(t *testing.T) {
	t.Run("concurrent increments are not lost", func(t *testing.T) {
		lib, _ := newTestLibrary(t)
		base := lib.Settings()

		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lib.UpdateSettingsFunc(func(s Settings) (Settings, error) {
					s.Language += "x"
					return s, nil
				})
			}()
		}
		wg.Wait()

		if got := lib.Settings().Language; len(got) != len(base.Language)+n {
			t.Errorf("expected %d appended updates, got language %q", n, got)
		}
	})

	t.Run("error leaves settings unchanged", func(t *testing.T) {
		lib, backend := newTestLibrary(t)
		before := backend.Writes(storage.KeySettings)

		boom := errors.New("bad patch")
		got, ok, err := lib.UpdateSettingsFunc(func(s Settings) (Settings, error) {
			s.DarkMode = true
			return s, boom
		})
		if !errors.Is(err, boom) || ok {
			t.Fatalf("expected bad patch error, got ok=%v err=%v", ok, err)
		}
		if got.DarkMode || lib.Settings().DarkMode {
			t.Error("settings should be unchanged after an error")
		}
		if backend.Writes(storage.KeySettings) != before {
			t.Error("nothing should be written after an error")
		}
	})
}

func TestLibrary_Replace(t *testing.T) {
	lib, backend := newTestLibrary(t)
	existing := mustAdd(t, lib, Draft{Content: "existing"})

	incoming := []Prompt{{ID: "x", Content: "imported", Timestamp: 1}}
	if !lib.Replace(nil, incoming, nil, nil) {
		t.Fatal("Replace returned false")
	}
	if got := lib.Prompts(); len(got) != 1 || got[0].ID != existing.ID {
		t.Errorf("absent field must leave prompts untouched, got %+v", got)
	}
	if got := lib.Favorites(); len(got) != 1 || got[0].ID != "x" {
		t.Errorf("favorites should be replaced, got %+v", got)
	}

	// Partial failure keeps the writes that succeeded.
	backend.ErrOnKey[storage.KeyHistory] = errors.New("quota")
	s := DefaultSettings()
	s.Language = "fr"
	if lib.Replace(incoming, nil, incoming, &s) {
		t.Error("Replace should report failure")
	}
	if got := lib.Prompts(); len(got) != 1 || got[0].ID != "x" {
		t.Errorf("prompts write should have been applied, got %+v", got)
	}
	if lib.Settings().Language != "fr" {
		t.Error("settings write should have been applied")
	}
}

func TestLibrary_ReturnsCopies(t *testing.T) {
	lib, _ := newTestLibrary(t)
	mustAdd(t, lib, Draft{Content: "original"})

	got := lib.Prompts()
	got[0].Content = "mutated"

	if lib.Prompts()[0].Content != "original" {
		t.Error("callers must not be able to mutate the mirror")
	}
}

func TestLibrary_ConcurrentAdds(t *testing.T) {
	lib, _ := newTestLibrary(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lib.Add(Draft{Content: fmt.Sprintf("p%d", i)})
		}(i)
	}
	wg.Wait()

	if n := len(lib.Prompts()); n != 20 {
		t.Errorf("expected 20 prompts, got %d", n)
	}
}

func TestLibrary_FileBackendReopen(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	lib, _ := Open(storage.New(b))
	p := mustAdd(t, lib, Draft{Content: "durable", Category: "coding"})
	lib.ToggleFavorite(p)
	lib.Close()

	b2, _ := storage.NewFileBackend(dir)
	lib2, _ := Open(storage.New(b2))
	defer lib2.Close()

	if got, ok := lib2.Get(p.ID); !ok || got != p {
		t.Errorf("expected %+v after reopen, got %+v", p, got)
	}
	if !lib2.IsFavorite(p.ID) {
		t.Error("favorite should survive reopen")
	}
}
