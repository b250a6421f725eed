package prompts

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/storage"
)

// Snapshot is a copy of every collection at one instant.
type Snapshot struct {
	Prompts   []Prompt `json:"prompts"`
	Settings  Settings `json:"settings"`
	Favorites []Prompt `json:"favorites"`
	History   []Prompt `json:"history"`
}

// AddResult describes a completed Add.
type AddResult struct {
	Prompt Prompt `json:"prompt"`
	// Persisted is false when any write failed. The in-memory collections
	// keep the new prompt for the rest of the session either way.
	Persisted bool `json:"persisted"`
}

// Library is the session's view of the store: an in-memory mirror of the
// four collections, written through to storage on every mutation.
// All methods are safe for concurrent use; operations run one at a time.
type Library struct {
	mu sync.Mutex

	store   *storage.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	newID          IDSource
	now            func() time.Time
	historyLimit   int
	cascadeDeletes bool

	prompts   []Prompt
	favorites []Prompt
	history   []Prompt
	settings  Settings
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.logger = l
		}
	}
}

// WithMetrics records mutations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(lib *Library) { lib.metrics = m }
}

// WithIDSource replaces the id generator.
func WithIDSource(src IDSource) Option {
	return func(lib *Library) {
		if src != nil {
			lib.newID = src
		}
	}
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(lib *Library) {
		if now != nil {
			lib.now = now
		}
	}
}

// WithHistoryLimit overrides the history cap.
func WithHistoryLimit(n int) Option {
	return func(lib *Library) {
		if n > 0 {
			lib.historyLimit = n
		}
	}
}

// WithCascadeFavorites makes Delete also drop the favorite copy of the
// deleted prompt. By default favorites are independent snapshots and
// survive deletion of their prompt.
func WithCascadeFavorites(enabled bool) Option {
	return func(lib *Library) { lib.cascadeDeletes = enabled }
}

// Open loads the four collections from store.
func Open(store *storage.Store, opts ...Option) (*Library, error) {
	lib := &Library{
		store:        store,
		logger:       slog.Default(),
		newID:        NewID,
		now:          time.Now,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(lib)
	}
	lib.reload()

	lib.logger.Debug("library opened",
		"prompts", len(lib.prompts),
		"favorites", len(lib.favorites),
		"history", len(lib.history))
	return lib, nil
}

// Close releases the underlying store.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Close()
}

// Reload replaces the in-memory mirror with what is currently stored.
func (l *Library) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reload()
}

func (l *Library) reload() {
	prompts := []Prompt{}
	l.store.Load(storage.KeyPrompts, &prompts)
	favorites := []Prompt{}
	l.store.Load(storage.KeyFavorites, &favorites)
	history := []Prompt{}
	l.store.Load(storage.KeyHistory, &history)
	settings := DefaultSettings()
	l.store.Load(storage.KeySettings, &settings)

	l.prompts = nonNil(prompts)
	l.favorites = nonNil(favorites)
	l.history = nonNil(history)
	l.settings = settings
}

// Add creates a prompt from draft, prepends it to the collection and
// records it in history.
func (l *Library) Add(d Draft) (AddResult, error) {
	if err := d.Validate(); err != nil {
		return AddResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p := NewPrompt(d, l.now(), l.newID())
	l.prompts = PrependPrompt(l.prompts, p)
	ok := l.store.Save(storage.KeyPrompts, l.prompts)

	l.history = PushHistory(l.history, p, l.historyLimit)
	if !l.store.Save(storage.KeyHistory, l.history) {
		ok = false
	}

	if !ok {
		l.logger.Warn("prompt added but not fully persisted", "id", p.ID)
	}
	l.metrics.Mutation("add")
	return AddResult{Prompt: p, Persisted: ok}, nil
}

// Delete removes the prompt with id. Deleting an unknown id changes
// nothing. It reports whether the resulting collections were persisted.
func (l *Library) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prompts = RemovePrompt(l.prompts, id)
	ok := l.store.Save(storage.KeyPrompts, l.prompts)

	if l.cascadeDeletes && IndexOf(l.favorites, id) >= 0 {
		l.favorites = RemovePrompt(l.favorites, id)
		if !l.store.Save(storage.KeyFavorites, l.favorites) {
			ok = false
		}
	}

	l.metrics.Mutation("delete")
	return ok
}

// ToggleFavorite adds p to favorites, or removes it if a favorite with the
// same id exists. It returns the new membership and whether the change
// was persisted.
func (l *Library) ToggleFavorite(p Prompt) (favorited, persisted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.toggleFavorite(p)
}

// ToggleFavoriteByID toggles the prompt with id. The prompt is looked up in
// the collection first and then among favorites, so orphaned favorites can
// still be removed.
func (l *Library) ToggleFavoriteByID(id string) (favorited, persisted bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var p Prompt
	if i := IndexOf(l.prompts, id); i >= 0 {
		p = l.prompts[i]
	} else if i := IndexOf(l.favorites, id); i >= 0 {
		p = l.favorites[i]
	} else {
		return false, false, ErrNotFound
	}
	favorited, persisted = l.toggleFavorite(p)
	return favorited, persisted, nil
}

func (l *Library) toggleFavorite(p Prompt) (bool, bool) {
	l.favorites = ToggleFavorite(l.favorites, p)
	ok := l.store.Save(storage.KeyFavorites, l.favorites)
	l.metrics.Mutation("toggle_favorite")
	return IndexOf(l.favorites, p.ID) >= 0, ok
}

// Clear erases every collection and resets settings to their defaults.
// Callers must obtain confirmation before calling it; it cannot be undone.
func (l *Library) Clear() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok := l.store.Remove(storage.Keys...)
	l.prompts = []Prompt{}
	l.favorites = []Prompt{}
	l.history = []Prompt{}
	l.settings = DefaultSettings()

	l.logger.Info("all data cleared", "persisted", ok)
	l.metrics.Mutation("clear")
	return ok
}

// UpdateSettings replaces the settings.
func (l *Library) UpdateSettings(s Settings) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings = s
	l.metrics.Mutation("update_settings")
	return l.store.Save(storage.KeySettings, l.settings)
}

// UpdateSettingsFunc applies fn to the current settings while holding the
// library lock, so concurrent read-modify-write updates are not lost. When
// fn returns an error nothing is changed and the error is returned.
func (l *Library) UpdateSettingsFunc(fn func(Settings) (Settings, error)) (Settings, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated, err := fn(l.settings)
	if err != nil {
		return l.settings, false, err
	}
	l.settings = updated
	l.metrics.Mutation("update_settings")
	return updated, l.store.Save(storage.KeySettings, l.settings), nil
}

// ResetSettings restores the default settings.
func (l *Library) ResetSettings() bool {
	return l.UpdateSettings(DefaultSettings())
}

// Replace fully replaces each non-nil collection through the store and
// then reloads the mirror from storage. It reports whether every write
// succeeded; writes that did succeed are kept either way.
func (l *Library) Replace(prompts, favorites, history []Prompt, settings *Settings) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok := true
	save := func(key string, v any) {
		if !l.store.Save(key, v) {
			ok = false
		}
	}
	if prompts != nil {
		save(storage.KeyPrompts, prompts)
	}
	if settings != nil {
		save(storage.KeySettings, *settings)
	}
	if favorites != nil {
		save(storage.KeyFavorites, favorites)
	}
	if history != nil {
		save(storage.KeyHistory, history)
	}

	l.reload()
	l.metrics.Mutation("import")
	return ok
}

// Snapshot returns a copy of every collection.
func (l *Library) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Prompts:   clonePrompts(l.prompts),
		Settings:  l.settings,
		Favorites: clonePrompts(l.favorites),
		History:   clonePrompts(l.history),
	}
}

// Prompts returns a copy of the prompt collection, newest first.
func (l *Library) Prompts() []Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clonePrompts(l.prompts)
}

// Favorites returns a copy of the favorites collection.
func (l *Library) Favorites() []Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clonePrompts(l.favorites)
}

// History returns a copy of the history, most recent first.
func (l *Library) History() []Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clonePrompts(l.history)
}

// Settings returns the current settings.
func (l *Library) Settings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// Get returns the prompt with id.
func (l *Library) Get(id string) (Prompt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := IndexOf(l.prompts, id); i >= 0 {
		return l.prompts[i], true
	}
	return Prompt{}, false
}

// IsFavorite reports whether id is in the favorites collection.
func (l *Library) IsFavorite(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return IndexOf(l.favorites, id) >= 0
}

func nonNil(c []Prompt) []Prompt {
	if c == nil {
		return []Prompt{}
	}
	return c
}
