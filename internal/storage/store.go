// Package storage persists the four prompt collections under stable keys.
//
// A Store never returns storage errors to its callers. Failed loads leave
// the caller's default untouched and failed saves report false; both are
// logged and counted.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jackzampolin/promptshelf/internal/metrics"
)

// Collection keys. These must stay stable so existing data keeps loading.
const (
	KeyPrompts   = "personal_prompt_generator_prompts"
	KeySettings  = "personal_prompt_generator_settings"
	KeyFavorites = "personal_prompt_generator_favorites"
	KeyHistory   = "personal_prompt_generator_history"
)

// Keys lists every collection key in a fixed order.
var Keys = []string{KeyPrompts, KeySettings, KeyFavorites, KeyHistory}

// Store serializes values to JSON on top of a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records writes and load fallbacks.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New wraps backend in a Store.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save serializes v and writes it under key. It reports whether the value
// was durably written.
func (s *Store) Save(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to serialize collection", "key", key, "error", err)
		s.metrics.StorageWrite(key, false)
		return false
	}
	if err := s.backend.Write(key, data); err != nil {
		s.logger.Error("failed to save collection", "key", key, "error", err)
		s.metrics.StorageWrite(key, false)
		return false
	}
	s.metrics.StorageWrite(key, true)
	return true
}

// Load reads key and decodes it into v, which must be a pointer holding the
// collection default. It reports whether stored data was applied; on false
// v is left as it was.
func (s *Store) Load(key string, v any) bool {
	data, err := s.backend.Read(key)
	if errors.Is(err, ErrNotFound) {
		s.metrics.StorageFallback(key, "missing")
		return false
	}
	if err != nil {
		s.logger.Error("failed to load collection", "key", key, "error", err)
		s.metrics.StorageFallback(key, "unavailable")
		return false
	}

	// Decode into a scratch value first so a corrupt document cannot
	// half-overwrite the default.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || string(raw) == "null" {
		if err == nil {
			err = errors.New("null document")
		}
		s.logger.Warn("stored collection is corrupt, using default", "key", key, "error", err)
		s.metrics.StorageFallback(key, "corrupt")
		return false
	}
	if err := decodeInto(raw, v); err != nil {
		s.logger.Warn("stored collection is corrupt, using default", "key", key, "error", err)
		s.metrics.StorageFallback(key, "corrupt")
		return false
	}
	return true
}

// Remove deletes keys. It reports whether every removal succeeded.
func (s *Store) Remove(keys ...string) bool {
	ok := true
	for _, key := range keys {
		if err := s.backend.Remove(key); err != nil {
			s.logger.Error("failed to remove collection", "key", key, "error", err)
			ok = false
		}
	}
	return ok
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// decodeInto unmarshals raw into a copy of *v and assigns it only on success.
// Struct targets start from their current value so fields absent from raw
// keep their defaults.
func decodeInto(raw json.RawMessage, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("load target must be a non-nil pointer, got %T", v)
	}
	tmp := reflect.New(rv.Elem().Type())
	if rv.Elem().Kind() == reflect.Struct {
		tmp.Elem().Set(rv.Elem())
	}
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}
