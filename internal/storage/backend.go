package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// ErrNotFound is returned by a Backend when a key has never been written
// or has been removed.
var ErrNotFound = errors.New("key not found")

// ErrClosed is returned when operating on a closed backend.
var ErrClosed = errors.New("backend closed")

// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid storage key")

var validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Backend is the raw key/value medium underneath a Store.
// Values are opaque serialized documents.
type Backend interface {
	// Read returns the stored bytes for key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write replaces the value stored under key.
	Write(key string, data []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Close releases the medium.
	Close() error
}

// FileBackend stores each key as <dir>/<key>.json.
// A write goes to a temp file in the same directory and is renamed over the
// previous value, so a single key is never observed half-written.
type FileBackend struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// NewFileBackend creates the directory if needed and returns a backend rooted at it.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory holding the key files.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(key string) (string, error) {
	if !validKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

// Read returns the bytes stored under key.
func (b *FileBackend) Read(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	p, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Write atomically replaces the file for key.
func (b *FileBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	p, err := b.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Remove deletes the file for key.
func (b *FileBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	p, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Close marks the backend closed. Files stay on disk.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// MemoryBackend keeps values in a map. It is used by tests and by
// ephemeral runs that must not touch the home directory.
// Error injection is supported for exercising storage failure paths.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool

	// --- Error injection fields for testing ---

	// WriteErr is returned by every Write when non-nil.
	WriteErr error

	// ErrOnKey makes Read, Write and Remove fail for specific keys.
	ErrOnKey map[string]error

	// writes counts successful writes per key for test assertions.
	writes map[string]int
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data:     make(map[string][]byte),
		ErrOnKey: make(map[string]error),
		writes:   make(map[string]int),
	}
}

// Read returns a copy of the bytes stored under key.
func (b *MemoryBackend) Read(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	if err := b.ErrOnKey[key]; err != nil {
		return nil, err
	}
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Write stores a copy of data under key.
func (b *MemoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if b.WriteErr != nil {
		return b.WriteErr
	}
	if err := b.ErrOnKey[key]; err != nil {
		return err
	}
	v := make([]byte, len(data))
	copy(v, data)
	b.data[key] = v
	b.writes[key]++
	return nil
}

// Remove deletes key.
func (b *MemoryBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := b.ErrOnKey[key]; err != nil {
		return err
	}
	delete(b.data, key)
	return nil
}

// Close marks the backend closed.
func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Put seeds raw bytes under key, bypassing error injection.
func (b *MemoryBackend) Put(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = data
}

// Has reports whether key currently holds a value.
func (b *MemoryBackend) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.data[key]
	return ok
}

// Writes returns the number of successful writes to key.
func (b *MemoryBackend) Writes(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes[key]
}
