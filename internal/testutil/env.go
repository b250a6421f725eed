// Package testutil holds helpers shared by the server and endpoint tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/storage"
)

// NewLibrary opens a library over a fresh in-memory backend. The backend is
// returned so tests can inject write failures or inspect stored keys.
func NewLibrary(t *testing.T, opts ...prompts.Option) (*prompts.Library, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	lib, err := prompts.Open(storage.New(backend, storage.WithLogger(DiscardLogger())), opts...)
	if err != nil {
		t.Fatalf("failed to open library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib, backend
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FindFreePort finds an available TCP port and returns it as a string.
func FindFreePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return fmt.Sprintf("%d", listener.Addr().(*net.TCPAddr).Port), nil
}

// WaitForShutdown waits for a channel to receive a value or timeout.
func WaitForShutdown(done <-chan error, timeout time.Duration) error {
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for shutdown")
	}
}

// StartServer is a helper type for managing server lifecycle in tests.
// Usage:
//
//	ctx, cancel := context.WithCancel(ctx)
//	done := make(chan error, 1)
//	go func() { done <- srv.Start(ctx) }()
//	starter := testutil.StartServer{Cancel: cancel, Done: done}
//	t.Cleanup(starter.Stop)
type StartServer struct {
	Cancel context.CancelFunc
	Done   <-chan error
}

// Stop cancels the server context and waits for shutdown.
func (s *StartServer) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
	if s.Done != nil {
		<-s.Done
	}
}
