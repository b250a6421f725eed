package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/config"
	"github.com/jackzampolin/promptshelf/internal/server/endpoints"
	"github.com/jackzampolin/promptshelf/internal/testutil"
)

func TestServer_FullLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	port, err := testutil.FindFreePort()
	if err != nil {
		t.Fatalf("FindFreePort: %v", err)
	}
	lib := newTestLibrary(t)
	srv, err := New(Config{Host: "127.0.0.1", Port: port, Library: lib, Logger: testutil.DiscardLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Start server in background
	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	client := api.NewClient("http://127.0.0.1:" + port)
	if err := client.WaitHealthy(ctx, 5*time.Second, 20*time.Millisecond); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	t.Run("second start fails", func(t *testing.T) {
		if err := srv.Start(ctx); err == nil {
			t.Error("expected error starting a running server")
		}
	})

	t.Run("api round trip", func(t *testing.T) {
		var created endpoints.CreatePromptResponse
		if err := client.Post(ctx, "/api/prompts", endpoints.CreatePromptRequest{Content: "hello"}, &created); err != nil {
			t.Fatalf("create: %v", err)
		}
		var list endpoints.ListPromptsResponse
		if err := client.Get(ctx, "/api/prompts", &list); err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list.Prompts) != 1 || list.Prompts[0].ID != created.Prompt.ID {
			t.Errorf("unexpected list %+v", list)
		}
		err := client.Get(ctx, "/api/prompts/unknown", nil)
		if !api.IsStatus(err, http.StatusNotFound) {
			t.Errorf("expected 404, got %v", err)
		}
	})

	// Shutdown server
	serverCancel()
	if err := testutil.WaitForShutdown(serverErr, 35*time.Second); err != nil {
		t.Errorf("shutdown: %v", err)
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func TestServer_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	_, port, _ := net.SplitHostPort(l.Addr().String())

	srv, _ := New(Config{Host: "127.0.0.1", Port: port, Library: newTestLibrary(t)})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Start(ctx); err == nil {
		t.Fatal("expected error when the port is taken")
	}
	if srv.IsRunning() {
		t.Error("server should not be running after a failed start")
	}
}

func TestServer_RateReload(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("generation:\n  rate_per_minute: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mgr, err := config.NewManager(cfgFile, "")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	srv, err := New(Config{Library: newTestLibrary(t), ConfigManager: mgr})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.limiter.Burst() != 1 {
		t.Errorf("burst = %d, want 1", srv.limiter.Burst())
	}

	mgr.WatchConfig()
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(cfgFile, []byte("generation:\n  rate_per_minute: 12\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && srv.limiter.Burst() != 12 {
		time.Sleep(20 * time.Millisecond)
	}
	if srv.limiter.Burst() != 12 {
		t.Errorf("burst = %d after reload, want 12", srv.limiter.Burst())
	}
}
