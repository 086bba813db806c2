package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/sources"
)

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	isolate(t)
	logging.DisableLoggingForTest(t)

	if config == nil {
		config = &Config{OverridesPath: filepath.Join(t.TempDir(), "servers.yaml")}
	}
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithConfig(config), WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Client_Singleton verifies that Client() returns the same instance.
func TestApp_Client_Singleton(t *testing.T) {
	app := newTestApp(t, nil)

	c1, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}
	c2, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed on second call: %v", err)
	}
	if c1 != c2 {
		t.Error("Client() returned different instances")
	}

	// the embedded catalog is loaded by the first call
	if len(c1.Servers()) == 0 {
		t.Error("Client() returned an empty server list")
	}
}

// TestApp_Client_ThreadSafe verifies concurrent Client() calls create one instance.
func TestApp_Client_ThreadSafe(t *testing.T) {
	app := newTestApp(t, nil)

	const goroutines = 10
	clients := make([]toolmap.Client, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := app.Client()
			if err != nil {
				t.Errorf("Client() failed: %v", err)
				return
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if clients[i] != clients[0] {
			t.Fatal("concurrent Client() calls returned different instances")
		}
	}
}

// TestApp_ClientUsesConfig verifies the catalog, overrides and active set come from config.
func TestApp_ClientUsesConfig(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	overridesPath := filepath.Join(dir, "servers.yaml")
	writeTestFile(t, catalogPath, "servers:\n  - key: a\n    command: run-a\n  - key: b\n    command: run-b\n")
	writeTestFile(t, overridesPath, "servers:\n  - key: b\n    command: my-b\n")

	app := newTestApp(t, &Config{
		CatalogPath:   catalogPath,
		OverridesPath: overridesPath,
		ActiveServers: []string{"b"},
	})

	c, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	list := c.Servers()
	if len(list) != 2 {
		t.Fatalf("Servers() = %d entries, want 2", len(list))
	}
	if list[1].Command != "my-b" || !list[1].IsActive {
		t.Errorf("override not applied: %+v", list[1])
	}
	if list[0].IsActive {
		t.Errorf("catalog entry should stay inactive: %+v", list[0])
	}
}

// TestApp_ClientWithOptions verifies custom options are applied last and give a new instance.
func TestApp_ClientWithOptions(t *testing.T) {
	app := newTestApp(t, nil)

	shared, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	custom, err := app.ClientWithOptions(toolmap.WithActiveSource(sources.StaticActive("x")))
	if err != nil {
		t.Fatalf("ClientWithOptions() failed: %v", err)
	}
	defer custom.Close()

	if custom == shared {
		t.Error("ClientWithOptions() returned the shared instance")
	}
	if !custom.Snapshot().Active.Contains("x") {
		t.Error("custom active source not applied")
	}

	if _, err := app.ClientWithOptions(toolmap.WithLoadTimeout(-1)); err == nil {
		t.Error("ClientWithOptions() with an invalid option should fail")
	}
}

// TestApp_WithOptions verifies functional options.
func TestApp_WithOptions(t *testing.T) {
	isolate(t)
	config := &Config{Format: "yaml", Connect: []string{"time"}}
	logger := zerolog.Nop()

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(config), WithLogger(&logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Config() != config {
		t.Error("WithConfig() not applied")
	}
	if app.Logger() != &logger {
		t.Error("WithLogger() not applied")
	}
	if app.OutputFormat() != "yaml" {
		t.Errorf("OutputFormat() = %s, want yaml", app.OutputFormat())
	}
	if keys := app.ConnectKeys(); len(keys) != 1 || keys[0] != "time" {
		t.Errorf("ConnectKeys() = %v", keys)
	}
}

// TestApp_Shutdown verifies shutdown closes the client once.
func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t, nil)

	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() without a client failed: %v", err)
	}

	c, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}

	// a closed client refreshes without committing
	if c.Refresh(context.Background()).Committed {
		t.Error("client still refreshing after Shutdown()")
	}
}

// TestApp_Execute runs the CLI end to end against files on disk.
func TestApp_Execute(t *testing.T) {
	dir := t.TempDir()
	overridesPath := filepath.Join(dir, "servers.yaml")
	writeTestFile(t, overridesPath, "servers:\n  - key: mine\n    command: run-mine\n")

	app := newTestApp(t, &Config{OverridesPath: overridesPath})

	if err := app.Execute(context.Background(), []string{"validate", "-o", "json"}); err != nil {
		t.Errorf("validate failed: %v", err)
	}
	if err := app.Execute(context.Background(), []string{"show", "mine", "-o", "json", "--log-level", "error"}); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if app.Config().LogLevel != "error" {
		t.Errorf("--log-level not applied, got %q", app.Config().LogLevel)
	}
	if err := app.Execute(context.Background(), []string{"show", "nope"}); err == nil {
		t.Error("show of an unknown server should fail")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
