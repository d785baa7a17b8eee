package bootstrap_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artpar/actiongate/bootstrap"
)

const testSchemaJSON = `{
  "service_name": "SERVICE_1",
  "description": "bootstrap test service",
  "actions": [
    {
      "action_name": "action_1",
      "parameters": [
        {"param_name": "a_number_1", "type": "Uint32", "required": true}
      ],
      "outputs": []
    }
  ]
}`

func writeSchemaFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(path, []byte(testSchemaJSON), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func writeConfigFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "actiongate.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func sqliteConfig(t *testing.T, dir string) string {
	t.Helper()
	schemaPath := writeSchemaFile(t, dir)
	dbPath := filepath.Join(dir, "test.db")
	cfg := fmt.Sprintf(`schema:
  path: %s
decisions:
  enabled: true
database:
  driver: sqlite
  dsn: %s
logging:
  level: error
`, schemaPath, dbPath)
	return writeConfigFile(t, dir, cfg)
}

func TestBootstrap_Integration(t *testing.T) {
	configPath := sqliteConfig(t, t.TempDir())

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	// Verify components initialized
	if app.DB == nil {
		t.Error("DB should not be nil")
	}
	if app.HTTPServer == nil {
		t.Error("HTTPServer should not be nil")
	}
	if app.Holder == nil {
		t.Error("Holder should not be nil")
	}
	if app.Metrics != nil {
		t.Error("Metrics should be nil when disabled")
	}

	svc := app.Holder.Get()
	if svc.Name != "SERVICE_1" {
		t.Errorf("expected service SERVICE_1, got %q", svc.Name)
	}
}

func TestBootstrap_HTTPSurface(t *testing.T) {
	configPath := sqliteConfig(t, t.TempDir())

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	body := `{"action_name": "action_1", "a_number_1": 5}`
	req := httptest.NewRequest("POST", "/v1/validate/document", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/health", nil)
	rec = httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
}

func TestBootstrap_DatabaseMigration(t *testing.T) {
	configPath := sqliteConfig(t, t.TempDir())

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err = app.DB.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM validation_decisions").Scan(&count)
	if err != nil {
		t.Errorf("query validation_decisions table: %v", err)
	}
}

func TestBootstrap_GracefulShutdown(t *testing.T) {
	configPath := sqliteConfig(t, t.TempDir())

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	// Shutdown should complete without error
	if err := app.Shutdown(); err != nil {
		t.Errorf("shutdown error: %v", err)
	}

	// Verify DB is closed (should error on query)
	if _, err := app.DB.DB.Query("SELECT 1"); err == nil {
		t.Error("expected error querying closed database")
	}
}

func TestBootstrap_MemoryDriver(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchemaFile(t, dir)
	cfg := fmt.Sprintf(`schema:
  path: %s
decisions:
  enabled: true
database:
  driver: memory
logging:
  level: error
`, schemaPath)
	configPath := writeConfigFile(t, dir, cfg)

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	if app.DB != nil {
		t.Error("DB should be nil for memory driver")
	}

	// Journal endpoints are live with the in-memory store.
	req := httptest.NewRequest("GET", "/v1/decisions/recent", nil)
	rec := httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBootstrap_JournalDisabled(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchemaFile(t, dir)
	cfg := fmt.Sprintf(`schema:
  path: %s
logging:
  level: error
`, schemaPath)
	configPath := writeConfigFile(t, dir, cfg)

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	if app.DB != nil {
		t.Error("DB should be nil when journal disabled")
	}

	req := httptest.NewRequest("GET", "/v1/decisions/recent", nil)
	rec := httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 503 {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestBootstrap_SchemaReload(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchemaFile(t, dir)
	cfg := fmt.Sprintf(`schema:
  path: %s
logging:
  level: error
`, schemaPath)
	configPath := writeConfigFile(t, dir, cfg)

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	// action_2 is unknown before the reload
	body := `{"action_name": "action_2"}`
	req := httptest.NewRequest("POST", "/v1/validate/document", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)
	if rec.Code != 404 {
		t.Fatalf("before reload: expected 404, got %d", rec.Code)
	}

	updated := `{
  "service_name": "SERVICE_1",
  "actions": [
    {"action_name": "action_2", "parameters": [], "outputs": []}
  ]
}`
	if err := os.WriteFile(schemaPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite schema: %v", err)
	}

	if err := app.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	req = httptest.NewRequest("POST", "/v1/validate/document", strings.NewReader(body))
	rec = httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Errorf("after reload: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBootstrap_MissingSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := fmt.Sprintf(`schema:
  path: %s
`, filepath.Join(dir, "does-not-exist.json"))
	configPath := writeConfigFile(t, dir, cfg)

	if _, err := bootstrap.New(configPath); err == nil {
		t.Error("expected error for missing schema file")
	}
}

func TestBootstrap_MissingConfig(t *testing.T) {
	if _, err := bootstrap.New(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config and environment")
	}
}
