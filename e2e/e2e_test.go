// Package e2e provides end-to-end tests for the complete validation flow.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artpar/actiongate/bootstrap"
)

const schemaV1 = `{
  "service_name": "SERVICE_1",
  "description": "end to end test service",
  "actions": [
    {
      "action_name": "action_1",
      "description": "first action",
      "parameters": [
        {"param_name": "a_number_1", "type": "Uint32", "required": true},
        {"param_name": "a_string_1", "type": "String", "required": false}
      ],
      "outputs": [
        {"param_name": "an_output_1", "type": "String"}
      ]
    }
  ]
}`

const schemaV2 = `{
  "service_name": "SERVICE_1",
  "description": "end to end test service",
  "actions": [
    {
      "action_name": "action_1",
      "parameters": [
        {"param_name": "a_number_1", "type": "Uint32", "required": true}
      ],
      "outputs": []
    },
    {
      "action_name": "action_2",
      "parameters": [
        {"param_name": "an_enum_1", "type": {"Enum": ["ON", "OFF"]}, "required": true}
      ],
      "outputs": []
    }
  ]
}`

// TestE2E_FullValidationFlow tests the complete validation flow:
// 1. Start the validation server
// 2. Validate documents and envelopes over HTTP
// 3. Read the schema back
// 4. Verify decisions reached the journal
func TestE2E_FullValidationFlow(t *testing.T) {
	app, cleanup := setupTestApp(t, "")
	defer cleanup()

	serverAddr := startServer(t, app)
	client := &http.Client{Timeout: 5 * time.Second}

	// Valid document
	resp := postJSON(t, client, "http://"+serverAddr+"/v1/validate/document",
		`{"action_name": "action_1", "a_number_1": 33}`)
	if resp.StatusCode != 200 {
		t.Fatalf("valid document: status = %d, want 200", resp.StatusCode)
	}
	var verdict map[string]interface{}
	decodeBody(t, resp, &verdict)
	if verdict["valid"] != true {
		t.Errorf("valid = %v, want true", verdict["valid"])
	}

	// Unknown action
	resp = postJSON(t, client, "http://"+serverAddr+"/v1/validate/document",
		`{"action_name": "action_9"}`)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown action: status = %d, want 404", resp.StatusCode)
	}
	decodeBody(t, resp, &verdict)
	errObj, ok := verdict["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object")
	}
	if errObj["reason"] != "action_not_found" {
		t.Errorf("reason = %v, want action_not_found", errObj["reason"])
	}

	// Valid envelope keeps its correlation id
	resp = postJSON(t, client, "http://"+serverAddr+"/v1/validate/envelope",
		`{"action_name": "action_1", "uuid": "corr-1", "parameters": [
			{"param_name": "a_number_1", "value": "33", "type": "Uint32"}
		]}`)
	if resp.StatusCode != 200 {
		t.Fatalf("valid envelope: status = %d, want 200", resp.StatusCode)
	}
	decodeBody(t, resp, &verdict)
	reply, ok := verdict["response"].(map[string]interface{})
	if !ok {
		t.Fatal("expected response envelope")
	}
	if reply["uuid"] != "corr-1" {
		t.Errorf("uuid = %v, want corr-1", reply["uuid"])
	}
	if reply["message"] != "accepted" {
		t.Errorf("message = %v, want accepted", reply["message"])
	}

	// Envelope with a mismatched kind tag fails the required check
	resp = postJSON(t, client, "http://"+serverAddr+"/v1/validate/envelope",
		`{"action_name": "action_1", "uuid": "corr-2", "parameters": [
			{"param_name": "a_number_1", "value": "33", "type": "Float"}
		]}`)
	if resp.StatusCode != 422 {
		t.Fatalf("mismatched envelope: status = %d, want 422", resp.StatusCode)
	}
	decodeBody(t, resp, &verdict)
	errObj, ok = verdict["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object")
	}
	if errObj["parameter"] != "a_number_1" {
		t.Errorf("parameter = %v, want a_number_1", errObj["parameter"])
	}

	// Schema is served back
	httpResp, err := client.Get("http://" + serverAddr + "/v1/schema")
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}
	var svc map[string]interface{}
	decodeBody(t, httpResp, &svc)
	if svc["service_name"] != "SERVICE_1" {
		t.Errorf("service_name = %v, want SERVICE_1", svc["service_name"])
	}

	// All four verdicts end up in the journal
	waitForDecisions(t, client, serverAddr, 4)
}

// TestE2E_SchemaHotReload tests that rewriting the schema file swaps the
// validator's view of the world without a restart.
func TestE2E_SchemaHotReload(t *testing.T) {
	app, schemaPath, cleanup := setupTestAppWithWatch(t)
	defer cleanup()

	serverAddr := startServer(t, app)
	client := &http.Client{Timeout: 5 * time.Second}

	// action_2 is unknown under the initial schema
	body := `{"action_name": "action_2", "an_enum_1": "ON"}`
	resp := postJSON(t, client, "http://"+serverAddr+"/v1/validate/document", body)
	if resp.StatusCode != 404 {
		t.Fatalf("before reload: status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	if err := os.WriteFile(schemaPath, []byte(schemaV2), 0644); err != nil {
		t.Fatalf("rewrite schema: %v", err)
	}

	// The file watcher delivers the new schema asynchronously
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp := postJSON(t, client, "http://"+serverAddr+"/v1/validate/document", body)
		code := resp.StatusCode
		resp.Body.Close()
		if code == 200 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("after reload: status = %d, want 200", code)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// TestE2E_HealthEndpoints tests health check endpoints.
func TestE2E_HealthEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, "")
	defer cleanup()

	serverAddr := startServer(t, app)
	client := &http.Client{Timeout: 5 * time.Second}

	tests := []struct {
		path   string
		status int
	}{
		{"/health", 200},
		{"/health/live", 200},
		{"/health/ready", 200},
		{"/version", 200},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := client.Get("http://" + serverAddr + tt.path)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

// TestE2E_MetricsEndpoint tests that validation traffic shows up on /metrics.
func TestE2E_MetricsEndpoint(t *testing.T) {
	app, cleanup := setupTestApp(t, "metrics:\n  enabled: true\n")
	defer cleanup()

	serverAddr := startServer(t, app)
	client := &http.Client{Timeout: 5 * time.Second}

	resp := postJSON(t, client, "http://"+serverAddr+"/v1/validate/document",
		`{"action_name": "action_1", "a_number_1": 1}`)
	resp.Body.Close()

	httpResp, err := client.Get("http://" + serverAddr + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", httpResp.StatusCode)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), "actiongate_validations_total") {
		t.Error("metrics output missing actiongate_validations_total")
	}
}

// Helper functions

func setupTestApp(t *testing.T, extraConfig string) (*bootstrap.App, func()) {
	t.Helper()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(schemaPath, []byte(schemaV1), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	app := newApp(t, dir, schemaPath, extraConfig)
	return app, func() { app.Shutdown() }
}

func setupTestAppWithWatch(t *testing.T) (*bootstrap.App, string, func()) {
	t.Helper()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(schemaPath, []byte(schemaV1), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	app := newApp(t, dir, schemaPath, "")
	return app, schemaPath, func() { app.Shutdown() }
}

func newApp(t *testing.T, dir, schemaPath, extraConfig string) *bootstrap.App {
	t.Helper()

	configContent := fmt.Sprintf(`
server:
  host: "127.0.0.1"

schema:
  path: "%s"
  watch: true

decisions:
  enabled: true
  batch_size: 1
  flush_interval: 1s

database:
  driver: sqlite
  dsn: "%s"

logging:
  level: error
  format: json
%s`, schemaPath, filepath.Join(dir, "test.db"), extraConfig)

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	app, err := bootstrap.New(configPath)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	return app
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func waitForDecisions(t *testing.T, client *http.Client, addr string, want int) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := client.Get("http://" + addr + "/v1/decisions/recent?limit=50")
		if err != nil {
			t.Fatalf("get decisions: %v", err)
		}
		var body map[string]interface{}
		decodeBody(t, resp, &body)

		count, _ := body["count"].(float64)
		if int(count) >= want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("journal has %d decisions, want at least %d", int(count), want)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func startServer(t *testing.T, app *bootstrap.App) string {
	t.Helper()

	// Find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	addr := listener.Addr().String()

	// Update server address
	app.HTTPServer.Addr = addr

	// Close the listener so server can use the port
	listener.Close()

	// Start server in goroutine
	go func() {
		if err := app.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// Log but don't fail - server might be shutting down
		}
	}()

	// Wait for server to be ready
	waitForServer(t, addr)

	return addr
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	client := &http.Client{Timeout: 100 * time.Millisecond}

	for i := 0; i < 50; i++ {
		resp, err := client.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("server at %s did not become ready", addr)
}
