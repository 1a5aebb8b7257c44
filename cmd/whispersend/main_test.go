package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"whispersend/internal/api"
	"whispersend/internal/trigger"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("WHISPERSEND_NTFY_TOPIC", "")
	payload := map[string]any{
		"paths": map[string]any{
			"data_dir": filepath.Join(base, "data"),
			"log_dir":  filepath.Join(base, "logs"),
			"api_bind": "127.0.0.1:0",
		},
		"notifications": map[string]any{
			"console": false,
		},
	}
	encoded, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSendCommandRecordsHistory(t *testing.T) {
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"queued"}`))
	}))
	defer service.Close()

	configPath := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "config", "set-base-url", service.URL+"/"); err != nil {
		t.Fatalf("set-base-url failed: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "send", "--json", "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("send failed: %v\n%s", err, out)
	}
	var resp api.TriggerResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode send output: %v (%q)", err, out)
	}
	if resp.Outcome != "success" || resp.Signal.Message != "queued" {
		t.Fatalf("unexpected send result %+v", resp)
	}

	out, err = runCLI(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "Success") || !strings.Contains(out, "queued") {
		t.Fatalf("expected history row, got:\n%s", out)
	}
}

func TestSendCommandInvalidURLFails(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "send", "--via", "link", "https://example.com/")
	if err == nil {
		t.Fatal("expected error for rejected URL")
	}
	if !strings.Contains(out, "Invalid YouTube URL.") {
		t.Fatalf("expected feedback line, got %q", out)
	}
}

func TestConfigSetBaseURLRejectsBadScheme(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "config", "set-base-url", "ftp://host"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
	out, err := runCLI(t, "--config", configPath, "config", "get-base-url")
	if err != nil {
		t.Fatalf("get-base-url failed: %v", err)
	}
	if strings.TrimSpace(out) != "http://localhost:8080" {
		t.Fatalf("expected default base url, got %q", out)
	}
}

func TestMenusCommandListsRegistrations(t *testing.T) {
	out, err := runCLI(t, "menus")
	if err != nil {
		t.Fatalf("menus failed: %v", err)
	}
	for _, want := range []string{trigger.MenuSendPage, trigger.MenuSendLink, "*://*.youtube.com/live*", "*://youtu.be/*"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTableKeepsLongCells(t *testing.T) {
	long := "https://www.youtube.com/watch?v=abc123&list=PL0123456789abcdefghijklmnopqrstuvwxyz&index=42"
	out := renderTable([]string{"URL", "Message"}, [][]string{{long, "queued"}}, nil)
	if !strings.Contains(out, long) {
		t.Fatalf("expected full cell in table:\n%s", out)
	}
}

func TestStatusReportsStoppedDaemon(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "--addr", addr, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Not running") {
		t.Fatalf("expected not running, got %q", out)
	}
}

func TestSourceFor(t *testing.T) {
	tests := []struct {
		via  string
		kind trigger.Kind
	}{
		{"", trigger.KindToolbar},
		{"toolbar", trigger.KindToolbar},
		{"Page", trigger.KindPageMenu},
		{"link", trigger.KindLinkMenu},
	}
	for _, tt := range tests {
		src, err := sourceFor(tt.via, "https://youtu.be/x")
		if err != nil {
			t.Fatalf("sourceFor(%q) returned error: %v", tt.via, err)
		}
		if src.Kind() != tt.kind || src.CandidateURL() != "https://youtu.be/x" {
			t.Fatalf("sourceFor(%q) = %v %q", tt.via, src.Kind(), src.CandidateURL())
		}
	}
	if _, err := sourceFor("tab", "x"); err == nil {
		t.Fatal("expected error for unknown trigger")
	}
}

func TestOutcomeLabel(t *testing.T) {
	if got := outcomeLabel("timed_out"); got != "Timed Out" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := outcomeLabel(""); got != "Unknown" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Daemon", statusError, "Not running", false)
	if !strings.Contains(got, "Daemon:") || !strings.HasSuffix(got, "[ERROR] Not running") {
		t.Fatalf("unexpected status line %q", got)
	}
	colored := renderStatusLine("Daemon", statusOK, "Running", true)
	if !strings.HasPrefix(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected coloured line, got %q", colored)
	}
}

func TestDoctorCommandReportsChecks(t *testing.T) {
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer service.Close()

	configPath := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "config", "set-base-url", service.URL); err != nil {
		t.Fatalf("set-base-url failed: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Data directory", "Whisper Summary service", "HTTP 404", "Disabled"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in doctor output, got %q", want, out)
		}
	}
}

func TestLogsCommandPrintsTrailingLines(t *testing.T) {
	configPath := writeTestConfig(t)
	logDir := filepath.Join(filepath.Dir(configPath), "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("create log dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logDir, "whispersend.log"), []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "logs", "-n", "2")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if out != "second\nthird\n" {
		t.Fatalf("unexpected logs output %q", out)
	}
}
