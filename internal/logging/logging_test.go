package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "patchmenu.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONLinesWhenEnabled(t *testing.T) {
	path := useTempLog(t)

	Trace("menu.navigate", map[string]interface{}{"step": 1})
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file while tracing is disabled, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("menu.navigate", map[string]interface{}{"step": 1})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", data, err)
	}
	if entry.Event != "menu.navigate" || entry.Payload["step"] != float64(1) {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestErrorAppendsToLog(t *testing.T) {
	path := useTempLog(t)
	Error(nil)
	Error(errors.New("patch write failed"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "patch write failed") {
		t.Fatalf("expected error in log, got %q", data)
	}
}

func TestConfigureEmptyRestoresDefault(t *testing.T) {
	useTempLog(t)
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default log path, got %q", Path())
	}
}
