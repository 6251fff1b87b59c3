package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func parseEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON log output, got error: %v\nraw output: %s", err, buf.String())
	}
	return entry
}

func TestSetup_ReturnsJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, slog.LevelInfo)

	if l == nil {
		t.Fatal("expected non-nil logger")
	}

	l.Info("test message", slog.String("key", "value"))

	entry := parseEntry(t, &buf)
	if entry["msg"] != "test message" {
		t.Errorf("msg = %q, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %q, want %q", entry["key"], "value")
	}
	if entry["service"] != "posledger" {
		t.Errorf("service = %q, want %q", entry["service"], "posledger")
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in JSON log output")
	}
}

func TestSetup_IncludesLevelField(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, nil)

	l.Warn("warning test")

	entry := parseEntry(t, &buf)
	if entry["level"] != "WARN" {
		t.Errorf("level = %q, want %q", entry["level"], "WARN")
	}
}

// TestSetup_FiltersBelowLevel は指定レベル未満のログが出力されないことを検証する。
func TestSetup_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, slog.LevelWarn)

	l.Info("dropped")
	l.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below WARN, got %s", buf.String())
	}

	l.Error("kept")
	if !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Errorf("expected error log, got %s", buf.String())
	}
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, slog.LevelDebug)

	l.Debug("debug message")

	if parseEntry(t, &buf)["level"] != "DEBUG" {
		t.Errorf("expected DEBUG entry, got %s", buf.String())
	}
}

func TestSetup_MultipleAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, slog.LevelInfo)

	l.Info("record created",
		slog.String("entity", "order"),
		slog.Int64("id", 42),
		slog.String("request_id", "req-1"),
	)

	entry := parseEntry(t, &buf)
	if entry["entity"] != "order" {
		t.Errorf("entity = %q, want %q", entry["entity"], "order")
	}
	if entry["id"] != float64(42) {
		t.Errorf("id = %v, want %v", entry["id"], 42)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %q, want %q", entry["request_id"], "req-1")
	}
}

func TestSetupDefault_SetsGlobalLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	returned := SetupDefault(&buf, slog.LevelInfo)

	slog.Default().Info("global test", slog.String("test_key", "test_val"))

	entry := parseEntry(t, &buf)
	if entry["msg"] != "global test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "global test")
	}
	if entry["test_key"] != "test_val" {
		t.Errorf("test_key = %q, want %q", entry["test_key"], "test_val")
	}
	if returned != slog.Default() {
		t.Error("SetupDefault must return the installed default logger")
	}
}
