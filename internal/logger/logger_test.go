package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("page parsed", Fields{"page": 3, "records": 20})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("unexpected level: %v", entry["level"])
	}
	if entry["message"] != "page parsed" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields missing: %v", entry)
	}
	if fields["page"] != float64(3) {
		t.Errorf("unexpected page field: %v", fields["page"])
	}
	if entry["timestamp"] == "" {
		t.Error("timestamp missing")
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("dropped", nil)
	l.Info("dropped", nil)
	l.Warn("kept", nil)
	l.Error("kept", errors.New("boom"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"WARN"`) || !strings.Contains(lines[1], `"ERROR"`) {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestErrorFieldIncluded(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("fetch failed", errors.New("unexpected status code: 503"), Fields{"page": 5})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["error"] != "unexpected status code: 503" {
		t.Errorf("error not captured: %v", entry["error"])
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.want)
		}
	}
}
