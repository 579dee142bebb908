package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		if err := dec.Decode(&entry); err != nil {
			t.Fatalf("decode log entry: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "debug msg")
	logger.Info(ctx, "info msg")
	logger.Warn(ctx, "warn msg")
	logger.Error(ctx, "error msg")

	entries := logEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v; want warn, error", entries[0]["level"], entries[1]["level"])
	}
}

// Credential material must never reach the log stream, whatever the
// call site passes.
func TestLogger_RedactsCredentialFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "login attempt",
		Field{Key: "identifier", Value: "alice"},
		Field{Key: "password", Value: "hunter2"},
		Field{Key: "token", Value: "eyJhbGciOi"},
		Field{Key: "secretHash", Value: "$2a$10$abc"},
	)

	entries := logEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry["identifier"] != "alice" {
		t.Errorf("identifier = %v, want alice", entry["identifier"])
	}
	for _, key := range []string{"password", "token", "secretHash"} {
		if entry[key] != "[REDACTED]" {
			t.Errorf("%s = %v, want [REDACTED]", key, entry[key])
		}
	}
	if bytes.Contains(buf.Bytes(), []byte("hunter2")) {
		t.Error("raw credential leaked into log output")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).With(Field{Key: "component", Value: "auth"})

	logger.Info(context.Background(), "hello")

	entries := logEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["component"] != "auth" {
		t.Errorf("component = %v, want auth", entries[0]["component"])
	}
	if entries[0]["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entries[0]["msg"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// A nil DecisionMetrics is a valid no-op receiver; construction is
// optional for callers that do not meter.
func TestDecisionMetrics_NilSafe(t *testing.T) {
	var m *DecisionMetrics
	ctx := context.Background()
	m.RecordLogin(ctx, "USER-ACCOUNT", true)
	m.RecordAuthn(ctx, false)
	m.RecordAuthz(ctx, true)
}
