package realtimews

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", test.level, got, test.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", LogLevelDebug},
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"WARN", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelOff},
		{"invalid", LogLevelInfo}, // default
		{"", LogLevelInfo},        // default
	}

	for _, test := range tests {
		if got := ParseLogLevel(test.input); got != test.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LogLevelDebug, &buf)

	logger.Info("ws_connected", map[string]any{"url": "wss://x/realtime", "attempt": 1})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	entry := lines[0]
	if entry["message"] != "ws_connected" {
		t.Errorf("expected message ws_connected, got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("expected level info, got %v", entry["level"])
	}
	if entry["component"] != "realtimews" {
		t.Errorf("expected component realtimews, got %v", entry["component"])
	}
	if entry["url"] != "wss://x/realtime" {
		t.Errorf("expected url field, got %v", entry["url"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LogLevelWarn, &buf)

	logger.Debug("d", nil)
	logger.Info("i", nil)
	logger.Warn("w", nil)
	logger.Error("e", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "w" || lines[1]["message"] != "e" {
		t.Errorf("unexpected messages: %v, %v", lines[0]["message"], lines[1]["message"])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LogLevelOff, &buf)

	logger.Error("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output at LogLevelOff, got %s", buf.String())
	}

	logger.SetLevel(LogLevelDebug)
	if logger.Level() != LogLevelDebug {
		t.Errorf("expected level DEBUG, got %v", logger.Level())
	}
	logger.Debug("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug output after SetLevel, got %s", buf.String())
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter(LogLevelInfo, &buf)
	scoped := base.WithContext(map[string]any{"model": "gpt-4o-realtime-preview"})

	scoped.Info("a", map[string]any{"k": "v"})
	base.Info("b", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["model"] != "gpt-4o-realtime-preview" || lines[0]["k"] != "v" {
		t.Errorf("expected context and entry fields, got %v", lines[0])
	}
	if _, ok := lines[1]["model"]; ok {
		t.Error("WithContext should not modify the parent logger")
	}
	if scoped.Level() != LogLevelInfo {
		t.Errorf("expected inherited level INFO, got %v", scoped.Level())
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv("REALTIMEWS_LOG_LEVEL", "error")
	if got := NewLoggerFromEnv().Level(); got != LogLevelError {
		t.Errorf("expected ERROR, got %v", got)
	}

	t.Setenv("REALTIMEWS_LOG_LEVEL", "")
	if got := NewLoggerFromEnv().Level(); got != LogLevelInfo {
		t.Errorf("expected default INFO, got %v", got)
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(LogLevelInfo, &buf)
	logger.Warn("socket_replaced", map[string]any{"url": "wss://x"})

	out := buf.String()
	if !strings.Contains(out, "socket_replaced") || !strings.Contains(out, "wss://x") {
		t.Errorf("unexpected console output: %q", out)
	}
}
