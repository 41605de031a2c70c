package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(buf *bytes.Buffer, format string, level slog.Level) *Handler {
	return NewHandler(Options{Format: format, Level: level, DisableTimestamp: true}, buf)
}

func TestHandler_Enabled(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{}, "logfmt", slog.LevelInfo)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !h.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be enabled at info level")
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, "logfmt", slog.LevelWarn)

	h.LogRecord(slog.LevelInfo, "dropped", nil)
	h.LogRecord(slog.LevelError, "kept", nil)

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Errorf("info record should be filtered: %s", output)
	}
	if !strings.Contains(output, `msg="kept"`) {
		t.Errorf("error record should be written: %s", output)
	}
}

func TestFormatLogfmt(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, "logfmt", slog.LevelDebug)

	h.LogRecord(slog.LevelInfo, "action applied", []slog.Attr{
		slog.String("path", "src/lib.rs"),
		slog.Int("index", 2),
	})

	want := `level=INFO msg="action applied" index=2 path="src/lib.rs"` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatLogfmt_WithColor(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(Options{Format: "logfmt", Level: slog.LevelInfo, Color: true, DisableTimestamp: true}, &buf)

	h.LogRecord(slog.LevelError, "boom", nil)

	if !strings.Contains(buf.String(), "\033[31mERROR\033[0m") {
		t.Errorf("expected colorized level, got %q", buf.String())
	}
}

func TestFormatLogfmt_WithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(Options{Format: "logfmt", Level: slog.LevelInfo}, &buf)

	h.LogRecord(slog.LevelInfo, "x", nil)

	if !strings.HasPrefix(buf.String(), "time=") {
		t.Errorf("expected time prefix, got %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, "json", slog.LevelInfo)

	h.LogRecord(slog.LevelWarn, "skipped", []slog.Attr{
		slog.String("path", "a.rs"),
		slog.Any("error", errors.New("exists")),
	})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["level"] != "WARN" || record["msg"] != "skipped" {
		t.Errorf("unexpected record: %v", record)
	}
	if record["path"] != "a.rs" || record["error"] != "exists" {
		t.Errorf("unexpected fields: %v", record)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = newTestHandler(&buf, "logfmt", slog.LevelInfo)
	h = h.WithAttrs([]slog.Attr{slog.String("generator", "add-component")})
	h = h.WithGroup("run")

	logger := slog.New(h)
	logger.Info("done")

	if !strings.Contains(buf.String(), `run.generator="add-component"`) {
		t.Errorf("expected grouped attribute, got %q", buf.String())
	}
}

func TestSortAttrs(t *testing.T) {
	attrs := []slog.Attr{slog.String("zebra", "z"), slog.String("alpha", "a"), slog.String("beta", "b")}
	sorted := SortAttrs(attrs)

	keys := []string{sorted[0].Key, sorted[1].Key, sorted[2].Key}
	if keys[0] != "alpha" || keys[1] != "beta" || keys[2] != "zebra" {
		t.Errorf("unexpected order: %v", keys)
	}
	if attrs[0].Key != "zebra" {
		t.Error("SortAttrs must not modify its input")
	}
}

func TestKVToAttrs(t *testing.T) {
	attrs := KVToAttrs([]any{"a", 1, "b", "two", "dangling"})
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "a" || attrs[1].Key != "b" {
		t.Errorf("unexpected keys: %v", attrs)
	}
}

func TestFormatValue_AllTypes(t *testing.T) {
	tests := []struct {
		value slog.Value
		want  string
	}{
		{slog.StringValue("x"), `"x"`},
		{slog.Int64Value(-3), "-3"},
		{slog.Uint64Value(7), "7"},
		{slog.Float64Value(1.5), "1.5"},
		{slog.BoolValue(true), "true"},
		{slog.DurationValue(1500 * time.Millisecond), "1500"},
		{slog.AnyValue(errors.New("bad")), `"bad"`},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	levels := map[slog.Level]string{
		slog.LevelDebug: "DEBUG",
		slog.LevelInfo:  "INFO",
		slog.LevelWarn:  "WARN",
		slog.LevelError: "ERROR",
	}
	for level, want := range levels {
		if got := LevelString(level); got != want {
			t.Errorf("LevelString(%v) = %q, want %q", level, got, want)
		}
	}
}
