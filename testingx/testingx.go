// Package testingx provides testing utilities for hatch packages.
//
// Overview:
//   - Responsibility: Testing helpers, mocks, and filesystem fixtures
//   - Key Types: MockLogger, LogEntry
//   - Concurrency Model: MockLogger is safe for concurrent use
//   - Error Semantics: Test failures via testing.TB
//   - Performance Notes: Optimized for test execution
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"src/lib.rs": "// hook\n"})
//	testingx.AssertCode(t, err, errors.CodeAnchorNotFound)
package testingx

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/core/log"
)

// MockLogger is a mock logger for testing.
type MockLogger struct {
	t      testing.TB
	store  *entryStore
	fields []any
}

type entryStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry represents a single log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// Field returns the value logged under key and whether it was present.
func (e LogEntry) Field(key string) (any, bool) {
	for i := 0; i+1 < len(e.Fields); i += 2 {
		if k, ok := e.Fields[i].(string); ok && k == key {
			return e.Fields[i+1], true
		}
	}
	return nil, false
}

// NewMockLogger creates a new mock logger.
func NewMockLogger(t testing.TB) *MockLogger {
	return &MockLogger{t: t, store: &entryStore{}}
}

// With returns a child logger that shares the entry store and prepends kv to every entry.
func (m *MockLogger) With(kv ...any) log.Logger {
	fields := append(append([]any{}, m.fields...), kv...)
	return &MockLogger{t: m.t, store: m.store, fields: fields}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.log("DEBUG", msg, nil, kv)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.log("INFO", msg, nil, kv)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.log("WARN", msg, nil, kv)
}

// Error logs an error message.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.log("ERROR", msg, err, kv)
}

func (m *MockLogger) log(level, msg string, err error, kv []any) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = append(m.store.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]any{}, m.fields...), kv...),
		Error:   err,
	})
}

// Entries returns all log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	entries := make([]LogEntry, len(m.store.entries))
	copy(entries, m.store.entries)
	return entries
}

// AssertLogged asserts that a message was logged at level.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			return
		}
	}
	m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
}

// Clear clears all log entries.
func (m *MockLogger) Clear() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = nil
}

// AssertCode asserts that err carries the expected code.
func AssertCode(t testing.TB, err error, expected errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expected)
	}

	if code := errors.CodeOf(err); code != expected {
		t.Errorf("Expected error code %s, got %s (%v)", expected, code, err)
	}
}

// AssertNoError asserts that no error occurred.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// WriteTree creates files under root from a map of slash-separated relative paths to contents.
// A path ending in "/" creates an empty directory. Returns root.
func WriteTree(t testing.TB, root string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

// ReadFile returns the contents of root/rel and fails the test if it cannot be read.
func ReadFile(t testing.TB, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// AssertNotExists fails the test when root/rel exists.
func AssertNotExists(t testing.TB, root, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Errorf("Expected %s to be absent", rel)
	}
}
