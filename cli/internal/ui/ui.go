// Package ui provides unified output formatting for the hatch CLI.
//
// Overview:
//   - Responsibility: Leveled user messages, step lines, and structured JSON output
//   - Key Types: OutputLevel, Message
//   - Concurrency Model: Thread-safe output operations guarded by one mutex
//   - Error Semantics: Encoding failures are reported on stderr and otherwise ignored
//   - Performance Notes: One write per message
//
// Usage:
//
//	ui.Info("Loaded %d generators", n)
//	ui.Success("Created %s", path)
//	ui.Data(ui.LevelSuccess, "generator finished", report)
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	verbose    bool
	jsonOutput bool
	noColor    bool
	mu         sync.RWMutex
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Palette used for message prefixes.
var (
	ColorInfo    = lipgloss.Color("#20B9B4")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

var styles = map[OutputLevel]lipgloss.Style{
	LevelDebug:   lipgloss.NewStyle().Foreground(ColorMuted),
	LevelInfo:    lipgloss.NewStyle().Foreground(ColorInfo),
	LevelWarning: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	LevelError:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	LevelSuccess: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
}

var stepStyle = lipgloss.NewStyle().Foreground(ColorMuted)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

var prefixes = map[OutputLevel]string{
	LevelDebug:   "DEBUG:",
	LevelInfo:    "INFO:",
	LevelWarning: "WARN:",
	LevelError:   "ERROR:",
	LevelSuccess: "OK:",
}

// Message represents a structured output message.
//
// Parameters:
//   - Level: Message severity level
//   - Text: Human-readable message content
//   - Data: Optional structured data for JSON output
//   - Timestamp: When the message was created
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug messages.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetJSONOutput switches every message to one JSON object per line on stdout.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// JSONOutput reports whether JSON mode is enabled.
func JSONOutput() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOutput
}

// SetColor enables or disables styled prefixes.
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = !enabled
}

// SetOutput redirects output. A nil writer restores the process stream.
//
// Parameters:
//   - out: Destination for everything except errors
//   - errOut: Destination for error messages
//
// Concurrency:
//   - Thread-safe
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

// output writes a message to the appropriate output stream.
func output(level OutputLevel, data any, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()

	// Skip debug messages if not verbose
	if level == LevelDebug && !verbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if jsonOutput {
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}
		if err := json.NewEncoder(stdout).Encode(message); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := stdout
	if level == LevelError {
		writer = stderr
	}

	prefix := prefixes[level]
	if !noColor {
		prefix = styles[level].Render(prefix)
	}
	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug outputs a debug message. Only shown in verbose mode.
func Debug(format string, args ...any) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...any) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...any) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message to stderr (stdout in JSON mode).
func Error(format string, args ...any) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...any) {
	output(LevelSuccess, nil, format, args...)
}

// Data outputs a message carrying structured data.
// In text mode only the message is printed; JSON mode includes data.
//
// Parameters:
//   - level: Message severity level
//   - text: Human-readable message
//   - data: Any JSON-encodable value
func Data(level OutputLevel, text string, data any) {
	output(level, data, "%s", text)
}

// Step outputs a step indicator with message.
//
// Parameters:
//   - step: Step number, starting at 1
//   - total: Total number of steps
//   - format: Printf-style format string
//   - args: Format arguments
func Step(step, total int, format string, args ...any) {
	if JSONOutput() {
		output(LevelInfo, map[string]int{"step": step, "total": total}, format, args...)
		return
	}

	mu.RLock()
	defer mu.RUnlock()

	counter := fmt.Sprintf("[%d/%d]", step, total)
	if !noColor {
		counter = stepStyle.Render(counter)
	}
	fmt.Fprintf(stdout, "  %s %s\n", counter, fmt.Sprintf(format, args...))
}

// Print writes plain text to stdout. It is suppressed in JSON mode.
func Print(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if jsonOutput {
		return
	}
	fmt.Fprintf(stdout, format, args...)
}
