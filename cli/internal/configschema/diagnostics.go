package configschema

import (
	"fmt"
	"strings"

	"go.eggybyte.com/hatch/core/errors"
)

// Diagnostic represents a validation issue.
type Diagnostic struct {
	Severity   DiagnosticSeverity `json:"severity"`
	Message    string             `json:"message"`
	Path       string             `json:"path,omitempty"`
	Suggestion string             `json:"suggestion,omitempty"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	if d.Path != "" {
		b.WriteString(d.Path)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Suggestion != "" {
		fmt.Fprintf(&b, " (%s)", d.Suggestion)
	}
	return b.String()
}

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityInfo    DiagnosticSeverity = "info"
)

// Diagnostics represents a collection of validation issues.
type Diagnostics struct {
	items []Diagnostic
}

// NewDiagnostics creates a new diagnostics collection.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add adds a diagnostic to the collection.
//
// Parameters:
//   - severity: Diagnostic severity level
//   - message: Human-readable message
//   - path: Optional YAML path such as generators[0].actions[1].path
//   - suggestion: Optional fix suggestion
//
// Concurrency:
//   - Not safe for concurrent use
func (d *Diagnostics) Add(severity DiagnosticSeverity, message, path, suggestion string) {
	d.items = append(d.items, Diagnostic{
		Severity:   severity,
		Message:    message,
		Path:       path,
		Suggestion: suggestion,
	})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(message, path, suggestion string) {
	d.Add(SeverityError, message, path, suggestion)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(message, path, suggestion string) {
	d.Add(SeverityWarning, message, path, suggestion)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(message, path, suggestion string) {
	d.Add(SeverityInfo, message, path, suggestion)
}

// HasErrors returns true if there are any error-level diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return d.Count(SeverityError) > 0
}

// HasWarnings returns true if there are any warning-level diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return d.Count(SeverityWarning) > 0
}

// Count returns the number of diagnostics at severity.
func (d *Diagnostics) Count(severity DiagnosticSeverity) int {
	n := 0
	for _, item := range d.items {
		if item.Severity == severity {
			n++
		}
	}
	return n
}

// Items returns a copy of all diagnostics.
func (d *Diagnostics) Items() []Diagnostic {
	result := make([]Diagnostic, len(d.items))
	copy(result, d.items)
	return result
}

// Err summarizes the error-level diagnostics, or returns nil when there are none.
func (d *Diagnostics) Err() error {
	var msgs []string
	for _, item := range d.items {
		if item.Severity == SeverityError {
			msgs = append(msgs, item.String())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.Newf(errors.CodeInvalidArgument, "%d configuration error(s):\n  %s", len(msgs), strings.Join(msgs, "\n  "))
}
