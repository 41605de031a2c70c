package genx

import (
	"fmt"
	"sort"
)

// PromptKind selects how the front end asks a question.
type PromptKind string

const (
	PromptInput   PromptKind = "input"
	PromptConfirm PromptKind = "confirm"
	PromptSelect  PromptKind = "select"
)

// Valid reports whether k is a known prompt kind.
func (k PromptKind) Valid() bool {
	switch k {
	case PromptInput, PromptConfirm, PromptSelect:
		return true
	}
	return false
}

// Prompt describes one answer a generator needs. Default and Choices are
// consumed by the front end only; the engine sees the resulting answer.
type Prompt struct {
	Name    string
	Message string
	Kind    PromptKind
	Default string
	Choices []string
}

// Generator is a named, ordered list of actions.
type Generator struct {
	Name        string
	Description string
	Prompts     []Prompt
	Actions     []Action
}

// ActionKind names an action variant.
type ActionKind string

const (
	KindCreateFiles ActionKind = "create_files"
	KindAppendLine  ActionKind = "append_line"
	KindPatchAtHook ActionKind = "patch_at_hook"
)

// Action is a declarative file-system mutation. The set of variants is closed:
// CreateFiles, AppendLine and PatchAtHook.
type Action interface {
	Kind() ActionKind
	// Describe returns a one-line summary for listings.
	Describe() string
	sealed()
}

// Answers is an immutable mapping from prompt name to raw answer.
type Answers struct {
	values map[string]string
}

// NewAnswers copies m into a new Answers.
func NewAnswers(m map[string]string) Answers {
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Answers{values: values}
}

// Lookup returns the answer for name and whether it was given.
func (a Answers) Lookup(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Get returns the answer for name, or "" when absent.
func (a Answers) Get(name string) string {
	return a.values[name]
}

// Keys returns the answered names in sorted order.
func (a Answers) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of answers.
func (a Answers) Len() int {
	return len(a.values)
}

// Map returns a copy of the answers.
func (a Answers) Map() map[string]string {
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Report lists what a run did, one result per successfully applied action.
type Report struct {
	Generator string         `json:"generator"`
	Results   []ActionResult `json:"results"`
}

// ActionResult records the files touched by one action.
type ActionResult struct {
	Index      int        `json:"index"`
	Kind       ActionKind `json:"kind"`
	Paths      []string   `json:"paths"`                // Files created or modified, slash-separated and relative to the project root
	Skipped    []string   `json:"skipped,omitempty"`    // Files left untouched because they already existed
	Insertions int        `json:"insertions,omitempty"` // Number of snippets inserted (AppendLine, PatchAtHook)
}

// Paths returns every file modified by the run in action order.
func (r *Report) Paths() []string {
	var paths []string
	for _, res := range r.Results {
		paths = append(paths, res.Paths...)
	}
	return paths
}

// ActionError reports the action that halted a run.
type ActionError struct {
	Index int
	Kind  ActionKind
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
