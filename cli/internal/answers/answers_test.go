package answers

import (
	"os"
	"path/filepath"
	"testing"

	"go.eggybyte.com/hatch/core/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"service_name=billing", "query=a=b", "empty=", "service_name=auth"})
	if err != nil {
		t.Fatalf("ParseAssignments failed: %v", err)
	}

	expected := map[string]string{"service_name": "auth", "query": "a=b", "empty": ""}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d answers, got %d: %v", len(expected), len(got), got)
	}
	for k, v := range expected {
		if got[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, got[k])
		}
	}
}

func TestParseAssignments_Invalid(t *testing.T) {
	for _, pair := range []string{"novalue", "=value", " =x"} {
		if _, err := ParseAssignments([]string{pair}); !errors.IsCode(err, errors.CodeInvalidArgument) {
			t.Errorf("Expected INVALID_ARGUMENT for %q, got %v", pair, err)
		}
	}
}

func TestLoadFile_Env(t *testing.T) {
	path := writeFile(t, "answers.env", `# answers for service-command
service_name=billing
command_name="create invoice"
export owner='team a'

`)
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got["service_name"] != "billing" || got["command_name"] != "create invoice" || got["owner"] != "team a" {
		t.Errorf("Unexpected answers: %v", got)
	}
}

func TestLoadFile_EnvInvalidLine(t *testing.T) {
	path := writeFile(t, ".env", "just a line\n")
	if _, err := LoadFile(path); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "answers.yaml", "resource_name: worker\ncount: 3\nenabled: true\nratio: 0.5\nnothing:\n")
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	expected := map[string]string{"resource_name": "worker", "count": "3", "enabled": "true", "ratio": "0.5", "nothing": ""}
	for k, v := range expected {
		if got[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, got[k])
		}
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "answers.json", `{"aggregate_name": "invoice", "version": 12345678901, "draft": false}`)
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got["aggregate_name"] != "invoice" || got["version"] != "12345678901" || got["draft"] != "false" {
		t.Errorf("Unexpected answers: %v", got)
	}
}

func TestLoadFile_NestedRejected(t *testing.T) {
	path := writeFile(t, "answers.yml", "service:\n  name: billing\n")
	if _, err := LoadFile(path); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.IsCode(err, errors.CodeFileNotFound) {
		t.Errorf("Expected FILE_NOT_FOUND, got %v", err)
	}

	path := writeFile(t, "answers.toml", "a = 1\n")
	if _, err := LoadFile(path); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT for unsupported extension, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	fromFile := map[string]string{"a": "file", "b": "file"}
	fromFlags := map[string]string{"b": "flag", "c": "flag"}

	got := Merge(fromFile, nil, fromFlags)
	if got["a"] != "file" || got["b"] != "flag" || got["c"] != "flag" {
		t.Errorf("Unexpected merge result: %v", got)
	}
	if fromFile["b"] != "file" {
		t.Error("Merge must not modify its inputs")
	}
}
