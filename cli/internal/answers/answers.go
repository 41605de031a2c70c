// Package answers loads preset answers from the command line and from answer files.
//
// Overview:
//   - Responsibility: Parse --set assignments and .env/YAML/JSON answer files into flat maps
//   - Key Types: Flat map[string]string keyed by prompt name
//   - Concurrency Model: Stateless functions, safe for concurrent use
//   - Error Semantics: Malformed input is INVALID_ARGUMENT, a missing file is FILE_NOT_FOUND
//   - Performance Notes: Files are read once; .env files are scanned line by line
//
// Usage:
//
//	fromFile, err := answers.LoadFile("answers.yaml")
//	fromFlags, err := answers.ParseAssignments([]string{"service_name=billing"})
//	preset := answers.Merge(fromFile, fromFlags)
package answers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/hatch/core/errors"
)

// ParseAssignments parses key=value pairs as given to --set.
// The value may be empty and may itself contain '='.
//
// Parameters:
//   - pairs: Assignments in key=value form
//
// Returns:
//   - map[string]string: Parsed answers; later pairs win
//   - error: INVALID_ARGUMENT for a pair without '=' or with an empty key
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.CodeInvalidArgument, "invalid assignment %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}

// LoadFile reads an answer file. The format follows the extension:
// .env for KEY=value lines, .yaml/.yml and .json for a flat map of scalars.
//
// Parameters:
//   - path: Answer file path
//
// Returns:
//   - map[string]string: Answers keyed by prompt name
//   - error: FILE_NOT_FOUND, or INVALID_ARGUMENT for unsupported or malformed content
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.CodeFileNotFound, "answers.load", err, "answer file %s", path)
		}
		return nil, errors.Wrapf(errors.CodeInternal, "answers.load", err, "read answer file %s", path)
	}

	var out map[string]string
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".env" || strings.HasPrefix(filepath.Base(path), ".env"):
		out, err = parseEnv(data)
	case ext == ".yaml" || ext == ".yml":
		out, err = parseYAML(data)
	case ext == ".json":
		out, err = parseJSON(data)
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unsupported answer file %s (use .env, .yaml, .yml or .json)", path)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "answers.load", err, "parse %s", path)
	}
	return out, nil
}

// Merge combines answer layers. Later layers win.
func Merge(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// parseEnv reads KEY=value lines. Blank lines and # comments are skipped,
// matching quotes around a value are removed and references are not expanded.
func parseEnv(data []byte) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid line %d: %s (expected KEY=value format)", lineNum, line)
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseYAML(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return flatten(raw)
}

func parseJSON(data []byte) (map[string]string, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return flatten(raw)
}

// flatten stringifies scalar values; nested maps and lists are rejected.
func flatten(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case int:
			out[k] = strconv.Itoa(val)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case uint64:
			out[k] = strconv.FormatUint(val, 10)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			out[k] = val.String()
		default:
			return nil, fmt.Errorf("answer %q must be a scalar, got %T", k, v)
		}
	}
	return out, nil
}
