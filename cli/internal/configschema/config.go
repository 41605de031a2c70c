// Package configschema loads and validates hatch.yaml generator definitions.
//
// Overview:
//   - Responsibility: Parse hatch.yaml, validate schema and semantics, build a genx.Registry
//   - Key Types: File, Generator, Prompt, Action, Diagnostics
//   - Concurrency Model: Immutable configuration after loading
//   - Error Semantics: Problems are collected as diagnostics with YAML paths and suggestions
//   - Performance Notes: Single-pass parsing; regexes and templates are compiled once during validation
//
// Usage:
//
//	file, diags := configschema.Load("hatch.yaml")
//	if diags.HasErrors() {
//	    return diags.Err()
//	}
//	reg, err := configschema.BuildRegistry(file, file.Dir)
package configschema

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"go.eggybyte.com/hatch/configx"
	"go.eggybyte.com/hatch/genx"
)

// CurrentVersion is the schema version written by hatch init.
const CurrentVersion = "1"

// File is the root of hatch.yaml.
type File struct {
	ConfigVersion string      `yaml:"config_version" validate:"omitempty,oneof=1"`
	Generators    []Generator `yaml:"generators" validate:"dive"`

	// Path and Dir locate the loaded file; they are not part of the schema.
	Path string `yaml:"-"`
	Dir  string `yaml:"-"`
}

// Generator is one named generator definition.
type Generator struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Prompts     []Prompt `yaml:"prompts" validate:"dive"`
	Actions     []Action `yaml:"actions" validate:"required,min=1,dive"`
}

// Prompt is one question asked before a run.
type Prompt struct {
	Name    string   `yaml:"name" validate:"required"`
	Message string   `yaml:"message"`
	Type    string   `yaml:"type" validate:"omitempty,oneof=input confirm select list"`
	Default string   `yaml:"default"`
	Choices []string `yaml:"choices"`
}

// Action is the union of every action type's fields; Type selects which apply.
type Action struct {
	Type string `yaml:"type" validate:"required,oneof=addMany create_files append append_line modify patch"`

	// addMany / create_files
	Destination     string   `yaml:"destination"`
	TemplateFiles   string   `yaml:"template_files"`
	Base            string   `yaml:"base"`
	Force           bool     `yaml:"force"`
	SkipIfExists    bool     `yaml:"skip_if_exists"`
	StripExtensions []string `yaml:"strip_extensions"`

	// append / append_line and modify / patch
	Path         string `yaml:"path"`
	Template     string `yaml:"template"`
	TemplateFile string `yaml:"template_file"`
	Unique       bool   `yaml:"unique"`
	Hook         string `yaml:"hook"`
	Pattern      string `yaml:"pattern"`
}

// Kind maps the action type and its aliases onto the engine's action kind.
func (a Action) Kind() genx.ActionKind {
	switch a.Type {
	case "addMany", "create_files":
		return genx.KindCreateFiles
	case "append", "append_line":
		return genx.KindAppendLine
	case "modify", "patch":
		return genx.KindPatchAtHook
	default:
		return ""
	}
}

// PromptKind maps the prompt type onto the engine's prompt kind. "list" is an alias of "select".
func (p Prompt) PromptKind() genx.PromptKind {
	switch p.Type {
	case "", "input":
		return genx.PromptInput
	case "list":
		return genx.PromptSelect
	default:
		return genx.PromptKind(p.Type)
	}
}

// Load reads and validates the configuration file at path.
//
// Parameters:
//   - path: Path to hatch.yaml
//
// Returns:
//   - *File: Parsed configuration, nil when the file cannot be read or parsed
//   - *Diagnostics: Validation issues found
//
// Concurrency:
//   - Single-threaded file I/O
func Load(path string) (*File, *Diagnostics) {
	diags := NewDiagnostics()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			diags.AddError("Configuration file not found", path, "Run 'hatch init' to create hatch.yaml")
		} else {
			diags.AddError(fmt.Sprintf("Failed to read configuration file: %v", err), path, "Check file permissions")
		}
		return nil, diags
	}

	file, parseDiags := Parse(data)
	diags.items = append(diags.items, parseDiags.items...)
	if file == nil {
		return nil, diags
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	file.Path = path
	file.Dir = filepath.Dir(path)

	return file, diags
}

// Parse decodes and validates hatch.yaml content. Unknown keys are errors.
func Parse(data []byte) (*File, *Diagnostics) {
	diags := NewDiagnostics()

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		diags.AddError(fmt.Sprintf("Failed to parse YAML: %v", err), "", "Check YAML syntax and key names")
		return nil, diags
	}

	if file.ConfigVersion == "" {
		diags.AddInfo("config_version not set, assuming "+CurrentVersion, "config_version", "")
		file.ConfigVersion = CurrentVersion
	}

	if len(file.Generators) == 0 {
		diags.AddWarning("no generators defined", "generators", "Add a generator or run 'hatch init'")
	}

	validateStructure(&file, diags)
	validateSemantics(&file, diags)

	return &file, diags
}

var schemaValidator = configx.NewValidator(configx.WithTagNames("yaml"))

// validateStructure applies the validate tags and reports violations by YAML path.
func validateStructure(file *File, diags *Diagnostics) {
	err := schemaValidator.Struct(file)
	if err == nil {
		return
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		diags.AddError(err.Error(), "", "")
		return
	}

	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "File.")
		switch fe.Tag() {
		case "required":
			diags.AddError(fmt.Sprintf("%s is required", fe.Field()), path, "")
		case "min":
			diags.AddError(fmt.Sprintf("%s needs at least %s entry", fe.Field(), fe.Param()), path, "")
		case "oneof":
			diags.AddError(fmt.Sprintf("unsupported %s %q", fe.Field(), fe.Value()), path,
				"Use one of: "+strings.ReplaceAll(fe.Param(), " ", ", "))
		default:
			diags.AddError(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()), path, "")
		}
	}
}

// validateSemantics checks rules the tags cannot express.
func validateSemantics(file *File, diags *Diagnostics) {
	renderer := genx.NewRenderer()
	names := make(map[string]int)

	for gi, g := range file.Generators {
		gpath := fmt.Sprintf("generators[%d]", gi)

		if g.Name != "" {
			if prev, dup := names[g.Name]; dup {
				diags.AddError(fmt.Sprintf("duplicate generator name %q (first defined at generators[%d])", g.Name, prev),
					gpath+".name", "Generator names must be unique")
			} else {
				names[g.Name] = gi
			}
		}

		prompts := make(map[string]bool)
		for pi, p := range g.Prompts {
			ppath := fmt.Sprintf("%s.prompts[%d]", gpath, pi)
			if p.Name != "" && prompts[p.Name] {
				diags.AddError(fmt.Sprintf("duplicate prompt name %q", p.Name), ppath+".name", "")
			}
			prompts[p.Name] = true

			if p.PromptKind() == genx.PromptSelect {
				if len(p.Choices) == 0 {
					diags.AddError("select prompt needs choices", ppath+".choices", "")
				} else if p.Default != "" && !contains(p.Choices, p.Default) {
					diags.AddWarning(fmt.Sprintf("default %q is not one of the choices", p.Default), ppath+".default", "")
				}
			}
		}

		for ai, a := range g.Actions {
			apath := fmt.Sprintf("%s.actions[%d]", gpath, ai)
			validateAction(a, apath, diags)

			for _, v := range actionVariables(renderer, a, apath, diags) {
				if !prompts[v] {
					diags.AddWarning(fmt.Sprintf("template uses %q, which no prompt asks for", v), apath,
						"Add a prompt or pass --set "+v+"=...")
				}
			}
		}
	}
}

func validateAction(a Action, path string, diags *Diagnostics) {
	switch a.Kind() {
	case genx.KindCreateFiles:
		if a.TemplateFiles == "" {
			diags.AddError("template_files is required", path+".template_files", "Use a glob such as templates/component/**")
		}
		if a.Destination == "" {
			diags.AddWarning("destination is empty, files are written to the project root", path+".destination", "")
		}
		if a.Force && a.SkipIfExists {
			diags.AddWarning("force and skip_if_exists are both set; force wins", path, "")
		}
	case genx.KindAppendLine:
		requirePath(a, path, diags)
		requireTemplate(a, path, diags)
	case genx.KindPatchAtHook:
		requirePath(a, path, diags)
		requireTemplate(a, path, diags)
		switch {
		case a.Hook == "" && a.Pattern == "":
			diags.AddError("one of hook or pattern is required", path, "Use hook for a literal marker such as //##PLOP INSERT HOOK##")
		case a.Hook != "" && a.Pattern != "":
			diags.AddError("hook and pattern are mutually exclusive", path, "")
		case a.Pattern != "":
			if _, err := genx.NewPatchAtHook(a.Path, a.Pattern, ""); err != nil {
				diags.AddError(err.Error(), path+".pattern", "")
			}
		}
	}
}

func requirePath(a Action, path string, diags *Diagnostics) {
	if a.Path == "" {
		diags.AddError("path is required", path+".path", "")
	}
}

func requireTemplate(a Action, path string, diags *Diagnostics) {
	if a.Template != "" && a.TemplateFile != "" {
		diags.AddError("template and template_file are mutually exclusive", path, "")
	}
}

// actionVariables collects the answers referenced by the inline templates of a.
func actionVariables(r *genx.Renderer, a Action, path string, diags *Diagnostics) []string {
	fields := map[string]string{
		"destination": a.Destination,
		"path":        a.Path,
		"template":    a.Template,
	}

	seen := make(map[string]bool)
	var vars []string
	for _, field := range []string{"destination", "path", "template"} {
		src := fields[field]
		if src == "" {
			continue
		}
		names, err := r.Variables(field, src)
		if err != nil {
			diags.AddError(err.Error(), path+"."+field, "Check the template syntax")
			continue
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				vars = append(vars, n)
			}
		}
	}
	return vars
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
