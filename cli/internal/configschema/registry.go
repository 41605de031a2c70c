package configschema

import (
	"os"
	"path/filepath"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/genx"
)

// BuildRegistry converts a validated File into a genx.Registry.
// template_file references are read relative to templateRoot.
//
// Parameters:
//   - file: Loaded configuration without error diagnostics
//   - templateRoot: Directory holding template sources (usually file.Dir)
//
// Returns:
//   - *genx.Registry: Generators in file order
//   - error: Coded error naming the offending generator and action
func BuildRegistry(file *File, templateRoot string) (*genx.Registry, error) {
	if file == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "configuration is required")
	}

	reg := genx.NewRegistry()
	for gi, g := range file.Generators {
		gen, err := buildGenerator(g, templateRoot)
		if err != nil {
			return nil, errors.Wrapf(errors.CodeOf(err), "configschema.build", err, "generators[%d] (%s)", gi, g.Name)
		}
		if err := reg.Register(gen); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func buildGenerator(g Generator, templateRoot string) (genx.Generator, error) {
	gen := genx.Generator{
		Name:        g.Name,
		Description: g.Description,
	}

	for _, p := range g.Prompts {
		message := p.Message
		if message == "" {
			message = p.Name
		}
		gen.Prompts = append(gen.Prompts, genx.Prompt{
			Name:    p.Name,
			Message: message,
			Kind:    p.PromptKind(),
			Default: p.Default,
			Choices: append([]string(nil), p.Choices...),
		})
	}

	for ai, a := range g.Actions {
		action, err := buildAction(a, templateRoot)
		if err != nil {
			return genx.Generator{}, errors.Wrapf(errors.CodeOf(err), "configschema.build", err, "actions[%d]", ai)
		}
		gen.Actions = append(gen.Actions, action)
	}
	return gen, nil
}

func buildAction(a Action, templateRoot string) (genx.Action, error) {
	switch a.Kind() {
	case genx.KindCreateFiles:
		return genx.CreateFiles{
			Destination:     a.Destination,
			TemplateFiles:   a.TemplateFiles,
			Base:            a.Base,
			Force:           a.Force,
			SkipIfExists:    a.SkipIfExists,
			StripExtensions: a.StripExtensions,
		}, nil
	case genx.KindAppendLine:
		tmpl, err := actionTemplate(a, templateRoot)
		if err != nil {
			return nil, err
		}
		return genx.AppendLine{Path: a.Path, Template: tmpl, Unique: a.Unique}, nil
	case genx.KindPatchAtHook:
		tmpl, err := actionTemplate(a, templateRoot)
		if err != nil {
			return nil, err
		}
		if a.Hook != "" {
			return genx.NewPatchAtLiteralHook(a.Path, a.Hook, tmpl)
		}
		return genx.NewPatchAtHook(a.Path, a.Pattern, tmpl)
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unsupported action type %q", a.Type)
	}
}

// actionTemplate returns the inline template or the contents of template_file.
func actionTemplate(a Action, templateRoot string) (string, error) {
	if a.TemplateFile == "" {
		return a.Template, nil
	}
	data, err := os.ReadFile(filepath.Join(templateRoot, filepath.FromSlash(a.TemplateFile)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(errors.CodeFileNotFound, "configschema.template_file", err, "template_file %s", a.TemplateFile)
		}
		return "", errors.Wrapf(errors.CodeInternal, "configschema.template_file", err, "read template_file %s", a.TemplateFile)
	}
	return string(data), nil
}
