package genx

import (
	"fmt"
	"path"
	"strings"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/internal/projectfs"
)

// DefaultStripExtensions are removed from template file names when
// CreateFiles.StripExtensions is empty.
var DefaultStripExtensions = []string{".hbs", ".tmpl"}

// CreateFiles renders every template file matching TemplateFiles into Destination,
// preserving the sub-tree below Base.
type CreateFiles struct {
	Destination     string   // Target directory template, relative to the project root
	TemplateFiles   string   // Glob relative to the template root; "**" allowed
	Base            string   // Prefix stripped from matches; defaults to the glob's static prefix
	Force           bool     // Replace existing targets
	SkipIfExists    bool     // Leave existing targets untouched and report them as skipped
	StripExtensions []string // Template suffixes removed from target names
}

func (CreateFiles) Kind() ActionKind { return KindCreateFiles }

func (a CreateFiles) Describe() string {
	return fmt.Sprintf("create %s from %s", a.Destination, a.TemplateFiles)
}

func (CreateFiles) sealed() {}

type plannedFile struct {
	source string
	target string
	data   []byte
	exists bool
}

func (e *execEnv) createFiles(a CreateFiles, res *ActionResult) error {
	if strings.TrimSpace(a.TemplateFiles) == "" {
		return errors.New(errors.CodeInvalidArgument, "create_files: template_files is required")
	}

	dest, err := e.renderPath("destination", a.Destination)
	if err != nil {
		return err
	}

	matches, err := e.templates.Glob(a.TemplateFiles)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return errors.Build(errors.CodeNotFound).
			WithOp("genx.create_files").
			WithMsgf("no template files match %q under %s", a.TemplateFiles, e.templates.Root()).
			Err()
	}

	base := a.Base
	if base == "" {
		base = projectfs.StaticBase(a.TemplateFiles)
	}
	base = strings.TrimSuffix(strings.TrimPrefix(path.Clean("/"+base), "/"), "/")

	strip := a.StripExtensions
	if len(strip) == 0 {
		strip = DefaultStripExtensions
	}

	// Render everything and check collisions before the first write.
	planned := make([]plannedFile, 0, len(matches))
	targets := make(map[string]string, len(matches))
	for _, m := range matches {
		rel := m
		if base != "" {
			if !strings.HasPrefix(m, base+"/") {
				return errors.Newf(errors.CodeInvalidArgument, "template %s is outside base %s", m, base)
			}
			rel = strings.TrimPrefix(m, base+"/")
		}
		rel = stripExtension(rel, strip)

		renderedRel, err := e.renderer.Render(m, rel, e.answers)
		if err != nil {
			return err
		}
		target := cleanRel(path.Join(dest, renderedRel))
		if _, err := e.project.Resolve(target); err != nil {
			return err
		}
		if prev, dup := targets[target]; dup {
			return errors.Newf(errors.CodeInvalidArgument, "templates %s and %s both render to %s", prev, m, target)
		}
		targets[target] = m

		source, _, err := e.templates.ReadFile(m)
		if err != nil {
			return err
		}
		content, err := e.renderer.Render(m, string(source), e.answers)
		if err != nil {
			return err
		}

		exists, err := e.project.Exists(target)
		if err != nil {
			return err
		}
		if exists && !a.Force && !e.overwrite && !a.SkipIfExists {
			return errors.Build(errors.CodeAlreadyExists).
				WithOp("genx.create_files").
				WithMsgf("%s already exists", target).
				WithDetails(target).
				Err()
		}

		planned = append(planned, plannedFile{source: m, target: target, data: []byte(content), exists: exists})
	}

	for _, f := range planned {
		if f.exists && !a.Force && !e.overwrite {
			res.Skipped = append(res.Skipped, f.target)
			e.logger.Debug("file skipped", "path", f.target)
			continue
		}
		if err := e.project.WriteFileAtomic(f.target, f.data, 0o644); err != nil {
			return err
		}
		res.Paths = append(res.Paths, f.target)
	}
	return nil
}

func stripExtension(name string, exts []string) string {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
