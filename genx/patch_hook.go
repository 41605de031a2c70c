package genx

import (
	"bytes"
	"fmt"
	"regexp"

	"go.eggybyte.com/hatch/core/errors"
)

// PatchAtHook inserts rendered text immediately after every match of Anchor in an
// existing file. The anchor itself is never consumed, and bytes outside the
// insertion points are preserved.
type PatchAtHook struct {
	Path     string // Target file template, relative to the project root
	Anchor   *regexp.Regexp
	Template string
}

// NewPatchAtHook compiles pattern as a regular expression anchor.
// Patterns that match the empty string are rejected.
func NewPatchAtHook(path, pattern, tmpl string) (PatchAtHook, error) {
	if pattern == "" {
		return PatchAtHook{}, errors.New(errors.CodeInvalidArgument, "patch_at_hook: empty anchor pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return PatchAtHook{}, errors.Wrapf(errors.CodeInvalidArgument, "genx.patch_at_hook", err, "compile anchor %q", pattern)
	}
	if re.MatchString("") {
		return PatchAtHook{}, errors.Newf(errors.CodeInvalidArgument, "patch_at_hook: anchor %q matches the empty string", pattern)
	}
	return PatchAtHook{Path: path, Anchor: re, Template: tmpl}, nil
}

// NewPatchAtLiteralHook anchors on an exact marker such as "//##PLOP INSERT COMMAND HOOK##".
func NewPatchAtLiteralHook(path, marker, tmpl string) (PatchAtHook, error) {
	if marker == "" {
		return PatchAtHook{}, errors.New(errors.CodeInvalidArgument, "patch_at_hook: empty hook marker")
	}
	return NewPatchAtHook(path, regexp.QuoteMeta(marker), tmpl)
}

func (PatchAtHook) Kind() ActionKind { return KindPatchAtHook }

func (a PatchAtHook) Describe() string {
	anchor := "<nil>"
	if a.Anchor != nil {
		anchor = a.Anchor.String()
	}
	return fmt.Sprintf("patch %s after %s", a.Path, anchor)
}

func (PatchAtHook) sealed() {}

func (e *execEnv) patchAtHook(a PatchAtHook, res *ActionResult) error {
	if a.Anchor == nil {
		return errors.New(errors.CodeInvalidArgument, "patch_at_hook: anchor is required")
	}

	target, err := e.renderPath("path", a.Path)
	if err != nil {
		return err
	}
	text, err := e.renderer.Render(target, a.Template, e.answers)
	if err != nil {
		return err
	}

	data, mode, err := e.project.ReadFile(target)
	if err != nil {
		return err
	}

	patched, n, err := insertAfterMatches(target, data, a.Anchor, []byte(text))
	if err != nil {
		return err
	}

	if err := e.project.WriteFileAtomic(target, patched, mode); err != nil {
		return err
	}
	res.Paths = append(res.Paths, target)
	res.Insertions = n
	return nil
}

// insertAfterMatches locates every non-overlapping match of anchor in content,
// then copies content with text written right after each match end.
// name is used in error messages only.
func insertAfterMatches(name string, content []byte, anchor *regexp.Regexp, text []byte) ([]byte, int, error) {
	locs := anchor.FindAllIndex(content, -1)
	if len(locs) == 0 {
		return nil, 0, errors.Build(errors.CodeAnchorNotFound).
			WithOp("genx.patch_at_hook").
			WithMsgf("anchor %q not found in %s", anchor.String(), name).
			WithDetails(name, anchor.String()).
			Err()
	}
	for _, loc := range locs {
		if loc[0] == loc[1] {
			return nil, 0, errors.Newf(errors.CodeInvalidArgument,
				"anchor %q produced an empty match in %s at offset %d", anchor.String(), name, loc[0])
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(locs)*len(text))
	prev := 0
	for _, loc := range locs {
		buf.Write(content[prev:loc[1]])
		buf.Write(text)
		prev = loc[1]
	}
	buf.Write(content[prev:])

	return buf.Bytes(), len(locs), nil
}
