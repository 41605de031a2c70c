package genx

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/core/log"
	"go.eggybyte.com/hatch/internal/projectfs"
)

// Options configures a Runner.
type Options struct {
	ProjectRoot  string     // Directory every target path resolves under (default ".")
	TemplateRoot string     // Directory CreateFiles globs are evaluated in (default ProjectRoot)
	Logger       log.Logger // Optional; nil discards
	Overwrite    bool       // Let CreateFiles replace existing files
}

// Runner executes generators from a Registry.
type Runner struct {
	registry  *Registry
	project   *projectfs.ProjectFS
	templates *projectfs.ProjectFS
	renderer  *Renderer
	logger    log.Logger
	overwrite bool
}

// NewRunner creates a Runner over registry.
//
// Parameters:
//   - registry: generators available to Run
//   - opts: roots, logger and overwrite mode
//
// Returns:
//   - *Runner: ready runner
//   - error: INVALID_ARGUMENT when registry is nil or a root cannot be resolved
func NewRunner(registry *Registry, opts Options) (*Runner, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "registry is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}

	project, err := projectfs.New(opts.ProjectRoot, logger)
	if err != nil {
		return nil, err
	}

	templateRoot := opts.TemplateRoot
	if templateRoot == "" {
		templateRoot = project.Root()
	}
	templates, err := projectfs.New(templateRoot, logger)
	if err != nil {
		return nil, err
	}

	return &Runner{
		registry:  registry,
		project:   project,
		templates: templates,
		renderer:  NewRenderer(),
		logger:    logger,
		overwrite: opts.Overwrite,
	}, nil
}

// Run executes the actions of generator name in declared order.
//
// Parameters:
//   - ctx: checked before each action; cancellation yields ABORTED
//   - name: registered generator name
//   - answers: values available to every template of the run
//
// Returns:
//   - *Report: results of applied actions, also on failure
//   - error: UNKNOWN_GENERATOR, or *ActionError wrapping the coded failure of the halting action
//
// Concurrency:
//   - Runs are sequential; concurrent runs on one tree are unsupported
func (r *Runner) Run(ctx context.Context, name string, answers Answers) (*Report, error) {
	gen, err := r.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("generator", gen.Name)
	report := &Report{Generator: gen.Name}
	env := &execEnv{
		project:   r.project,
		templates: r.templates,
		renderer:  r.renderer,
		answers:   answers,
		overwrite: r.overwrite,
		logger:    logger,
	}

	for i, action := range gen.Actions {
		if err := ctx.Err(); err != nil {
			return report, &ActionError{
				Index: i,
				Kind:  action.Kind(),
				Err:   errors.Wrap(errors.CodeAborted, "genx.run", err),
			}
		}

		res := ActionResult{Index: i, Kind: action.Kind()}
		if err := env.apply(action, &res); err != nil {
			logger.Error(err, "action failed", "action", action.Kind(), "index", i)
			return report, &ActionError{Index: i, Kind: action.Kind(), Err: err}
		}

		logger.Debug("action applied",
			"action", action.Kind(),
			"index", i,
			"path", strings.Join(res.Paths, ","),
			"skipped", len(res.Skipped))
		report.Results = append(report.Results, res)
	}

	logger.Info("generator finished", "actions", len(report.Results), "files", len(report.Paths()))
	return report, nil
}

// Registry returns the registry the runner was built with.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// execEnv carries the per-run state shared by action handlers.
type execEnv struct {
	project   *projectfs.ProjectFS
	templates *projectfs.ProjectFS
	renderer  *Renderer
	answers   Answers
	overwrite bool
	logger    log.Logger
}

func (e *execEnv) apply(action Action, res *ActionResult) error {
	switch a := action.(type) {
	case CreateFiles:
		return e.createFiles(a, res)
	case *CreateFiles:
		return e.createFiles(*a, res)
	case AppendLine:
		return e.appendLine(a, res)
	case *AppendLine:
		return e.appendLine(*a, res)
	case PatchAtHook:
		return e.patchAtHook(a, res)
	case *PatchAtHook:
		return e.patchAtHook(*a, res)
	default:
		return errors.Newf(errors.CodeInternal, "unsupported action %T", action)
	}
}

// renderPath renders a path template and validates that it stays inside the project root.
func (e *execEnv) renderPath(field, tmpl string) (string, error) {
	rendered, err := e.renderer.Render(field, tmpl, e.answers)
	if err != nil {
		return "", err
	}
	rel := cleanRel(rendered)
	if rel == "." && field != "destination" {
		return "", errors.Newf(errors.CodeInvalidArgument, "%s %q renders to an empty path", field, tmpl)
	}
	if _, err := e.project.Resolve(rel); err != nil {
		return "", err
	}
	return rel, nil
}

func cleanRel(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	if p == "" {
		return "."
	}
	return path.Clean(p)
}
