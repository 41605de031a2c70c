package main

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/answers"
	"go.eggybyte.com/hatch/cli/internal/prompt"
	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/genx"
)

var (
	runSet     []string
	runAnswers string
	runForce   bool
)

// newCollector builds the prompt front end; tests replace it.
var newCollector = func() prompt.Collector {
	return prompt.New(prompt.Options{Interactive: !nonInteractive})
}

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <generator>",
	Short: "Run a generator",
	Long: `Run a generator: collect answers, then apply its actions in order.

Answers are taken from, highest first: --set, the --answers file, interactive
prompts, and prompt defaults. With --non-interactive, or when stdin is not a
terminal, prompts without an answer fall back to their default.

Any failing action stops the run. Actions applied before it stay applied and
are listed in the report.

Example:
  hatch run web-htmx-component --set component_name="user profile"
  hatch run service-repository --answers answers.yaml --non-interactive`,
	Args: exactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runSet, "set", "s", nil, "Answer a prompt: name=value (repeatable)")
	runCmd.Flags().StringVarP(&runAnswers, "answers", "a", "", "Answer file (.env, .yaml, .yml or .json)")
	runCmd.Flags().BoolVarP(&runForce, "force", "f", false, "Overwrite files that already exist")
	rootCmd.AddCommand(runCmd)
}

// runRun executes the run command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Generator name
//
// Returns:
//   - error: Lookup, answer or action failure; action failures are *genx.ActionError
//
// Concurrency:
//   - Single-threaded; cancelled through the command context
func runRun(cmd *cobra.Command, args []string) error {
	file, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	gen, err := reg.Lookup(args[0])
	if err != nil {
		return err
	}

	preset, err := presetAnswers()
	if err != nil {
		return usageError{err}
	}

	values, err := newCollector().Collect(cmd.Context(), gen.Prompts, preset)
	if err != nil {
		return err
	}

	runner, err := genx.NewRunner(reg, genx.Options{
		ProjectRoot:  settings.Root,
		TemplateRoot: resolvedTemplateRoot(file),
		Logger:       logger,
		Overwrite:    settings.Force,
	})
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context(), gen.Name, genx.NewAnswers(values))
	printReport(gen, report, err)
	return err
}

// presetAnswers merges the answer file with --set; --set wins.
func presetAnswers() (map[string]string, error) {
	var fromFile map[string]string
	if runAnswers != "" {
		loaded, err := answers.LoadFile(runAnswers)
		if err != nil {
			return nil, err
		}
		fromFile = loaded
	}
	fromFlags, err := answers.ParseAssignments(runSet)
	if err != nil {
		return nil, err
	}
	return answers.Merge(fromFile, fromFlags), nil
}

// printReport prints the applied actions by index. The halting action's error
// itself is printed by execute.
func printReport(gen genx.Generator, report *genx.Report, runErr error) {
	if report == nil {
		return
	}

	var actionErr *genx.ActionError
	failed := stderrors.As(runErr, &actionErr)

	if ui.JSONOutput() {
		data := map[string]any{"report": report}
		if failed {
			data["failed_index"] = actionErr.Index
			data["failed_kind"] = actionErr.Kind
		}
		level, text := ui.LevelSuccess, "generator finished"
		if runErr != nil {
			level, text = ui.LevelError, "generator failed"
		}
		ui.Data(level, text, data)
		return
	}

	for _, res := range report.Results {
		detail := strings.Join(res.Paths, ", ")
		if len(res.Skipped) > 0 {
			detail += " (skipped existing: " + strings.Join(res.Skipped, ", ") + ")"
		}
		if detail == "" {
			detail = "no changes"
		}
		ui.Print("  %d. %-14s %s\n", res.Index, res.Kind, detail)
	}

	if failed {
		ui.Warning("stopped at action %d of %d (%s); %d earlier action(s) stay applied",
			actionErr.Index, len(gen.Actions), actionErr.Kind, len(report.Results))
		return
	}
	if runErr == nil {
		ui.Success("%s: %d action(s), %d file(s) touched", report.Generator, len(report.Results), len(report.Paths()))
	}
}
