package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/configschema"
	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/core/errors"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate hatch.yaml",
	Long: `Validate hatch.yaml and report every problem with its YAML path.

The check covers the schema, unique generator and prompt names, hook and
pattern usage, template syntax and answers no prompt asks for. Generators are
then built, which reads every template_file.

Example:
  hatch check
  hatch check --config tools/hatch.yaml --json`,
	Args: noArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck executes the check command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Command arguments
//
// Returns:
//   - error: INVALID_ARGUMENT when error diagnostics were found
func runCheck(cmd *cobra.Command, args []string) error {
	path := configFile()
	ui.Info("Checking %s...", path)

	file, diags := configschema.Load(path)
	printDiagnostics(diags, true)
	if diags.HasErrors() {
		return errors.Newf(errors.CodeInvalidArgument, "check failed with %d error(s)", diags.Count(configschema.SeverityError))
	}

	reg, err := configschema.BuildRegistry(file, resolvedTemplateRoot(file))
	if err != nil {
		return err
	}

	if n := diags.Count(configschema.SeverityWarning); n > 0 {
		ui.Warning("%d generator(s) valid with %d warning(s)", reg.Len(), n)
		return nil
	}
	ui.Success("%d generator(s) valid, no issues found", reg.Len())
	return nil
}

// printDiagnostics prints diagnostics by severity. Info items are printed only when all is set.
func printDiagnostics(diags *configschema.Diagnostics, all bool) {
	for _, d := range diags.Items() {
		if ui.JSONOutput() {
			if d.Severity != configschema.SeverityInfo || all {
				ui.Data(uiLevel(d.Severity), d.Message, d)
			}
			continue
		}

		text := d.Message
		if d.Path != "" {
			text = d.Path + ": " + text
		}
		if d.Suggestion != "" {
			text += " (" + d.Suggestion + ")"
		}
		switch d.Severity {
		case configschema.SeverityError:
			ui.Error("%s", text)
		case configschema.SeverityWarning:
			ui.Warning("%s", text)
		default:
			if all {
				ui.Info("%s", text)
			}
		}
	}
}

func uiLevel(s configschema.DiagnosticSeverity) ui.OutputLevel {
	switch s {
	case configschema.SeverityError:
		return ui.LevelError
	case configschema.SeverityWarning:
		return ui.LevelWarning
	default:
		return ui.LevelInfo
	}
}
