package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/templates"
	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/internal/projectfs"
)

var initForce bool

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter hatch.yaml and sample template",
	Long: `Write a starter hatch.yaml and a sample template into the project root.

Existing files are never overwritten unless --force is given.

Example:
  hatch init
  hatch init --root ./my-project --force`,
	Args: noArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing starter files")
	rootCmd.AddCommand(initCmd)
}

// runInit executes the init command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Command arguments
//
// Returns:
//   - error: ALREADY_EXISTS when starter files are present without --force
func runInit(cmd *cobra.Command, args []string) error {
	project, err := projectfs.New(settings.Root, logger)
	if err != nil {
		return err
	}

	written, err := templates.WriteStarter(project, settings.Force)
	if err != nil {
		return err
	}

	for i, rel := range written {
		ui.Step(i+1, len(written), "wrote %s", rel)
	}
	ui.Data(ui.LevelSuccess, "Starter kit written to "+project.Root(), map[string]any{"files": written})
	ui.Info("Next: edit hatch.yaml, then run 'hatch list'")
	return nil
}
