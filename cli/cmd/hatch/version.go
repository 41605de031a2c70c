package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/cli/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hatch version information",
	Long: `Display version information for the hatch CLI.

This command shows:
  • CLI version, git commit hash, and build timestamp
  • Supported hatch.yaml config_version
  • Go runtime version`,
	Args: noArgs,
	Run:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Add --version and -v flags to root command
	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}

func runVersion(cmd *cobra.Command, args []string) {
	if ui.JSONOutput() {
		ui.Data(ui.LevelInfo, version.GetVersionString(), map[string]string{
			"version":        version.Version,
			"commit":         version.Commit,
			"build_time":     version.BuildTime,
			"config_version": version.ConfigVersion,
		})
		return
	}
	ui.Print("%s\n", version.GetFullVersionInfo())
}
