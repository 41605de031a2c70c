package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/ui"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the generators defined in hatch.yaml",
	Args:  noArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// generatorSummary is the JSON form of one listed generator.
type generatorSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Actions     int    `json:"actions"`
}

func runList(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	gens := reg.List()
	if len(gens) == 0 {
		ui.Warning("No generators defined in %s", configFile())
		return nil
	}

	width := 0
	for _, g := range gens {
		if len(g.Name) > width {
			width = len(g.Name)
		}
	}

	summaries := make([]generatorSummary, 0, len(gens))
	for _, g := range gens {
		summaries = append(summaries, generatorSummary{Name: g.Name, Description: g.Description, Actions: len(g.Actions)})
		ui.Print("  %-*s  %s\n", width, g.Name, g.Description)
	}
	if ui.JSONOutput() {
		ui.Data(ui.LevelInfo, "generators", summaries)
	}
	return nil
}
