package main

import (
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/genx"
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show <generator>",
	Short: "Show the prompts and actions of a generator",
	Args:  exactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

type promptView struct {
	Name    string   `json:"name"`
	Message string   `json:"message"`
	Kind    string   `json:"kind"`
	Default string   `json:"default,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

type actionView struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Describe string `json:"describe"`
}

type generatorView struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Prompts     []promptView `json:"prompts"`
	Actions     []actionView `json:"actions"`
}

func runShow(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	g, err := reg.Lookup(args[0])
	if err != nil {
		return err
	}

	view := describeGenerator(g)
	if ui.JSONOutput() {
		ui.Data(ui.LevelInfo, g.Name, view)
		return nil
	}

	ui.Print("%s\n", g.Name)
	if g.Description != "" {
		ui.Print("  %s\n", g.Description)
	}
	ui.Print("\nPrompts:\n")
	if len(view.Prompts) == 0 {
		ui.Print("  (none)\n")
	}
	for _, p := range view.Prompts {
		line := "  " + p.Name + " (" + p.Kind + ")"
		if p.Message != p.Name {
			line += ": " + p.Message
		}
		if len(p.Choices) > 0 {
			line += " [" + strings.Join(p.Choices, ", ") + "]"
		}
		if p.Default != "" {
			line += " default " + p.Default
		}
		ui.Print("%s\n", line)
	}
	ui.Print("\nActions:\n")
	for _, a := range view.Actions {
		ui.Print("  %d. %-14s %s\n", a.Index, a.Kind, a.Describe)
	}
	return nil
}

func describeGenerator(g genx.Generator) generatorView {
	view := generatorView{Name: g.Name, Description: g.Description}
	for _, p := range g.Prompts {
		view.Prompts = append(view.Prompts, promptView{
			Name:    p.Name,
			Message: p.Message,
			Kind:    string(p.Kind),
			Default: p.Default,
			Choices: p.Choices,
		})
	}
	for i, a := range g.Actions {
		view.Actions = append(view.Actions, actionView{Index: i, Kind: string(a.Kind()), Describe: a.Describe()})
	}
	return view
}
