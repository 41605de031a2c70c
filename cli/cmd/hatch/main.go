// Package main provides the hatch CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing, settings and logger setup, exit codes
//   - Key Types: Cobra command tree rooted at rootCmd
//   - Concurrency Model: Single-threaded CLI execution, cancelled on interrupt
//   - Error Semantics: Exit status 1 on failure, 2 on usage errors
//   - Performance Notes: hatch.yaml is loaded once per command
//
// Usage:
//
//	hatch [command] [flags]
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.eggybyte.com/hatch/cli/internal/ui"
	"go.eggybyte.com/hatch/configx"
	"go.eggybyte.com/hatch/core/log"
	"go.eggybyte.com/hatch/logx"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	configPath     string
	projectRoot    string
	templateRoot   string
	logLevel       string
	logFormat      string
)

// Process-wide state prepared by setup before any command runs.
var (
	settings configx.Settings
	logger   log.Logger = log.Nop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hatch",
	Short: "Template-driven code scaffolding",
	Long: `hatch turns a named generator and a set of answers into new files and
in-place edits of existing source files.

Generators are defined in hatch.yaml. Each one asks a few questions and then
runs its actions in order:
  - addMany   create files from templates
  - append    add a line to the end of a file
  - modify    insert text right after a hook marker

Settings can also be given as HATCH_CONFIG, HATCH_ROOT, HATCH_TEMPLATE_ROOT,
HATCH_LOG_LEVEL, HATCH_LOG_FORMAT and HATCH_FORCE.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; fall back to defaults")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.StringVarP(&configPath, "config", "c", "hatch.yaml", "Generator definition file, relative to --root")
	flags.StringVarP(&projectRoot, "root", "r", ".", "Project root that generated paths are relative to")
	flags.StringVar(&templateRoot, "template-root", "", "Template directory (default: directory of --config)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "logfmt", "Log format: logfmt, json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
}

// usageError marks errors caused by invalid command-line usage.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// noArgs is cobra.NoArgs reporting a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

// setup configures output, loads settings from HATCH_* variables and explicit
// flags, and builds the process logger.
//
// Parameters:
//   - cmd: Command about to run
//   - args: Command arguments
//
// Returns:
//   - error: INVALID_ARGUMENT for settings that fail validation
func setup(cmd *cobra.Command, args []string) error {
	ui.SetVerbose(verbose)
	ui.SetJSONOutput(jsonOutput)
	ui.SetColor(isTerminal(os.Stdout))

	explicit := map[string]string{}
	for flag, key := range map[string]string{
		"config":        "CONFIG",
		"root":          "ROOT",
		"template-root": "TEMPLATE_ROOT",
		"log-level":     "LOG_LEVEL",
		"log-format":    "LOG_FORMAT",
		"force":         "FORCE",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			explicit[key] = f.Value.String()
		}
	}
	if verbose {
		if _, ok := explicit["LOG_LEVEL"]; !ok {
			explicit["LOG_LEVEL"] = "debug"
		}
	}

	settings = configx.Settings{}
	if err := configx.Load(cmd.Context(), &settings,
		configx.NewEnvSource(configx.EnvOptions{Prefix: configx.EnvPrefix}),
		configx.NewMapSource(explicit),
	); err != nil {
		return usageError{err}
	}

	level, err := logx.ParseLevel(settings.LogLevel)
	if err != nil {
		return usageError{err}
	}
	format, err := logx.ParseFormat(settings.LogFormat)
	if err != nil {
		return usageError{err}
	}
	logger = logx.New(
		logx.WithLevel(level),
		logx.WithFormat(format),
		logx.WithWriter(cmd.ErrOrStderr()),
		logx.WithColor(format == logx.FormatLogfmt && isTerminal(os.Stderr)),
	)
	logger.Debug("settings loaded",
		"config", settings.Config,
		"root", settings.Root,
		"template_root", settings.TemplateRoot,
		"force", settings.Force)
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// execute runs the command tree with args and returns the process exit status.
//
// Parameters:
//   - ctx: Cancelled on interrupt
//   - args: Arguments without the program name
//   - stdout, stderr: Output streams
//
// Returns:
//   - int: 0 on success, 1 on failure, 2 on usage errors
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	ui.SetOutput(stdout, stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var usage usageError
	if stderrors.As(err, &usage) || strings.HasPrefix(err.Error(), "unknown command") {
		ui.Error("%v", err)
		fmt.Fprintln(stderr, "Run 'hatch --help' for usage.")
		return exitUsage
	}
	ui.Error("%v", err)
	return exitError
}

// main is the entry point for the hatch CLI tool.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
