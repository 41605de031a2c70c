// Package prompt collects answers for a generator's prompts.
//
// Overview:
//   - Responsibility: Ask only the prompts the preset does not answer, through a huh form
//   - Key Types: Collector interface, FormCollector implementation, Options
//   - Concurrency Model: One Collect call at a time per terminal
//   - Error Semantics: MISSING_VARIABLE when a prompt stays unanswered, ABORTED on Ctrl+C
//   - Performance Notes: One form per run; non-interactive runs never touch the terminal
//
// Usage:
//
//	collector := prompt.New(prompt.Options{Interactive: true})
//	values, err := collector.Collect(ctx, gen.Prompts, preset)
package prompt

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/genx"
)

// Collector resolves prompt answers.
type Collector interface {
	// Collect returns preset merged with answers for every prompt. Preset values are never asked again.
	Collect(ctx context.Context, prompts []genx.Prompt, preset map[string]string) (map[string]string, error)
}

// Options configures a FormCollector.
type Options struct {
	Interactive bool      // Ask unanswered prompts when stdin is a terminal
	Accessible  bool      // Use huh's accessible (line based) mode
	Input       io.Reader // Form input (default: os.Stdin)
	Output      io.Writer // Form output (default: os.Stderr)
}

var _ Collector = (*FormCollector)(nil)

// FormCollector asks prompts through a huh form and falls back to defaults otherwise.
type FormCollector struct {
	opts       Options
	isTerminal func() bool
}

// New creates a FormCollector.
func New(opts Options) *FormCollector {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &FormCollector{opts: opts, isTerminal: stdinIsTerminal}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Collect implements Collector.
//
// Parameters:
//   - ctx: Cancels an open form
//   - prompts: Generator prompts in declaration order
//   - preset: Answers from --set and answer files
//
// Returns:
//   - map[string]string: Preset plus one answer per prompt
//   - error: MISSING_VARIABLE listing unanswered prompts, ABORTED, or INTERNAL
func (c *FormCollector) Collect(ctx context.Context, prompts []genx.Prompt, preset map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(preset)+len(prompts))
	for k, v := range preset {
		out[k] = v
	}

	var pending []genx.Prompt
	for _, p := range prompts {
		if _, ok := out[p.Name]; !ok {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return out, nil
	}

	if c.opts.Interactive && c.isTerminal() {
		if err := c.ask(ctx, pending, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var missing []string
	for _, p := range pending {
		if p.Default == "" {
			missing = append(missing, p.Name)
			continue
		}
		out[p.Name] = p.Default
	}
	if len(missing) > 0 {
		return nil, errors.Build(errors.CodeMissingVariable).
			WithOp("prompt.collect").
			WithMsgf("no answer for %s (pass --set name=value or an answers file)", strings.Join(missing, ", ")).
			WithDetails(toAny(missing)...).
			Err()
	}
	return out, nil
}

// ask runs one form holding a field per pending prompt and stores the results in out.
func (c *FormCollector) ask(ctx context.Context, pending []genx.Prompt, out map[string]string) error {
	fields := make([]huh.Field, 0, len(pending))
	collect := make([]func(), 0, len(pending))

	for _, p := range pending {
		title := p.Message
		if title == "" {
			title = p.Name
		}

		switch p.Kind {
		case genx.PromptConfirm:
			value, _ := strconv.ParseBool(p.Default)
			fields = append(fields, huh.NewConfirm().Title(title).Value(&value))
			collect = append(collect, func() { out[p.Name] = strconv.FormatBool(value) })
		case genx.PromptSelect:
			value := p.Default
			fields = append(fields, huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(p.Choices...)...).
				Value(&value))
			collect = append(collect, func() { out[p.Name] = value })
		default:
			value := p.Default
			input := huh.NewInput().Title(title).Value(&value)
			if p.Default != "" {
				input = input.Placeholder(p.Default)
			}
			input = input.Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("%s is required", p.Name)
				}
				return nil
			})
			fields = append(fields, input)
			collect = append(collect, func() { out[p.Name] = value })
		}
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(c.opts.Input).
		WithOutput(c.opts.Output).
		WithAccessible(c.opts.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) || stderrors.Is(err, context.Canceled) {
			return errors.Wrap(errors.CodeAborted, "prompt.collect", err)
		}
		return errors.Wrap(errors.CodeInternal, "prompt.collect", err)
	}

	for _, fn := range collect {
		fn()
	}
	return nil
}

func toAny(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
