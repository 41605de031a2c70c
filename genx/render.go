package genx

import (
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"go.eggybyte.com/hatch/casex"
	"go.eggybyte.com/hatch/core/errors"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"snakeCase":    casex.Snake,
		"pascalCase":   casex.Pascal,
		"camelCase":    casex.Camel,
		"kebabCase":    casex.Kebab,
		"kabobCase":    casex.Kebab,
		"constantCase": casex.Constant,
		"dotCase":      casex.Dot,
		"titleCase":    casex.Title,
		"lowerCase":    strings.ToLower,
		"upperCase":    strings.ToUpper,
	}
}

// Renderer expands text/template sources against answers.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer creates a Renderer with the default helpers.
func NewRenderer() *Renderer {
	return &Renderer{funcs: Funcs()}
}

// Render parses tmpl and executes it against answers.
// Every answer referenced as .name, $.name or index . "name" must be present; otherwise the error is
// MISSING_VARIABLE and names the absent answers. Parse failures are INVALID_ARGUMENT.
func (r *Renderer) Render(name, tmpl string, answers Answers) (string, error) {
	t, err := r.parse(name, tmpl)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, v := range variables(t) {
		if _, ok := answers.Lookup(v); !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", errors.Build(errors.CodeMissingVariable).
			WithOp("genx.render").
			WithMsgf("template %q needs %s", name, strings.Join(missing, ", ")).
			WithDetails(missing).
			Err()
	}

	var out strings.Builder
	if err := t.Execute(&out, answers.values); err != nil {
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", errors.Wrapf(errors.CodeMissingVariable, "genx.render", err, "template %q", name)
		}
		return "", errors.Wrapf(errors.CodeInvalidArgument, "genx.render", err, "execute template %q", name)
	}
	return out.String(), nil
}

// Variables returns the sorted answer names referenced by tmpl.
func (r *Renderer) Variables(name, tmpl string) ([]string, error) {
	t, err := r.parse(name, tmpl)
	if err != nil {
		return nil, err
	}
	return variables(t), nil
}

func (r *Renderer) parse(name, tmpl string) (*template.Template, error) {
	t, err := template.New(name).Funcs(r.funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "genx.render", err, "parse template %q", name)
	}
	return t, nil
}

// variables walks every tree of t and collects fields read from the root data.
func variables(t *template.Template) []string {
	seen := make(map[string]struct{})
	for _, tt := range t.Templates() {
		if tt.Tree != nil && tt.Tree.Root != nil {
			walk(tt.Tree.Root, true, seen)
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// walk records field references. atRoot is false inside range and with bodies,
// where dot no longer refers to the answers.
func walk(node parse.Node, atRoot bool, seen map[string]struct{}) {
	switch n := node.(type) {
	case nil:
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			walk(c, atRoot, seen)
		}
	case *parse.ActionNode:
		walk(n.Pipe, atRoot, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, c := range n.Cmds {
			walk(c, atRoot, seen)
		}
	case *parse.CommandNode:
		if key, ok := indexKey(n, atRoot); ok {
			seen[key] = struct{}{}
		}
		for _, arg := range n.Args {
			walk(arg, atRoot, seen)
		}
	case *parse.ChainNode:
		walk(n.Node, atRoot, seen)
	case *parse.FieldNode:
		if atRoot && len(n.Ident) > 0 {
			seen[n.Ident[0]] = struct{}{}
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			seen[n.Ident[1]] = struct{}{}
		}
	case *parse.IfNode:
		walk(n.Pipe, atRoot, seen)
		walk(n.List, atRoot, seen)
		walk(n.ElseList, atRoot, seen)
	case *parse.RangeNode:
		walk(n.Pipe, atRoot, seen)
		walk(n.List, false, seen)
		walk(n.ElseList, atRoot, seen)
	case *parse.WithNode:
		walk(n.Pipe, atRoot, seen)
		walk(n.List, false, seen)
		walk(n.ElseList, atRoot, seen)
	case *parse.TemplateNode:
		walk(n.Pipe, atRoot, seen)
	}
}

// indexKey reports the answer read by {{index . "key"}} or {{index $ "key"}}.
// index yields "" for an absent map key instead of failing, so these reads
// need the same up-front check as .key.
func indexKey(n *parse.CommandNode, atRoot bool) (string, bool) {
	if len(n.Args) < 3 {
		return "", false
	}
	if id, ok := n.Args[0].(*parse.IdentifierNode); !ok || id.Ident != "index" {
		return "", false
	}
	switch data := n.Args[1].(type) {
	case *parse.DotNode:
		if !atRoot {
			return "", false
		}
	case *parse.VariableNode:
		if len(data.Ident) != 1 || data.Ident[0] != "$" {
			return "", false
		}
	default:
		return "", false
	}
	key, ok := n.Args[2].(*parse.StringNode)
	if !ok {
		return "", false
	}
	return key.Text, true
}
