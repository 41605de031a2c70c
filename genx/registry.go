package genx

import (
	"strings"

	"go.eggybyte.com/hatch/core/errors"
)

// Registry holds generators by name in registration order.
// It is built once, then read-only; it is not safe for concurrent Register calls.
type Registry struct {
	byName map[string]int
	list   []Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds g. Names must be non-empty and unique, and every action non-nil.
func (r *Registry) Register(g Generator) error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New(errors.CodeInvalidArgument, "generator name is required")
	}
	if _, exists := r.byName[g.Name]; exists {
		return errors.Build(errors.CodeDuplicateName).
			WithOp("genx.register").
			WithMsgf("generator %q is already registered", g.Name).
			Err()
	}
	for i, a := range g.Actions {
		if a == nil {
			return errors.Newf(errors.CodeInvalidArgument, "generator %q: action %d is nil", g.Name, i)
		}
	}

	g.Actions = append([]Action(nil), g.Actions...)
	g.Prompts = append([]Prompt(nil), g.Prompts...)
	r.byName[g.Name] = len(r.list)
	r.list = append(r.list, g)
	return nil
}

// Lookup returns the generator registered under name.
func (r *Registry) Lookup(name string) (Generator, error) {
	i, ok := r.byName[name]
	if !ok {
		return Generator{}, errors.Build(errors.CodeUnknownGenerator).
			WithOp("genx.lookup").
			WithMsgf("no generator named %q", name).
			WithDetails(r.Names()).
			Err()
	}
	return r.list[i], nil
}

// Names returns generator names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.list))
	for i, g := range r.list {
		names[i] = g.Name
	}
	return names
}

// List returns the generators in registration order.
func (r *Registry) List() []Generator {
	return append([]Generator(nil), r.list...)
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	return len(r.list)
}
