package genx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/testingx"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Generator{Name: "web-htmx-component", Description: "component"}))
	require.NoError(t, reg.Register(Generator{Name: "add-resource"}))
	require.NoError(t, reg.Register(Generator{Name: "add-command"}))

	assert.Equal(t, []string{"web-htmx-component", "add-resource", "add-command"}, reg.Names())
	assert.Equal(t, 3, reg.Len())

	g, err := reg.Lookup("web-htmx-component")
	require.NoError(t, err)
	assert.Equal(t, "component", g.Description)

	list := reg.List()
	list[0].Name = "mutated"
	assert.Equal(t, "web-htmx-component", reg.Names()[0])
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Generator{Name: "a"}))

	testingx.AssertCode(t, reg.Register(Generator{Name: "a"}), errors.CodeDuplicateName)
	testingx.AssertCode(t, reg.Register(Generator{Name: " "}), errors.CodeInvalidArgument)
	testingx.AssertCode(t, reg.Register(Generator{Name: "b", Actions: []Action{nil}}), errors.CodeInvalidArgument)

	_, err := reg.Lookup("missing")
	testingx.AssertCode(t, err, errors.CodeUnknownGenerator)
}

func TestRegistry_CopiesActions(t *testing.T) {
	actions := []Action{AppendLine{Path: "a"}}
	reg := NewRegistry()
	require.NoError(t, reg.Register(Generator{Name: "g", Actions: actions}))

	actions[0] = AppendLine{Path: "changed"}
	g, err := reg.Lookup("g")
	require.NoError(t, err)
	assert.Equal(t, "a", g.Actions[0].(AppendLine).Path)
}
