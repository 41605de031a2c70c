package genx

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/testingx"
)

// runOne registers a single-action generator over a fresh tree and runs it.
func runOne(t *testing.T, root string, overwrite bool, action Action, answers map[string]string) (*Report, error) {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(Generator{Name: "g", Actions: []Action{action}}))
	runner, err := NewRunner(reg, Options{ProjectRoot: root, Logger: testingx.NewMockLogger(t), Overwrite: overwrite})
	require.NoError(t, err)
	return runner.Run(context.Background(), "g", NewAnswers(answers))
}

func componentTree(t *testing.T, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		"tpl/component/mod.rs.hbs":                                  "pub struct {{pascalCase .component_name}};\n",
		"tpl/component/{{snakeCase .component_name}}/view.html.tmpl": "<div class=\"{{kebabCase .component_name}}\"></div>\n",
	}
	for k, v := range extra {
		files[k] = v
	}
	return testingx.WriteTree(t, t.TempDir(), files)
}

var componentAction = CreateFiles{
	Destination:   "web/{{kebabCase .component_name}}",
	TemplateFiles: "tpl/component/**",
}

func TestCreateFiles_RendersTree(t *testing.T) {
	root := componentTree(t, nil)

	report, err := runOne(t, root, false, componentAction, map[string]string{"component_name": "user profile"})
	require.NoError(t, err)

	assert.Equal(t, "pub struct UserProfile;\n", testingx.ReadFile(t, root, "web/user-profile/mod.rs"))
	assert.Equal(t, "<div class=\"user-profile\"></div>\n", testingx.ReadFile(t, root, "web/user-profile/user_profile/view.html"))
	assert.Equal(t, []string{"web/user-profile/mod.rs", "web/user-profile/user_profile/view.html"}, report.Results[0].Paths)
}

func TestCreateFiles_ExplicitBaseAndExtensions(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{
		"tpl/a/b/file.rs.jinja": "// {{.n}}\n",
	})
	action := CreateFiles{Destination: "out", TemplateFiles: "tpl/a/**/*.jinja", Base: "tpl", StripExtensions: []string{".jinja"}}

	_, err := runOne(t, root, false, action, map[string]string{"n": "x"})
	require.NoError(t, err)
	assert.Equal(t, "// x\n", testingx.ReadFile(t, root, "out/a/b/file.rs"))
}

func TestCreateFiles_CollisionFailsBeforeWriting(t *testing.T) {
	root := componentTree(t, map[string]string{"web/user-profile/user_profile/view.html": "keep"})

	_, err := runOne(t, root, false, componentAction, map[string]string{"component_name": "user profile"})
	testingx.AssertCode(t, err, errors.CodeAlreadyExists)

	assert.Equal(t, "keep", testingx.ReadFile(t, root, "web/user-profile/user_profile/view.html"))
	testingx.AssertNotExists(t, root, "web/user-profile/mod.rs")
}

func TestCreateFiles_Force(t *testing.T) {
	root := componentTree(t, map[string]string{"web/user-profile/mod.rs": "old"})

	action := componentAction
	action.Force = true
	_, err := runOne(t, root, false, action, map[string]string{"component_name": "user profile"})
	require.NoError(t, err)
	assert.Equal(t, "pub struct UserProfile;\n", testingx.ReadFile(t, root, "web/user-profile/mod.rs"))
}

func TestCreateFiles_RunnerOverwrite(t *testing.T) {
	root := componentTree(t, map[string]string{"web/user-profile/mod.rs": "old"})

	_, err := runOne(t, root, true, componentAction, map[string]string{"component_name": "user profile"})
	require.NoError(t, err)
	assert.Equal(t, "pub struct UserProfile;\n", testingx.ReadFile(t, root, "web/user-profile/mod.rs"))
}

func TestCreateFiles_SkipIfExists(t *testing.T) {
	root := componentTree(t, map[string]string{"web/user-profile/mod.rs": "old"})

	action := componentAction
	action.SkipIfExists = true
	report, err := runOne(t, root, false, action, map[string]string{"component_name": "user profile"})
	require.NoError(t, err)

	assert.Equal(t, "old", testingx.ReadFile(t, root, "web/user-profile/mod.rs"))
	assert.Equal(t, []string{"web/user-profile/mod.rs"}, report.Results[0].Skipped)
	assert.Equal(t, []string{"web/user-profile/user_profile/view.html"}, report.Results[0].Paths)
}

func TestCreateFiles_NoMatches(t *testing.T) {
	root := t.TempDir()
	_, err := runOne(t, root, false, CreateFiles{Destination: "out", TemplateFiles: "tpl/missing/*.hbs"}, nil)
	testingx.AssertCode(t, err, errors.CodeNotFound)
}

func TestCreateFiles_MissingVariableWritesNothing(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{
		"tpl/x/a.txt": "fine\n",
		"tpl/x/b.txt": "{{.unknown}}\n",
	})

	_, err := runOne(t, root, false, CreateFiles{Destination: "out", TemplateFiles: "tpl/x/*.txt"}, nil)
	testingx.AssertCode(t, err, errors.CodeMissingVariable)
	testingx.AssertNotExists(t, root, "out/a.txt")
}

func TestCreateFiles_DestinationEscape(t *testing.T) {
	root := componentTree(t, nil)

	_, err := runOne(t, root, false, CreateFiles{Destination: "../{{.component_name}}", TemplateFiles: "tpl/component/**"},
		map[string]string{"component_name": "x"})
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)
}

func TestAppendLine_AddsExactlyOneLine(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		want    string
	}{
		{"empty file", "", "pub mod user_profile;\n"},
		{"trailing newline", "pub mod a;\n", "pub mod a;\npub mod user_profile;\n"},
		{"no trailing newline", "pub mod a;", "pub mod a;\npub mod user_profile;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testingx.WriteTree(t, t.TempDir(), map[string]string{"src/components.rs": tt.initial})
			action := AppendLine{Path: "src/components.rs", Template: "pub mod {{snakeCase .component_name}};"}

			report, err := runOne(t, root, false, action, map[string]string{"component_name": "user profile"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, testingx.ReadFile(t, root, "src/components.rs"))
			assert.Equal(t, 1, report.Results[0].Insertions)
		})
	}
}

func TestAppendLine_TwiceAppendsTwice(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"mods.rs": ""})
	action := AppendLine{Path: "mods.rs", Template: "pub mod a;"}

	for i := 0; i < 2; i++ {
		_, err := runOne(t, root, false, action, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, "pub mod a;\npub mod a;\n", testingx.ReadFile(t, root, "mods.rs"))
}

func TestAppendLine_Unique(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"mods.rs": "pub mod a;\r\npub mod ab;"})
	action := AppendLine{Path: "mods.rs", Template: "pub mod a;", Unique: true}

	report, err := runOne(t, root, false, action, nil)
	require.NoError(t, err)
	assert.Equal(t, "pub mod a;\r\npub mod ab;", testingx.ReadFile(t, root, "mods.rs"))
	assert.Equal(t, []string{"mods.rs"}, report.Results[0].Skipped)

	action.Template = "pub mod b;"
	_, err = runOne(t, root, false, action, nil)
	require.NoError(t, err)
	assert.Equal(t, "pub mod a;\r\npub mod ab;\npub mod b;\n", testingx.ReadFile(t, root, "mods.rs"))
}

func TestAppendLine_MissingFile(t *testing.T) {
	_, err := runOne(t, t.TempDir(), false, AppendLine{Path: "nope.rs", Template: "x"}, nil)
	testingx.AssertCode(t, err, errors.CodeFileNotFound)
}

func TestNewPatchAtHook_Validation(t *testing.T) {
	_, err := NewPatchAtHook("a", "", "x")
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)

	_, err = NewPatchAtHook("a", "(", "x")
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)

	_, err = NewPatchAtHook("a", "x*", "y")
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)

	_, err = NewPatchAtLiteralHook("a", "", "x")
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)

	hook, err := NewPatchAtLiteralHook("a", "//##PLOP (HOOK)##", "x")
	require.NoError(t, err)
	assert.True(t, hook.Anchor.MatchString("before //##PLOP (HOOK)## after"))
	assert.False(t, hook.Anchor.MatchString("//##PLOP HOOK##"))
}

func TestInsertAfterMatches_PreservesOtherBytes(t *testing.T) {
	content := []byte("a\r\n//H\tb\n  //H\nend")
	out, n, err := insertAfterMatches("f", content, regexp.MustCompile(regexp.QuoteMeta("//H")), []byte("+"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "a\r\n//H+\tb\n  //H+\nend", string(out))
}

func TestInsertAfterMatches_EmptyMatch(t *testing.T) {
	_, _, err := insertAfterMatches("f", []byte("abc"), regexp.MustCompile(`\b`), []byte("+"))
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)
}

func TestPatchAtHook_MissingAnchorLeavesFileUnchanged(t *testing.T) {
	original := "fn main() {\n    // no hook here\n}\n"
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"src/main.rs": original})
	hook, err := NewPatchAtLiteralHook("src/main.rs", "//##PLOP INSERT COMMAND HOOK##", "\nx")
	require.NoError(t, err)

	_, err = runOne(t, root, false, hook, nil)
	testingx.AssertCode(t, err, errors.CodeAnchorNotFound)
	assert.Equal(t, original, testingx.ReadFile(t, root, "src/main.rs"))
}

func TestPatchAtHook_MissingFile(t *testing.T) {
	hook, err := NewPatchAtLiteralHook("src/gone.rs", "//H", "x")
	require.NoError(t, err)

	_, err = runOne(t, t.TempDir(), false, hook, nil)
	testingx.AssertCode(t, err, errors.CodeFileNotFound)
}

func TestPatchAtHook_StacksAcrossRuns(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{
		"svc.rs": "match cmd {\n    //##PLOP INSERT COMMAND HOOK##\n}\n",
	})
	hook, err := NewPatchAtLiteralHook("svc.rs", "//##PLOP INSERT COMMAND HOOK##", "\n    Cmd::{{pascalCase .command_name}} => {}")
	require.NoError(t, err)

	for _, name := range []string{"create user", "update user"} {
		_, err := runOne(t, root, false, hook, map[string]string{"command_name": name})
		require.NoError(t, err)
	}

	want := "match cmd {\n    //##PLOP INSERT COMMAND HOOK##\n    Cmd::UpdateUser => {}\n    Cmd::CreateUser => {}\n}\n"
	assert.Equal(t, want, testingx.ReadFile(t, root, "svc.rs"))
}

func TestPatchAtHook_PatchesEveryMatchAndKeepsMode(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"run.sh": "# HOOK\necho\n# HOOK\n"})
	script := filepath.Join(root, "run.sh")
	require.NoError(t, os.Chmod(script, 0o755))

	hook, err := NewPatchAtHook("run.sh", `#\s+HOOK`, "\n# added")
	require.NoError(t, err)

	report, err := runOne(t, root, false, hook, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Results[0].Insertions)
	assert.Equal(t, "# HOOK\n# added\necho\n# HOOK\n# added\n", testingx.ReadFile(t, root, "run.sh"))

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestPatchAtHook_NilAnchor(t *testing.T) {
	root := testingx.WriteTree(t, t.TempDir(), map[string]string{"a.rs": "x"})
	_, err := runOne(t, root, false, PatchAtHook{Path: "a.rs", Template: "y"}, nil)
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)
}

func TestDescribe(t *testing.T) {
	hook, err := NewPatchAtLiteralHook("src/lib.rs", "//H", "x")
	require.NoError(t, err)

	assert.Equal(t, "create web from tpl/**", CreateFiles{Destination: "web", TemplateFiles: "tpl/**"}.Describe())
	assert.Equal(t, "append to src/mod.rs", AppendLine{Path: "src/mod.rs"}.Describe())
	assert.Equal(t, "patch src/lib.rs after //H", hook.Describe())
	assert.Equal(t, KindPatchAtHook, hook.Kind())
}
