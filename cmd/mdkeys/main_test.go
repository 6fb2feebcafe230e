package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, err := newRootCmd(viper.New())
	require.NoError(t, err)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestMain_stdin(t *testing.T) {
	chdir(t, t.TempDir())
	for _, tc := range []struct {
		name string
		in   string
		args []string
		out  string
	}{
		{"continue list",
			"1. alpha", []string{"--keys", `enter type beta enter enter`},
			"1. alpha\n2. beta\n"},
		{"indent item",
			"1. a\n2. b\n3. c", []string{"--at", "2:4", "--keys", "tab"},
			"1. a\n  1. b\n2. c"},
		{"tab indent unit",
			"- a\n- b", []string{"--at", "2:1", "--keys", "tab", "--indent-unit", "tab"},
			"- a\n\t- b"},
		{"plain text",
			"x", []string{"--keys", "enter 'y'"},
			"x\ny"},
		{"diff",
			"> a\nb", []string{"--at", "3", "--keys", "enter", "--diff"},
			" > a\n+> \n b\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runMain(t, tc.in, append(tc.args, "-")...)
			require.NoError(t, err)
			assert.Equal(t, tc.out, out)
		})
	}
}

func TestMain_write(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	name := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(name, []byte("- a"), 0o600))
	script := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(script, []byte("# add an item\nenter\ntype b\n"), 0o644))

	out, _, err := runMain(t, "", "-w", "--script", script, name)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", string(b))
	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMain_config(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mdcont.yaml"), []byte("indent_unit: \"    \"\n"), 0o644))

	out, _, err := runMain(t, "- a\n- b", "--at", "2:1", "--keys", "tab", "-")
	require.NoError(t, err)
	assert.Equal(t, "- a\n    - b", out)
}

func TestMain_verbose(t *testing.T) {
	chdir(t, t.TempDir())
	_, errOut, err := runMain(t, "- a", "-v", "--keys", "enter type b", "-")
	require.NoError(t, err)
	assert.Equal(t, "mdkeys: enter handled:true\nmdkeys: type b\n", errOut)
}

func TestMain_errors(t *testing.T) {
	chdir(t, t.TempDir())
	for _, tc := range []struct {
		name string
		args []string
		err  string
	}{
		{"bad script", []string{"--keys", "jump", "-"}, `invalid script syntax: unknown step "jump"`},
		{"bad position", []string{"--at", "9:1", "-"}, "invalid --at: position out of range"},
		{"write stdin", []string{"-w", "-"}, "cannot write back to stdin"},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.md")}, "no such file"},
		{"bad config", []string{"--tab-size", "0", "-"}, "tab size must be positive"},
		{"no file", nil, "accepts 1 arg(s), received 0"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runMain(t, "text", tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
