package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcont/internal/config"
	"github.com/jcorbin/mdcont/textedit"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdcont.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, textedit.DefaultOptions(), cfg.Options())
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  config.Config
		err  error
	}{
		{"defaults", config.Defaults(), nil},
		{"tabs", config.Config{TabSize: 8, IndentUnit: "\t", LineBreak: "\r\n"}, nil},
		{"zero tab size", config.Config{TabSize: 0, IndentUnit: "  ", LineBreak: "\n"}, config.ErrTabSize},
		{"empty indent", config.Config{TabSize: 4, IndentUnit: "", LineBreak: "\n"}, config.ErrIndentUnit},
		{"text indent", config.Config{TabSize: 4, IndentUnit: " >", LineBreak: "\n"}, config.ErrIndentUnit},
		{"bad line break", config.Config{TabSize: 4, IndentUnit: " ", LineBreak: "\n\n"}, config.ErrLineBreak},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestLoad_file(t *testing.T) {
	path := writeConfig(t, "tab_size: 8\nindent_unit: tab\nline_break: crlf\n")
	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{TabSize: 8, IndentUnit: "\t", LineBreak: "\r\n"}, cfg)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "an explicit config file must exist")
}

func TestLoad_noFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestLoad_workingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("indent_unit: \"    \"\n"), 0o644))
	chdir(t, dir)
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "    ", cfg.IndentUnit)
	assert.Equal(t, 4, cfg.TabSize)
}

func TestLoad_parentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("tab_size: 2\n"), 0o644))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TabSize)
}

func TestLoad_env(t *testing.T) {
	path := writeConfig(t, "tab_size: 8\n")
	t.Setenv("MDCONT_TAB_SIZE", "2")
	t.Setenv("MDCONT_LINE_BREAK", "cr")
	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TabSize, "environment overrides the file")
	assert.Equal(t, "\r", cfg.LineBreak)
}

func TestLoad_flags(t *testing.T) {
	path := writeConfig(t, "tab_size: 8\nindent_unit: \" \"\n")
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, config.AddFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--indent-unit", "tab"}))

	cfg, err := config.Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.IndentUnit, "set flags override the file")
	assert.Equal(t, 8, cfg.TabSize, "unset flags do not")
}

func TestLoad_invalid(t *testing.T) {
	path := writeConfig(t, "tab_size: -1\n")
	_, err := config.Load(viper.New(), path)
	assert.ErrorIs(t, err, config.ErrTabSize)
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
