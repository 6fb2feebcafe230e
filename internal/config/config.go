/*
Package config loads the editing options used by the mdcont commands.

Options are read, in increasing precedence, from built-in defaults, an
optional YAML config file, MDCONT_ environment variables, and command line
flags.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jcorbin/mdcont/textedit"
)

// EnvPrefix prefixes every environment variable override, e.g.
// MDCONT_TAB_SIZE.
const EnvPrefix = "MDCONT"

// FileName is the config file searched for when no file is given
// explicitly.
const FileName = ".mdcont.yaml"

// Config holds the document options of an editing session.
type Config struct {
	TabSize    int    `mapstructure:"tab_size"`
	IndentUnit string `mapstructure:"indent_unit"`
	LineBreak  string `mapstructure:"line_break"`
}

// Errors returned by Validate.
var (
	ErrTabSize    = errors.New("tab size must be positive")
	ErrIndentUnit = errors.New("indent unit must be non-empty spaces or tabs")
	ErrLineBreak  = errors.New("line break must be one of lf, crlf, or cr")
)

// Defaults returns the default configuration.
func Defaults() Config {
	opts := textedit.DefaultOptions()
	return Config{
		TabSize:    opts.TabSize,
		IndentUnit: opts.IndentUnit,
		LineBreak:  opts.LineBreak,
	}
}

// Options converts the config into document options.
func (cfg Config) Options() textedit.Options {
	return textedit.Options{
		TabSize:    cfg.TabSize,
		IndentUnit: cfg.IndentUnit,
		LineBreak:  cfg.LineBreak,
	}
}

// Validate checks that the config describes usable document options.
func (cfg Config) Validate() error {
	if cfg.TabSize <= 0 {
		return fmt.Errorf("%w, got %v", ErrTabSize, cfg.TabSize)
	}
	if cfg.IndentUnit == "" || strings.Trim(cfg.IndentUnit, " \t") != "" {
		return fmt.Errorf("%w, got %q", ErrIndentUnit, cfg.IndentUnit)
	}
	switch cfg.LineBreak {
	case "\n", "\r\n", "\r":
	default:
		return fmt.Errorf("%w, got %q", ErrLineBreak, cfg.LineBreak)
	}
	return nil
}

// normalized expands the symbolic names accepted for indent units and line
// breaks, which are awkward to spell in flags and environment variables.
func (cfg Config) normalized() Config {
	switch strings.ToLower(cfg.IndentUnit) {
	case "tab", `\t`:
		cfg.IndentUnit = "\t"
	}
	switch strings.ToLower(cfg.LineBreak) {
	case "lf", `\n`:
		cfg.LineBreak = "\n"
	case "crlf", `\r\n`:
		cfg.LineBreak = "\r\n"
	case "cr", `\r`:
		cfg.LineBreak = "\r"
	}
	return cfg
}

// SetDefaults registers every config key with its default value; keys must
// be known to v for environment overrides to apply when unmarshaling.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("tab_size", defaults.TabSize)
	v.SetDefault("indent_unit", defaults.IndentUnit)
	v.SetDefault("line_break", defaults.LineBreak)
}

// AddFlags defines the option flags on fs, binding them into v.
func AddFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	defaults := Defaults()
	fs.Int("tab-size", defaults.TabSize, "column width of a tab stop")
	fs.String("indent-unit", defaults.IndentUnit, `one level of indentation; "tab" for a tab character`)
	fs.String("line-break", "lf", "line separator: lf, crlf, or cr")
	for key, name := range map[string]string{
		"tab_size":    "tab-size",
		"indent_unit": "indent-unit",
		"line_break":  "line-break",
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("unable to bind --%v flag: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration into v and returns the validated result. If file
// is empty, FileName is searched for with FindFile, and its absence is not an
// error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file == "" {
		found, err := FindFile(FileName)
		if err != nil {
			return Config{}, fmt.Errorf("unable to find config: %w", err)
		}
		file = found
	}
	if file != "" {
		v.SetConfigFile(file)
		if filepath.Ext(file) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("unable to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// FindFile looks for a named file in the working directory, and then in
// every parent directory, returning the absolute path of the first one
// found, or "" if there is none.
func FindFile(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}
