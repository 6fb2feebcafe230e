// Command mdkeys replays a script of editing keys against a Markdown file,
// continuing list and quote markup the way an editor would.
//
// Usage:
//
//	mdkeys [flags] FILE
//
// The edited document is written to stdout, or back to FILE with -w; the
// file "-" is stdin.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/renameio"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jcorbin/mdcont/internal/config"
	"github.com/jcorbin/mdcont/internal/keyscript"
	"github.com/jcorbin/mdcont/markup"
	"github.com/jcorbin/mdcont/textedit"
)

const logPrefix = "mdkeys: "

func main() {
	log.SetFlags(0)
	log.SetPrefix(logPrefix)
	cmd, err := newRootCmd(viper.New())
	if err == nil {
		err = cmd.Execute()
	}
	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	cfgFile string
	at      string
	keys    string
	script  string
	write   bool
	diff    bool
	verbose bool
}

func newRootCmd(v *viper.Viper) (*cobra.Command, error) {
	var opts options
	cmd := &cobra.Command{
		Use:   "mdkeys [flags] FILE",
		Short: "Replay editing keys against a Markdown file",
		Long: `Replay a script of editing keys against a Markdown file.

Enter, Tab, Shift-Tab, and Backspace continue, indent, and remove list and
blockquote markup; keys that no markup command handles fall back to plain
editing. See --keys for the script syntax.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, opts.cfgFile)
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: "+config.FileName+" in the working directory or a parent)")
	flags.StringVar(&opts.at, "at", "",
		`initial cursor position, a byte offset or "line:col" (default: end of file)`)
	flags.StringVarP(&opts.keys, "keys", "k", "",
		`key script, e.g. 'enter type "next item" tab'`)
	flags.StringVar(&opts.script, "script", "", "read the key script from a file")
	flags.BoolVarP(&opts.write, "write", "w", false, "write the result back to FILE")
	flags.BoolVar(&opts.diff, "diff", false, "print a line diff instead of the result")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every step, and whether markup handled it")
	cmd.MarkFlagsMutuallyExclusive("keys", "script")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")
	if err := config.AddFlags(v, flags); err != nil {
		return nil, fmt.Errorf("unable to define config flags: %w", err)
	}

	return cmd, nil
}

func run(cmd *cobra.Command, opts options, cfg config.Config, name string) error {
	steps, err := readScript(opts)
	if err != nil {
		return err
	}

	src, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}

	doc := textedit.NewDoc(src, cfg.Options())
	pos := doc.Len()
	if opts.at != "" {
		at, err := keyscript.ParsePos(opts.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		if pos, err = at.Resolve(doc); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	var trace keyscript.Tracer
	if opts.verbose {
		logger := log.New(cmd.ErrOrStderr(), logPrefix, 0)
		trace = func(step keyscript.Step, handled bool) {
			if step.Op == keyscript.Press {
				logger.Printf("%v handled:%v", step, handled)
			} else {
				logger.Printf("%v", step)
			}
		}
	}

	s := markup.NewSession(src, cfg.Options(), textedit.Single(pos))
	if err := keyscript.Run(s, steps, trace); err != nil {
		return err
	}
	result := s.Text()

	switch {
	case opts.write:
		if name == "-" {
			return errors.New("cannot write back to stdin")
		}
		if result == src {
			return nil
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(name); err == nil {
			mode = info.Mode().Perm()
		}
		if err := renameio.WriteFile(name, []byte(result), mode); err != nil {
			return fmt.Errorf("unable to write %v: %w", name, err)
		}
		return nil
	case opts.diff:
		_, err = io.WriteString(cmd.OutOrStdout(), lineDiff(src, result))
	default:
		_, err = io.WriteString(cmd.OutOrStdout(), result)
	}
	return err
}

func readScript(opts options) ([]keyscript.Step, error) {
	if opts.script == "" {
		return keyscript.ParseString(opts.keys)
	}
	f, err := os.Open(opts.script)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	steps, err := keyscript.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", opts.script, err)
	}
	return steps, nil
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(stdin); err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		return buf.String(), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// lineDiff formats a whole-line diff of before and after, marking every line
// with one of " ", "-", or "+".
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		mark := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			mark = "-"
		case diffmatchpatch.DiffInsert:
			mark = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(mark)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
