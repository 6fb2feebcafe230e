/*
Package keyscript parses and runs small scripts of editing steps against a
markup session.

A script is a sequence of space separated steps; a '#' begins a comment that
runs to the end of its line:

	at 2:5          # place the cursor at line 2, column 5
	select 0 12     # select byte offsets 0 through 12
	enter tab shift-tab backspace
	type "some text"

A quoted string on its own is shorthand for typing it.
*/
package keyscript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/mdcont/textedit"
)

// Op is the kind of a script step.
type Op int

// Step operations.
const (
	Press Op = iota + 1
	Type
	At
	Select
)

var opNames = [...]string{
	Press:  "press",
	Type:   "type",
	At:     "at",
	Select: "select",
}

func (op Op) String() string {
	if op > 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("InvalidOp%d", int(op))
}

// keyNames maps the script names of keys to markup keymap names.
var keyNames = map[string]string{
	"enter":     "Enter",
	"tab":       "Tab",
	"shift-tab": "Shift-Tab",
	"backspace": "Backspace",
}

// Step is a single script step.
type Step struct {
	Op   Op
	Key  string // keymap name, for Press
	Text string // for Type
	Pos  [2]Pos // cursor for At; anchor and head for Select
}

// String formats the step in script syntax.
func (step Step) String() string {
	switch step.Op {
	case Press:
		return strings.ToLower(step.Key)
	case Type:
		return string(QuotedArgs([]string{"type", step.Text}))
	case At:
		return "at " + step.Pos[0].String()
	case Select:
		return "select " + step.Pos[0].String() + " " + step.Pos[1].String()
	}
	return step.Op.String()
}

// Pos is a script position: either a byte offset, or a 1-based line and
// column when Line is non-zero.
type Pos struct {
	Offset    int
	Line, Col int
}

// Errors returned when parsing or resolving script positions.
var (
	ErrSyntax   = errors.New("invalid script syntax")
	ErrPosition = errors.New("position out of range")
)

// ParsePos parses an offset like "12", or a "line:col" pair like "3:1".
func ParsePos(s string) (Pos, error) {
	if line, col, ok := strings.Cut(s, ":"); ok {
		l, err := strconv.Atoi(line)
		if err != nil || l < 1 {
			return Pos{}, fmt.Errorf("%w: invalid line in position %q", ErrSyntax, s)
		}
		c, err := strconv.Atoi(col)
		if err != nil || c < 1 {
			return Pos{}, fmt.Errorf("%w: invalid column in position %q", ErrSyntax, s)
		}
		return Pos{Line: l, Col: c}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Pos{}, fmt.Errorf("%w: invalid position %q", ErrSyntax, s)
	}
	return Pos{Offset: n}, nil
}

func (pos Pos) String() string {
	if pos.Line != 0 {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
	}
	return strconv.Itoa(pos.Offset)
}

// Resolve returns the document offset of pos; columns count bytes, and may
// address the end of their line.
func (pos Pos) Resolve(doc *textedit.Doc) (int, error) {
	if pos.Line == 0 {
		if pos.Offset > doc.Len() {
			return 0, fmt.Errorf("%w: offset %v past document end %v", ErrPosition, pos.Offset, doc.Len())
		}
		return pos.Offset, nil
	}
	if pos.Line > doc.Lines() {
		return 0, fmt.Errorf("%w: line %v past last line %v", ErrPosition, pos.Line, doc.Lines())
	}
	line := doc.Line(pos.Line)
	if pos.Col-1 > len(line.Text) {
		return 0, fmt.Errorf("%w: column %v past end of line %v", ErrPosition, pos.Col, pos.Line)
	}
	return line.From + pos.Col - 1, nil
}

// Parse parses a script from r.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	lines := bufio.NewScanner(r)
	for n := 1; lines.Scan(); n++ {
		var err error
		steps, err = appendLine(steps, lines.Text())
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", n, err)
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("unable to read script: %w", err)
	}
	return steps, nil
}

// ParseString parses a script string.
func ParseString(script string) ([]Step, error) {
	return Parse(strings.NewReader(script))
}

func appendLine(steps []Step, line string) ([]Step, error) {
	args := bufio.NewScanner(strings.NewReader(line))
	args.Split(scanArgs)

	next := func(of string) (string, error) {
		if !args.Scan() {
			return "", fmt.Errorf("%w: missing %v argument", ErrSyntax, of)
		}
		arg, ok := unquoteArg(args.Text())
		if !ok {
			return "", fmt.Errorf("%w: unterminated quote in %v", ErrSyntax, args.Text())
		}
		return arg, nil
	}
	nextPos := func(of string) (Pos, error) {
		arg, err := next(of)
		if err != nil {
			return Pos{}, err
		}
		return ParsePos(arg)
	}

	for args.Scan() {
		token := args.Text()
		if strings.HasPrefix(token, "#") {
			break
		}
		if token[0] == '"' || token[0] == '\'' {
			text, ok := unquoteArg(token)
			if !ok {
				return nil, fmt.Errorf("%w: unterminated quote in %v", ErrSyntax, token)
			}
			steps = append(steps, Step{Op: Type, Text: text})
			continue
		}

		word := strings.ToLower(token)
		if key, ok := keyNames[word]; ok {
			steps = append(steps, Step{Op: Press, Key: key})
			continue
		}

		step := Step{}
		var err error
		switch word {
		case "type":
			step.Op = Type
			step.Text, err = next("type")
		case "at":
			step.Op = At
			step.Pos[0], err = nextPos("at")
		case "select":
			step.Op = Select
			step.Pos[0], err = nextPos("select anchor")
			if err == nil {
				step.Pos[1], err = nextPos("select head")
			}
		default:
			err = fmt.Errorf("%w: unknown step %q", ErrSyntax, token)
		}
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, args.Err()
}

// Format formats steps as a single line script.
func Format(steps []Step) string {
	parts := make([]string, len(steps))
	for i, step := range steps {
		parts[i] = step.String()
	}
	return strings.Join(parts, " ")
}
