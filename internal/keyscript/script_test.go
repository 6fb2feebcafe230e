package keyscript_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/mdcont/internal/keyscript"
	"github.com/jcorbin/mdcont/markup"
	"github.com/jcorbin/mdcont/textedit"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name   string
		script string
		steps  []Step
		format string
	}{
		{
			name: "empty",
		},

		{
			name:   "keys",
			script: "enter Tab SHIFT-TAB backspace",
			steps: []Step{
				{Op: Press, Key: "Enter"},
				{Op: Press, Key: "Tab"},
				{Op: Press, Key: "Shift-Tab"},
				{Op: Press, Key: "Backspace"},
			},
			format: "enter tab shift-tab backspace",
		},

		{
			name:   "typing",
			script: `type hello "world wide" 'it\'s' type "\t"`,
			steps: []Step{
				{Op: Type, Text: "hello"},
				{Op: Type, Text: "world wide"},
				{Op: Type, Text: "it's"},
				{Op: Type, Text: "\t"},
			},
			format: `type hello type "world wide" type it's type "\t"`,
		},

		{
			name: "positions and comments",
			script: strings.Join([]string{
				"# setup",
				"at 2:5   # line two",
				"select 0 12",
				"",
				"enter",
			}, "\n"),
			steps: []Step{
				{Op: At, Pos: [2]Pos{{Line: 2, Col: 5}}},
				{Op: Select, Pos: [2]Pos{{Offset: 0}, {Offset: 12}}},
				{Op: Press, Key: "Enter"},
			},
			format: "at 2:5 select 0 12 enter",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			steps, err := ParseString(tc.script)
			require.NoError(t, err)
			assert.Equal(t, tc.steps, steps)
			assert.Equal(t, tc.format, Format(steps))

			again, err := ParseString(Format(steps))
			require.NoError(t, err)
			assert.Equal(t, steps, again, "formatted script reparses")
		})
	}
}

func TestParse_errors(t *testing.T) {
	for _, tc := range []struct {
		script string
		err    string
	}{
		{"jump", `line 1: invalid script syntax: unknown step "jump"`},
		{"enter\ntype", "line 2: invalid script syntax: missing type argument"},
		{`type "abc`, `line 1: invalid script syntax: unterminated quote in "abc`},
		{"at x", `line 1: invalid script syntax: invalid position "x"`},
		{"at 0:1", `line 1: invalid script syntax: invalid line in position "0:1"`},
		{"select 1", "line 1: invalid script syntax: missing select head argument"},
	} {
		t.Run(tc.script, func(t *testing.T) {
			_, err := ParseString(tc.script)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestPos_Resolve(t *testing.T) {
	doc := textedit.NewDoc("ab\ncde", textedit.Options{})
	for _, tc := range []struct {
		pos  Pos
		want int
		err  bool
	}{
		{Pos{Offset: 0}, 0, false},
		{Pos{Offset: 6}, 6, false},
		{Pos{Offset: 7}, 0, true},
		{Pos{Line: 1, Col: 3}, 2, false},
		{Pos{Line: 2, Col: 1}, 3, false},
		{Pos{Line: 2, Col: 4}, 6, false},
		{Pos{Line: 2, Col: 5}, 0, true},
		{Pos{Line: 3, Col: 1}, 0, true},
	} {
		t.Run(tc.pos.String(), func(t *testing.T) {
			got, err := tc.pos.Resolve(doc)
			if tc.err {
				assert.ErrorIs(t, err, ErrPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQuotedArgs(t *testing.T) {
	assert.Equal(t, `hello "john doe" "" "#x"`, string(QuotedArgs([]string{"hello", "john doe", "", "#x"})))
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name    string
		text    string
		script  string
		want    string
		handled []bool
	}{
		{
			name:    "list session",
			text:    "- a",
			script:  `at 3 enter type b enter enter`,
			want:    "- a\n- b\n",
			handled: []bool{false, true, false, true, true},
		},
		{
			name:    "indent a line",
			text:    "- a\n- b",
			script:  "at 2:3 tab",
			want:    "- a\n  - b",
			handled: []bool{false, true},
		},
		{
			name:    "plain text falls back",
			text:    "ab",
			script:  "at 1:3 enter backspace backspace",
			want:    "a",
			handled: []bool{false, false, false, false},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			steps, err := ParseString(tc.script)
			require.NoError(t, err)

			var handled []bool
			s := markup.NewSession(tc.text, textedit.Options{}, textedit.Single(0))
			require.NoError(t, Run(s, steps, func(_ Step, h bool) {
				handled = append(handled, h)
			}))
			assert.Equal(t, tc.want, s.Text())
			assert.Equal(t, tc.handled, handled)
		})
	}
}

func TestRun_error(t *testing.T) {
	s := markup.NewSession("ab", textedit.Options{}, textedit.Single(0))
	steps, err := ParseString("at 1:2 at 9")
	require.NoError(t, err)
	err = Run(s, steps, nil)
	assert.ErrorIs(t, err, ErrPosition)
	assert.Contains(t, err.Error(), `step 2 "at 9"`)
	assert.Equal(t, textedit.Single(1), s.State().Selection, "earlier steps still ran")
}
