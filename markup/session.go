package markup

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

// ErrUnknownKey is returned when pressing a key that has no default
// behavior.
var ErrUnknownKey = errors.New("unknown key")

// Session is an in-memory editor host: it holds a state and its parsed tree,
// runs keymap commands against them, and falls back to plain editing when a
// command abstains. A Session is not safe for concurrent use.
type Session struct {
	Keymap Keymap

	state *textedit.State
	tree  *scandown.Tree
	err   error
}

// NewSession creates a session editing text with the given selection, bound
// to DefaultKeymap.
func NewSession(text string, opts textedit.Options, sel textedit.Selection) *Session {
	s := &Session{Keymap: DefaultKeymap()}
	s.reset(textedit.NewState(text, opts, sel))
	return s
}

func (s *Session) reset(st *textedit.State) {
	s.state = st
	s.tree = scandown.Parse(st.Doc.String())
}

// State returns the current state.
func (s *Session) State() *textedit.State { return s.state }

// Tree returns the syntax tree of the current document.
func (s *Session) Tree() *scandown.Tree { return s.tree }

// Text returns the current document text.
func (s *Session) Text() string { return s.state.Doc.String() }

// Dispatch applies a transaction, re-parsing the document.
func (s *Session) Dispatch(tr textedit.Transaction) error {
	st, err := s.state.Apply(tr)
	if err != nil {
		s.err = fmt.Errorf("unable to apply %q transaction: %w", tr.UserEvent, err)
		return s.err
	}
	s.reset(st)
	return nil
}

// SetSelection replaces the selection, without changing the document.
func (s *Session) SetSelection(sel textedit.Selection) error {
	none, err := textedit.NewChangeSet(s.state.Doc.Len())
	if err != nil {
		return err
	}
	return s.Dispatch(textedit.Transaction{Changes: none, Selection: sel, UserEvent: "select"})
}

// Press runs the command bound to key, returning true if it handled the
// key; otherwise the key's default editing behavior is applied.
func (s *Session) Press(key string) (handled bool, err error) {
	s.err = nil
	if s.Keymap.Run(key, s) {
		return true, nil
	}
	if s.err != nil {
		return false, s.err
	}
	switch key {
	case "Enter":
		return false, s.replaceSelection(s.state.Doc.LineBreak(), "input")
	case "Tab":
		return false, s.replaceSelection(s.state.Doc.IndentUnit(), "input")
	case "Shift-Tab":
		return false, nil
	case "Backspace":
		return false, s.deleteBackward()
	default:
		return false, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
}

// Type inserts text in place of every selection range.
func (s *Session) Type(text string) error {
	return s.replaceSelection(text, "input.type")
}

func (s *Session) replaceSelection(text, userEvent string) error {
	tr, _, err := s.state.ChangeByRange(func(r textedit.Range) (textedit.RangeChange, bool) {
		return textedit.RangeChange{
			Changes: []textedit.Change{{From: r.From(), To: r.To(), Insert: text}},
			Cursor:  r.To(),
			Assoc:   1,
		}, true
	})
	if err != nil {
		return err
	}
	tr.UserEvent = userEvent
	return s.Dispatch(tr)
}

// deleteBackward deletes every non-empty range, and before every cursor the
// preceding line break or grapheme cluster.
func (s *Session) deleteBackward() error {
	doc := s.state.Doc
	tr, _, err := s.state.ChangeByRange(func(r textedit.Range) (textedit.RangeChange, bool) {
		from, to := r.From(), r.To()
		if r.Empty() {
			from = previousCluster(doc, to)
		}
		return textedit.RangeChange{
			Changes: []textedit.Change{{From: from, To: to}},
			Cursor:  to,
			Assoc:   -1,
		}, true
	})
	if err != nil {
		return err
	}
	tr.UserEvent = "delete.backward"
	return s.Dispatch(tr)
}

// previousCluster returns the start of the grapheme cluster, or line break,
// that ends at pos.
func previousCluster(doc *textedit.Doc, pos int) int {
	line := doc.LineAt(pos)
	if pos <= line.From {
		if line.Number == 1 {
			return pos
		}
		return doc.Line(line.Number - 1).To
	}
	text := line.Text[:pos-line.From]
	start, state := 0, -1
	for rest := text; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		start = len(text) - len(rest) - len(cluster)
	}
	return line.From + start
}
